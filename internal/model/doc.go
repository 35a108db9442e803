// Package model defines the data structures shared between the crawl
// engine, the report writers, and the history database.
package model
