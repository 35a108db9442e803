// Package config provides configuration structures and utilities for
// linkhound. It defines the per-run crawl options, their defaults, and
// the optional YAML file that overrides the link skip tables.
package config
