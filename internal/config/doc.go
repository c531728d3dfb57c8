// Package config provides configuration structures and utilities for smellscan.
// It defines the options that drive a scan, the report format and heading
// style, and the per-detector settings read from a .smellscan file.
package config
