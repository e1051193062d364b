// Package config provides configuration structures and utilities for lineup.
// It defines where the local origin lives, how remote wiki sites are
// reached, probe timeouts, and where the optional YAML file is found.
package config
