// Package config provides configuration loading, merging, and validation
// facilities for the server and client binaries.
//
// Configuration is assembled from multiple sources. For every field the first
// non-zero value wins:
//  1. Command-line flags
//  2. Environment variables, optionally seeded from a .env file
//  3. JSON or YAML config file
//  4. Built-in defaults
//
// The main entry points are [GetServerConfig] for the backend and
// [GetClientConfig] for the terminal client.
package config
