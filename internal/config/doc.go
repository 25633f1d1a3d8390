// Package config loads and merges redline configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (REDLINE_MODEL, REDLINE_PORT, etc.)
//  3. Workspace overlay (.redline.yaml in the workspace root)
//  4. Config file ($XDG_CONFIG_HOME/redline/config.json)
//  5. Built-in defaults
//
// Configuration is read once at startup; there is no hot reload.
package config
