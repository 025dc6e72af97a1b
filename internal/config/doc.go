// Package config provides layered configuration for pyselect.
//
// Settings are merged from several layers, each overriding the ones above:
//
//  1. Built-in defaults
//  2. User config: $XDG_CONFIG_HOME/pyselect/config.toml (or config.yaml)
//  3. Project config: .pyselect.toml or .pyselect.yaml in the project directory
//  4. A config file named with --config
//  5. The project's .env file (PYSELECT_* variables only)
//  6. PYSELECT_* environment variables
//  7. Command-line flags
//
// Typed accessors (Resolver, Languages, Logging, View, Server, Outline)
// never fail: a value of the wrong type falls back to the default and is
// recorded in ConfigErrors.
package config
