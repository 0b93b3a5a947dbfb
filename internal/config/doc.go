// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for michael.
//
// Configuration is a TOML file with sensible defaults, environment variable
// overrides (including a .env file in the working directory), validation,
// and a file watcher for live reloads.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - APIConfig: Where the chat endpoint lives
//   - UIConfig: Splash, theme and rendering switches
//   - ServerConfig: Development backend settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (MICHAEL_*, EXPO_PUBLIC_API_URL, ALLOWED_ORIGINS)
//   - .env in the working directory (never overrides the real environment)
//   - ~/.michael/config.toml (MICHAEL_HOME moves the directory)
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	client := api.NewClient(cfg.API.BaseURL)
package config
