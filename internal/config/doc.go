// Package config provides the configuration system for gridedit.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← GRIDEDIT_LOG_LEVEL, GRIDEDIT_EDITOR_TICK, ...
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← $XDG_CONFIG_HOME/gridedit/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command line flags are applied by the caller after Load.
//
// # Sections
//
//	[editor]  tick, blinkPeriod, gutterWidth, tabWidth, encoding, recovery, watch
//	[theme]   colors as names ("lightblue") or hex ("#rrggbb")
//	[log]     level, file
//
// Invalid values are reported and leave the default in place.
package config
