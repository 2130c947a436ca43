// Package config provides the configuration system for tasktable.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (Config.Set)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← TASKTABLE_SELECT_ROW_SELECT=single
//	├─────────────────────────────┤
//	│  2. Config File             │  ← --config tasktable.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Settings are addressed by dotted paths ("select.rowSelect"). Section
// accessors such as Select and Sort return typed snapshots; values of the
// wrong type fall back to the default and are recorded in ConfigErrors.
// Validate checks enum and color values and reports every problem at once.
//
// # Sections
//
//	[select]  rowSelect, buttonSelect, carryForward, clickType, initialId, initialIds
//	[sort]    toggleType, key, reverse
//	[theme]   text, header, odd, even, selected
//	[logging] level, file
//	[data]    file
//	[hooks]   script
package config
