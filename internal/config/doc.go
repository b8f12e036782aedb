// Package config loads the dontpanic configuration file.
//
// # Resolution
//
// Load reads the path it is given, or ~/.config/dontpanic/config.toml when
// the path is empty. A missing file is not an error: Default() is returned.
// Present but empty values also fall back to their defaults. String values
// are trimmed and paths have a leading ~ expanded.
//
// # File Format
//
//	[weather]
//	refresh_minutes = 15      # request weather when minute % this == 0
//
//	[animation]
//	resource = "~/gifs/towel.gif"   # empty: built-in animation
//
//	[companion]
//	mode = "static"           # "static" or "http"
//	url = "127.0.0.1:7488"    # bridge address for mode = "http"
//	poll_seconds = 2
//	temperature = 42          # static companion reply
//	conditions = "Mostly Harmless"
//
//	[display]
//	font = "bold"             # "bold" or "small"
//
//	[log]
//	path = "~/.local/state/dontpanic/dontpanic.log"
//	level = "info"
//
// # Errors
//
// Unreadable files, malformed TOML, an unknown companion mode and a refresh
// cadence outside 1-60 minutes are returned as errors; the app refuses to
// start on them. Parse errors are wrapped as "parse config: ...".
package config
