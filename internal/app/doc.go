// Package app is the composition root for dontpanic.
//
// Run loads configuration, opens the log file, reads user preferences,
// selects the companion bridge and hands everything to the watchface UI:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()            ~/.config/dontpanic/config.toml
//	       ├─────> applog.Open()            slog text log file
//	       ├─────> prefs.Load()             12h/24h and theme
//	       ├─────> newBridge()              static companion or HTTP client
//	       ├─────> appmsg.NewInbox/Outbox() message channels
//	       ├─────> companion.StartReceiver() background inbox polling
//	       └─────> ui.Run()                 watchface loop (blocks)
//
// Fatal errors are an unreadable config, an unopenable log and a bridge URL
// that does not parse. Everything after startup is logged and survived.
package app
