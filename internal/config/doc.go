// Package config loads prism's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. An explicit path, when one is given (the -config flag)
//  2. Otherwise ~/.config/prism/config.toml
//  3. A missing file yields Default(); every key is optional
//
// # Keys
//
//	user_id       = "user-1"              # empty means anonymous, nothing is tracked
//	usage_backend = "sqlite"              # sqlite | http | memory | none
//	usage_db      = "~/.local/share/prism/usage.db"
//	usage_api     = "localhost:9000"      # required for http
//	usage_token   = ""                    # bearer token for http
//	log_file      = "~/.local/share/prism/prism.log"
//	default_color = "#3b82f6"             # color the converter opens with
//	poll_seconds  = 5                     # stats refresh interval
//
// Values are trimmed. Paths get tilde expansion and are made absolute.
// default_color is parsed with the converter's own HEX parser and stored in
// canonical lowercase "#rrggbb" form.
//
// # Error Handling
//
// Load returns errors for:
//   - path expansion failures
//   - read errors other than os.ErrNotExist
//   - TOML syntax errors ("parse config: ...")
//   - an unknown usage_backend, or http without usage_api
//   - a default_color that is not valid HEX
//   - a negative poll_seconds
//
// # Usage Example
//
//	cfg, err := config.Load(*configPath)
//	if err != nil {
//		log.Fatalf("failed to load config: %v", err)
//	}
//	store, err := usage.OpenSQLite(cfg.UsageDB)
//
// The package holds no global state; Config is a plain value.
package config
