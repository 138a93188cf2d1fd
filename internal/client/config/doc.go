// Package config loads runtime configuration for the lifelog terminal
// client.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-a string   base URL of the lifelog server
//	-f string   path of the local sqlite database
//	-t int      request timeout (seconds)
//	-k string   path of the key file used to seal the stored token
//
// JSON keys mirror the flags:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "database_path": "lifelog.db",
//	  "request_timeout": "10s",
//	  "key_file": "lifelog.key"
//	}
package config
