// Package config loads runtime configuration for the IgniteGym CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the IgniteGym API
//	-d string   path of the local database (relative paths live in the data dir)
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds. Avatar storage is configured in JSON only; an empty bucket
// disables uploads and the picked image reference is submitted as is.
//
//	{
//	  "server_url": "http://127.0.0.1:3333",
//	  "database_path": "ignitegym.db",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "avatar": {
//	    "bucket": "avatars",
//	    "region": "us-east-1",
//	    "endpoint": "http://127.0.0.1:9000",
//	    "access_key": "minioadmin",
//	    "secret_key": "minioadmin",
//	    "public_url": "http://127.0.0.1:9000/avatars"
//	  }
//	}
package config
