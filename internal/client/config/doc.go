// Package config loads runtime configuration for the mymemory client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the SQLite database
//	-l string   log level
//	-f string   fallback profile image file
//	-m int      maximum profile image side in pixels
//
// # JSON schema
//
//	{
//	  "database_path": "mymemory.db",
//	  "log_level": "debug",
//	  "fallback_image": "assets/account.jpg",
//	  "max_profile_dimension": 512
//	}
//
// Keys missing from the file keep their earlier value. Environment variables
// are not read.
package config
