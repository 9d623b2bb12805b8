// Package config loads runtime configuration for the washstore CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. WASHSTORE_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the storefront API          (WASHSTORE_API_URL)
//	-t int      request timeout in seconds              (WASHSTORE_REQUEST_TIMEOUT, e.g. "15s")
//	-d string   path to the local SQLite database       (WASHSTORE_DB)
//	-l string   log level: debug, info, warn, error     (WASHSTORE_LOG_LEVEL)
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://example.org/api",
//	  "request_timeout": "15s",
//	  "database_path": "washstore.db",
//	  "log_level": "info"
//	}
package config
