// Package config loads the settings of the nvram command line tool and
// builds the configured backing store.
//
// Settings are resolved in three layers: built-in defaults, an optional YAML
// file, then environment variables prefixed with NVRAM_ (for example
// NVRAM_BACKEND, NVRAM_FILE_DIR, NVRAM_S3_BUCKET). A variable that is not set
// leaves the YAML value in place.
package config
