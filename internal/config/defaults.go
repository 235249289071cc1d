// Package config provides configuration loading and defaults for pathnotes.
package config

// DefaultConfigDir is the default location for pathnotes configuration.
const DefaultConfigDir = "~/.config/pathnotes"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "pathnotes.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultRootName is the name of the top-level note holding all devices.
const DefaultRootName = "Filepaths"

// DefaultPathTag is the tag applied to every path note.
const DefaultPathTag = "path"

// DefaultLogLevel is the zerolog level used when --verbose is not set.
const DefaultLogLevel = "warn"

// EnvPrefix is prepended to environment variable overrides,
// e.g. PATHNOTES_ROOT_NAME.
const EnvPrefix = "PATHNOTES"

// DefaultSearch holds the default search preferences.
var DefaultSearch = Search{
	Limit: 20,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
