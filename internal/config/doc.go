// Package config loads the runtime options of mapconf.
//
// Values come from, in order of precedence: command line flags, MAPCONF_*
// environment variables, a .env file in the working directory, and the
// flag defaults. Existing environment variables are never overwritten by
// the .env file.
package config
