// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only defines
// where it listens and whether the cleaning pass runs before it does.
//
// # Configuration
//
// The Config struct defines the bind host, the HTTP port and the
// clean_on_start switch.
package server
