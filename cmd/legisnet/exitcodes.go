package main

// Exit codes used across legisnet commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed feed, shape validation failure)
	ExitNoData      = 4 // No snapshot loaded yet
)
