package model

import "time"

// Shared defaults used by both the server and TUI binaries.
const (
	DefaultAPIPort     = 3000
	DefaultCollection  = "ingredients"
	DefaultSearchDelay = 500 * time.Millisecond
	DefaultSearchMode  = "guard"
	DefaultLogLevel    = "info"
)
