package main

// Exit codes reported by the CLI.
const (
	ExitSuccess = 0 // Success
	ExitError   = 1 // General error (bad arguments, runtime failure)
	ExitInvalid = 2 // One or more documents failed schema validation
)
