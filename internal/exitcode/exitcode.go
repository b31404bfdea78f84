// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, row out of range).
	UserError = 1

	// AuthError indicates a Google credentials error.
	AuthError = 2

	// StorageError indicates the task list could not be read or saved.
	StorageError = 3

	// RemoteError indicates a Google Tasks API or network error.
	RemoteError = 4
)
