// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid text, not found).
	UserError = 1

	// ConfigError indicates an unusable configuration.
	ConfigError = 2

	// AuthError indicates missing or rejected remote credentials.
	AuthError = 2

	// StorageError indicates durable storage could not be read or written.
	StorageError = 3

	// BackendError indicates a remote API or network error.
	BackendError = 3
)
