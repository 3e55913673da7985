package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/task"
)

// SaveWarning prefixes a change that was applied but not persisted.
const SaveWarning = "warning: change kept in memory but not saved"

// report prints err and returns the matching exit code.
func report(errOut io.Writer, err error) int {
	var (
		validation *task.ValidationError
		notFound   *task.NotFoundError
		persist    *task.PersistenceError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &notFound), errors.Is(err, ErrTaskRefRequired):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.As(err, &persist):
		if persist.Op == "save" {
			fmt.Fprintf(errOut, "%s: %v\n", SaveWarning, persist.Err)
		} else {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		}
		return exitcode.StorageError
	case errors.Is(err, service.ErrListNotFound), errors.Is(err, service.ErrAmbiguousList):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrAuth):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// finish prints msg unless quiet and, for a mutation whose save failed,
// the save warning. Any other error is reported without msg.
func finish(env *Env, out, errOut io.Writer, msg string, err error) int {
	var persist *task.PersistenceError
	if err != nil && !errors.As(err, &persist) {
		return report(errOut, err)
	}
	if !env.Quiet() {
		fmt.Fprintln(out, msg)
	}
	if err != nil {
		return report(errOut, err)
	}
	return exitcode.Success
}
