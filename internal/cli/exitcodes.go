package cli

import (
	"errors"
	"os"

	"github.com/yaklabco/ustree/internal/configloader"
	"github.com/yaklabco/ustree/pkg/fsutil"
	"github.com/yaklabco/ustree/pkg/unist"
)

// Exit codes for ustree.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitInvalidTree indicates an input tree failed validation.
	ExitInvalidTree = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Error categories wrapped into command errors so ExitCode can map them.
var (
	// ErrInvalidTree is returned when check finds an invalid tree. The
	// details have already been printed.
	ErrInvalidTree = errors.New("invalid tree")

	// ErrUsage marks bad arguments or flags.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that could not be loaded.
	ErrConfig = errors.New("configuration error")
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cfgErr *configloader.ValidationError
	var pathErr *os.PathError

	switch {
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &cfgErr):
		return ExitConfigError
	case errors.Is(err, ErrInvalidTree),
		errors.Is(err, unist.ErrShapeViolation),
		errors.Is(err, unist.ErrFieldConstraint),
		errors.Is(err, unist.ErrPositionOrder):
		return ExitInvalidTree
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge),
		errors.Is(err, fsutil.ErrModified),
		errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// usageError tags err as a usage error.
func usageError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrUsage, err)
}
