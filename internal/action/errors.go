package action

import "errors"

var (
	// ErrInvalidArgument indicates a malformed action declaration:
	// missing kind, missing required target, or an exclusion
	// registered on a file source.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidOperation indicates an action that can never execute:
	// performing NotDefined, an unrecognized kind, or migrating a
	// directory onto a file target.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrTargetExists indicates a migration target is already occupied
	// by an incompatible entry.
	ErrTargetExists = errors.New("target exists")
)
