package cyls

import "errors"

// Sentinel errors.
var (
	// ErrConfigNotFound is returned when no .cyls.yaml is found.
	ErrConfigNotFound = errors.New("cyls: no .cyls.yaml found")

	// ErrNoConnection is returned when a command needs a database but the
	// config has no connection block.
	ErrNoConnection = errors.New("cyls: no neo4j connection configured")
)
