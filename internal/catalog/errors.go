package catalog

import "errors"

// ErrUnknownEntity is returned by [Catalog.Resolve] when the requested
// entity type name is not registered. Since the registry is fixed at build
// time, hitting this error indicates a configuration bug, not bad user input.
var ErrUnknownEntity = errors.New("unknown entity type")
