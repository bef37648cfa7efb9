package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing estaca/leitura/calibracao lookup.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks a request the storage layer never saw.
	ErrValidation = errors.New("validation failed")
)

// ConflictError is returned by the reconciler when a push without the
// overwrite flag collides with an existing estaca on the natural key. The
// existing UUID lets the field client prompt the operator and retry.
type ConflictError struct {
	CodigoObra   string
	EstacaNum    string
	ExistingUUID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("estaca already exists for codigo_obra=%s estaca_num=%s (uuid=%s)", e.CodigoObra, e.EstacaNum, e.ExistingUUID)
}
