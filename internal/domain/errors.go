package domain

import (
	"errors"
	"fmt"
)

// DuplicateError señala una violación de unicidad en el datastore. Constraint
// es el nombre del índice o constraint violado, con el que la capa de
// aplicación decide si el duplicado fue por username o por code.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("registro duplicado (constraint %s)", e.Constraint)
}

// IsDuplicate indica si err envuelve una violación de unicidad y devuelve el
// nombre del constraint.
func IsDuplicate(err error) (string, bool) {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup.Constraint, true
	}
	return "", false
}
