package service

import (
	"fmt"

	"github.com/hance08/dealflow/internal/model"
)

// ValidateTransition checks that a deal may move from one stage to another.
// Closed deals are final; everything else, backwards moves included, is
// allowed.
func ValidateTransition(from, to model.Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownStatus, to)
	}
	if from == model.StatusClosed && to != model.StatusClosed {
		return fmt.Errorf("%w: closed transactions cannot be reopened", ErrInvalidTransition)
	}
	return nil
}
