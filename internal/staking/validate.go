package staking

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/hippique/internal/models"
)

// validateRequest checks req and returns the first problem as a
// *models.ValidationError.
func (a *Allocator) validateRequest(req models.StakeRequest) error {
	if len(req.Entries) < 2 {
		return models.NewValidationError("entries", fmt.Sprintf("at least 2 entrants required, got %d", len(req.Entries)))
	}

	if err := a.validate.Struct(req); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return toValidationError(fieldErrors[0])
		}
		return models.NewValidationError("", err.Error())
	}

	for i, e := range req.Entries {
		if math.IsNaN(e.Odds) || math.IsInf(e.Odds, 0) {
			return models.NewValidationError(fmt.Sprintf("entries[%d].odds", i), "must be a finite number")
		}
	}
	return nil
}

func toValidationError(fe validator.FieldError) *models.ValidationError {
	field := strings.TrimPrefix(fe.Namespace(), "StakeRequest.")
	switch fe.Tag() {
	case "gte":
		return models.NewValidationError(field, fmt.Sprintf("must be >= %s, got %v", fe.Param(), fe.Value()))
	case "gt":
		return models.NewValidationError(field, fmt.Sprintf("must be > %s, got %v", fe.Param(), fe.Value()))
	case "min":
		return models.NewValidationError(field, fmt.Sprintf("needs at least %s items", fe.Param()))
	case "oneof":
		return models.NewValidationError(field, fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value()))
	case "required":
		return models.NewValidationError(field, "is required")
	default:
		return models.NewValidationError(field, fmt.Sprintf("failed %q check", fe.Tag()))
	}
}
