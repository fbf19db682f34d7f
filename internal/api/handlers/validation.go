package handlers

import (
	"errors"
	"strings"
	"tmap-route-service/internal/api/dto"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Trim and validate a lookup request. The returned messages are safe to show.
func validateRouteRequest(req *dto.RouteRequest) []string {
	req.Departure = strings.TrimSpace(req.Departure)
	req.Destination = strings.TrimSpace(req.Destination)

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, formatValidationError(fe))
	}
	return out
}

func formatValidationError(fe validator.FieldError) string {
	name := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "max":
		return name + " must be at most " + fe.Param() + " characters long"
	default:
		return name + " failed " + fe.Tag() + " validation"
	}
}
