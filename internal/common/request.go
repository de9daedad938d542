package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON decodes the request body into dst and runs struct validation.
// Failures come back as 400 AppErrors with a field-level details payload.
func DecodeJSON(r *http.Request, dst any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return BadRequest("invalid request body", err, nil)
	}
	return Validate(dst)
}

// Validate runs struct validation against the registered rules.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return BadRequest("invalid request body", err, nil)
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]map[string]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, map[string]string{
				"field": strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
				"rule":  fe.Tag(),
			})
		}
		return BadRequest("validation failed", fmt.Errorf("validate: %w", err), details)
	}
	return BadRequest("invalid request body", err, nil)
}
