package handler

import (
	"sort"

	"github.com/gookit/validate"

	"github.com/bacmon/bacmon/internal/api/models"
)

// validateStruct runs tag-based validation on a request body and converts
// any failure into the API field error shape. Returns nil when valid.
func validateStruct(s interface{}) []models.FieldError {
	v := validate.Struct(s)
	if v.Validate() {
		return nil
	}
	return fieldErrors(v.Errors)
}

// fieldErrors flattens gookit validation errors into field errors with a
// deterministic order.
func fieldErrors(errs validate.Errors) []models.FieldError {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]models.FieldError, 0, len(fields))
	for _, field := range fields {
		out = append(out, models.FieldError{
			Field:   field,
			Message: errs.FieldOne(field),
		})
	}
	return out
}
