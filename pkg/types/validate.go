package types

import (
	"math"
	"strings"
)

// requireText trims *v in place and fails when nothing is left.
func requireText(entity, field string, v *string) error {
	*v = strings.TrimSpace(*v)
	if *v == "" {
		return &ValidationError{Entity: entity, Field: field, Reason: "is required"}
	}
	return nil
}

// trimText trims each optional text field in place.
func trimText(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// requireID fails unless id is a positive identifier.
func requireID(entity, field string, id int64) error {
	if id <= 0 {
		return &ValidationError{Entity: entity, Field: field, Reason: "must reference an existing row"}
	}
	return nil
}

// checkAmount rejects NaN, infinities and negative values.
func checkAmount(entity, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Entity: entity, Field: field, Reason: "must be a finite number"}
	}
	if v < 0 {
		return &ValidationError{Entity: entity, Field: field, Reason: "must not be negative"}
	}
	return nil
}

// CheckProgress validates a progress percentage (0.0 to 100.0 inclusive).
func CheckProgress(percent float64) error {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return &ValidationError{Entity: "farmer activity", Field: "progress_percent", Reason: "must be between 0 and 100"}
	}
	return nil
}
