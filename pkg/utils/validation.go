package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Meter readings are digit strings with at most one decimal point. The
// sign is deliberately not accepted; readings are non-negative.
var meterReadingPattern = regexp.MustCompile(`^\d*\.?\d*$`)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("meter_reading", func(fl validator.FieldLevel) bool {
		return IsValidMeterReading(fl.Field().String())
	})
	_ = validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "super_admin", "admin", "user":
			return true
		}
		return false
	})
	_ = validate.RegisterValidation("equipment_status", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "operational", "maintenance", "faulty":
			return true
		}
		return false
	})
}

// ValidateStruct runs validator/v10 tag validation on a request DTO.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidMeterReading reports whether s is a non-empty, non-negative
// decimal string. The UI applies the same check before submission; the
// core re-validates regardless.
func IsValidMeterReading(s string) bool {
	if s == "" {
		return false
	}
	if !meterReadingPattern.MatchString(s) {
		return false
	}
	// "." alone matches the pattern but carries no digits.
	return strings.ContainsAny(s, "0123456789")
}
