// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"moneyminder/internal/period"
)

var categoryRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("month", validateMonth)
		_ = v.RegisterValidation("category", validateCategory)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
	}
}

// validateMonth accepts "YYYY-MM" strings.
func validateMonth(fl validator.FieldLevel) bool {
	_, err := period.Parse(fl.Field().String())
	return err == nil
}

// validateCategory accepts lowercase slugs such as "food" or "dining-out".
func validateCategory(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return len(s) <= 64 && categoryRegex.MatchString(s)
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "cash", "card", "bank_transfer", "other":
		return true
	}
	return false
}
