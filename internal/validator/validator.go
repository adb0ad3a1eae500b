// internal/validator/validator.go
package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var (
	nonBlank = regexp.MustCompile(`\S`)
	cardID   = regexp.MustCompile(`^[A-Z0-9_]+$`)
)

func init() {
	Validate = validator.New()

	// строка не пустая и не только пробелы
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return nonBlank.MatchString(fl.Field().String())
	})

	// идентификатор карты/программы: AXIS_ATLAS
	_ = Validate.RegisterValidation("cardid", func(fl validator.FieldLevel) bool {
		return cardID.MatchString(fl.Field().String())
	})

	// дата проверки: "2025-11-17"
	_ = Validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
}

// Struct validates v and flattens validation errors into one readable error.
func Struct(v any) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("invalid input: %w", err)
	}

	var errs []string
	for _, e := range verrs {
		errs = append(errs, fieldErrorToString(e))
	}
	return fmt.Errorf("invalid input: %s", strings.Join(errs, "; "))
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Namespace())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Namespace())
	case "cardid":
		return fmt.Sprintf("%s must contain only A-Z, 0-9 and _", e.Namespace())
	case "isodate":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", e.Namespace())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", e.Namespace(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", e.Namespace(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Namespace(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Namespace())
	}
}
