package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/snaplink/snaplink/pkg/alias"
	"github.com/snaplink/snaplink/pkg/response"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("alias", validateAlias)
}

// Validate runs struct-tag validation and returns field-level errors,
// or nil when the value is valid.
func Validate(data interface{}) []response.ValidationError {
	var validationErrors []response.ValidationError

	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, response.ValidationError{
				Field:   err.Field(),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func validateAlias(fl validator.FieldLevel) bool {
	return alias.Valid(fl.Field().String())
}

func getErrorMessage(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "alias":
		return fmt.Sprintf("%s must be 3-30 characters (letters, numbers, hyphens, underscores)", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, err.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, err.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
