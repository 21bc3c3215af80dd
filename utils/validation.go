package utils

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate runs struct-tag validation on an inbound DTO, exactly as the
// teacher's middleware/validation.go does before a request reaches its
// handler.
func Validate(dto any) error {
	return validate.Struct(dto)
}

// FormatValidationError converts validator errors into a simple
// field -> message map, mirroring the teacher's utils.FormatValidationError.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string)
		for _, fe := range ve {
			field := fe.Field()
			switch fe.Tag() {
			case "required":
				out[field] = field + " is required"
			case "min":
				out[field] = field + " must be at least " + fe.Param() + " characters long"
			case "max":
				out[field] = field + " must be at most " + fe.Param() + " characters long"
			case "oneof":
				out[field] = field + " must be one of: " + fe.Param()
			default:
				out[field] = field + " is invalid"
			}
		}
		return out
	}

	return map[string]string{"_error": err.Error()}
}
