package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Result classifies a submitted payload. Errors is keyed by json field name.
type Result struct {
	Errors  map[string]string
	IsValid bool
}

// FieldMessages maps "<field>.<tag>" to the message shown to clients
var FieldMessages = map[string]string{
	// Registration / login
	"name.notblank":      "Name field is required",
	"name.min":           "Name must be between 2 and 30 characters",
	"name.max":           "Name must be between 2 and 30 characters",
	"email.notblank":     "Email field is required",
	"email.email":        "Email is invalid",
	"password.notblank":  "Password field is required",
	"password.min":       "Password must be between 6 and 30 characters",
	"password.max":       "Password must be between 6 and 30 characters",
	"password2.notblank": "Confirm password field is required",
	"password2.eqfield":  "Passwords must match",

	// Post
	"text.notblank": "Text field is required",
	"text.min":      "Post must be between 10 and 300 characters",
	"text.max":      "Post must be between 10 and 300 characters",

	// Profile
	"handle.notblank": "Profile handle is required",
	"handle.min":      "Handle needs to be between 2 and 40 characters",
	"handle.max":      "Handle needs to be between 2 and 40 characters",
	"status.notblank": "Status field is required",
	"skills.notblank": "Skills field is required",

	// Experience / education
	"title.notblank":        "Job title field is required",
	"company.notblank":      "Company field is required",
	"institute.notblank":    "Institute field is required",
	"degree.notblank":       "Degree field is required",
	"fieldOfStudy.notblank": "Field of study field is required",
	"from.notblank":         "From date field is required",
}

// Check validates input and collects the first failure of every field.
func Check(v *validator.Validate, input any) Result {
	err := v.Struct(input)
	if err == nil {
		return Result{Errors: map[string]string{}, IsValid: true}
	}
	return Result{Errors: FormatValidationErrors(err), IsValid: false}
}

// FormatValidationErrors converts validator.ValidationErrors to a field -> message map
func FormatValidationErrors(err error) map[string]string {
	messages := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		messages["input"] = err.Error()
		return messages
	}

	for _, e := range validationErrors {
		if _, seen := messages[e.Field()]; seen {
			continue
		}
		messages[e.Field()] = formatSingleError(e)
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	field := e.Field()
	if msg, ok := FieldMessages[field+"."+e.Tag()]; ok {
		return msg
	}

	label := formatCamelCase(field)
	switch e.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s field is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, e.Param())
	case "email":
		return fmt.Sprintf("%s is invalid", label)
	case "url":
		return "Not a valid URL"
	case "isodate":
		return fmt.Sprintf("%s date is invalid", label)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", label, strings.ToLower(formatCamelCase(e.Param())))
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// formatCamelCase converts "fieldOfStudy" to "Field of study"
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		switch {
		case i == 0:
			result.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			result.WriteRune(' ')
			result.WriteRune(unicode.ToLower(r))
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}
