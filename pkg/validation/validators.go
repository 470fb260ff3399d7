package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Accepted layouts for from/to dates
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// New returns a validator that reports fields by their json name and has the
// custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("isodate", ISODate)
}

// ISODate validates a YYYY-MM-DD or RFC 3339 date string
func ISODate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use notblank if needed
	}
	_, err := ParseDate(val)
	return err == nil
}

// ParseDate parses a date accepted by ISODate.
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}
