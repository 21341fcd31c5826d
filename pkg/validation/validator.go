package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/devconnect/devconnect/pkg/response"
)

// Init configures the global validator used by Gin's binding to report
// errors under JSON field names.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// ToItems converts binding/validation errors into the errors list the API
// returns for 400 responses.
func ToItems(err error) []response.ErrorItem {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return []response.ErrorItem{{Msg: "Invalid request body"}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]response.ErrorItem, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, response.ErrorItem{Msg: formatFieldError(fe)})
		}
		return out
	}

	return []response.ErrorItem{{Msg: "Invalid request body"}}
}

// title uppercases the first letter of a field name for user-facing messages.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", title(field))
	case "email":
		return "Please include a valid email"
	case "min":
		if field == "password" {
			return fmt.Sprintf("Please enter a password with %s or more characters", fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", title(field), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", title(field), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", title(field))
	}
}
