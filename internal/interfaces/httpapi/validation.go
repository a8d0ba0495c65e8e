package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	memberNamePattern = regexp.MustCompile(`^(?:[0-9]+[ a-zA-Z]|[a-zA-Z])[a-zA-Z0-9 ]*$`)
	panPattern        = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	coiPattern        = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	tinPattern        = regexp.MustCompile(`^[0-9]{9,12}$`)
	phone10Pattern    = regexp.MustCompile(`^[0-9]{10}$`)
)

// customTags are the request field formats shared by several endpoints.
var customTags = map[string]*regexp.Regexp{
	"member_name": memberNamePattern,
	"pan":         panPattern,
	"coi":         coiPattern,
	"tin":         tinPattern,
	"phone10":     phone10Pattern,
}

var tagMessages = map[string]string{
	"member_name": "must start with a letter and contain only letters, digits and spaces",
	"pan":         "must be a valid PAN number",
	"coi":         "must be alphanumeric",
	"tin":         "must be 9 to 12 digits",
	"phone10":     "must be a 10 digit phone number",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, pattern := range customTags {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return pattern.MatchString(fl.Field().String())
		})
	}
	return v
}

// describeValidationError reports the first failing field in a form the
// client can act on.
func describeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := fe.Field()
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return fmt.Sprintf("%s %s", field, msg)
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
