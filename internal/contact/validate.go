package contact

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingFields is the message returned when name, email, or message is empty.
const ErrMissingFields = "Missing required fields"

// ValidationError lists the rejected form fields.
type ValidationError struct {
	// Message is the client-facing summary.
	Message string
	// Fields maps form field name to the reason it was rejected.
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, f := range names {
		parts[i] = fmt.Sprintf("%s: %s", f, e.Fields[f])
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
}

type formValidator struct {
	validate *validator.Validate
}

func newFormValidator() *formValidator {
	v := validator.New()
	// Report form field names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &formValidator{validate: v}
}

// check validates s. Missing required fields take precedence over format errors so
// the response matches what the contact page expects.
func (v *formValidator) check(s *Submission) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Message: "Invalid form submission", Fields: make(map[string]string)}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out.Message = ErrMissingFields
			out.Fields[fe.Field()] = "is required"
		case "email":
			out.Fields[fe.Field()] = "must be a valid email address"
		case "max":
			out.Fields[fe.Field()] = fmt.Sprintf("must be at most %s characters", fe.Param())
		default:
			out.Fields[fe.Field()] = "is invalid"
		}
	}
	if out.Message != ErrMissingFields {
		if _, bad := out.Fields["email"]; bad && len(out.Fields) == 1 {
			out.Message = "Invalid email address"
		}
	}
	return out
}
