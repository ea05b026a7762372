package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tag names usable in `binding:` / `validate:` struct tags.
const (
	TagUsername = "ojt_username"
	TagPassword = "ojt_password"
	TagEmail    = "ojt_email"
)

var tagMessages = map[string]string{
	TagUsername: "Username must be at least 3 characters and contain only letters, numbers, and underscores",
	TagPassword: "Password must be at least 6 characters and include a letter, a number, and a special character",
	TagEmail:    "Please enter a valid email address",
	"required":  "This field is required",
	"eqfield":   "Passwords do not match",
	"oneof":     "Invalid value",
}

// Register installs the form predicates as validator tags and makes field
// errors report their json names.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	rules := map[string]func(string) bool{
		TagUsername: IsValidUsername,
		TagPassword: IsValidPassword,
		TagEmail:    IsValidEmail,
	}
	for tag, pred := range rules {
		pred := pred
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return pred(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}

// New returns a validator with the form tags registered.
func New() *validator.Validate {
	v := validator.New()
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

// FromValidator converts validator field errors into form errors. Other errors
// are reported against the empty field.
func FromValidator(err error) Errors {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Errors{{Field: "", Message: err.Error()}}
	}
	out := make(Errors, 0, len(ve))
	for _, fe := range ve {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		out.Add(fe.Field(), msg)
	}
	return out
}
