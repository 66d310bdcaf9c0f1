// Package form holds the input schemas of every use case. Validation is a
// pure function from raw input to a cleaned value plus field errors.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// NonFieldErrors collects errors that belong to the form as a whole.
const NonFieldErrors = "__all__"

// Errors maps a field name to its messages.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// Merge returns the union of e and other, never nil.
func (e Errors) Merge(other Errors) Errors {
	out := Errors{}
	for k, v := range e {
		out[k] = append(out[k], v...)
	}
	for k, v := range other {
		out[k] = append(out[k], v...)
	}
	return out
}

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9 ()-]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

func check(input any) Errors {
	errs := Errors{}
	err := validate.Struct(input)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(NonFieldErrors, err.Error())
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).",
			fe.Param(), utf8.RuneCountInString(fmt.Sprint(fe.Value())))
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "phone":
		return "Enter a valid phone number."
	case "eqfield":
		return "The two password fields didn't match."
	default:
		return "Enter a valid value."
	}
}

// Choice is one option of a closed-set field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Widget tells the presentation layer how to draw a field.
type Widget struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Class    string   `json:"class"`
	Required bool     `json:"required"`
	Rows     int      `json:"rows,omitempty"`
	Format   string   `json:"format,omitempty"`
	Choices  []Choice `json:"choices,omitempty"`
}

const inputClass = "form-control"

func text(name, label string, required bool) Widget {
	return Widget{Name: name, Label: label, Type: "text", Class: inputClass, Required: required}
}
