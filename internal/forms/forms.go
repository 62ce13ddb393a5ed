// Package forms binds and validates the HTML forms submitted to the blog.
// Validation runs through gin's binding layer, which is backed by
// go-playground/validator; failures come back as per-field messages that the
// templates render next to each input.
package forms

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// NonField collects errors that do not belong to a single input.
const NonField = "NonField"

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}
}

// Errors maps a form struct field name to its message.
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// Bind decodes the request body into form and validates it. It returns nil
// when the form is valid.
func Bind(c *gin.Context, form any) Errors {
	err := c.ShouldBind(form)
	if err == nil {
		return nil
	}

	errs := Errors{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs.Add(fe.Field(), message(fe))
		}
		return errs
	}
	errs.Add(NonField, "The submitted form could not be read.")
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "eqfield":
		return "The two password fields didn't match."
	case "email":
		return "Enter a valid email address."
	case "datetime":
		return "Enter a valid date and time."
	case "number":
		return "Select a valid choice."
	case "username":
		return "Enter a valid username. It may contain only letters, numbers, and @/./+/-/_ characters."
	}
	return "Enter a valid value."
}
