package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/taskforge/taskmanager/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		return domain.TaskStatus(fl.Field().String()).Valid()
	})
	v.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
		return domain.TaskPriority(fl.Field().String()).Valid()
	})
	// An empty due date is accepted and stored as NULL.
	v.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			return true
		}
		_, err := domain.ParseDueDate(fl.Field().String())
		return err == nil
	})

	return v
}

// validateInput checks input's validate tags. Missing required fields yield
// requiredMsg; any other rule failure names the offending field.
func validateInput(input interface{}, requiredMsg string) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.Validation("Invalid request")
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return domain.Validation(requiredMsg)
		}
	}
	return domain.Validation("Invalid " + fieldErrs[0].Field())
}
