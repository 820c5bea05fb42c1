package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

// Message renders the failure the way it is shown to users.
func (e *ErrorResponse) Message() string {
	switch e.Tag {
	case "required", "uuid_required":
		return fmt.Sprintf("%s harus diisi", e.FailedField)
	case "gt":
		return fmt.Sprintf("%s harus lebih dari %s", e.FailedField, e.Value)
	case "gte":
		return fmt.Sprintf("%s tidak boleh kurang dari %s", e.FailedField, e.Value)
	case "lte":
		return fmt.Sprintf("%s tidak boleh lebih dari %s", e.FailedField, e.Value)
	case "min":
		return fmt.Sprintf("%s minimal %s karakter", e.FailedField, e.Value)
	case "datetime":
		return fmt.Sprintf("%s harus berformat YYYY-MM-DD", e.FailedField)
	case "eqfield":
		return fmt.Sprintf("%s tidak cocok", e.FailedField)
	}
	return fmt.Sprintf("%s gagal validasi '%s'", e.FailedField, e.Tag)
}

var validate = validator.New()

func init() {
	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})

	// Report JSON names so messages match the request body.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "body", Tag: "invalid"}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.Field()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Messages validates data and returns one human-readable line per failure.
func Messages(data interface{}) []string {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message())
	}
	return msgs
}
