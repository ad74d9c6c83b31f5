package validator

import (
	"github.com/go-playground/validator/v10"

	"remodelsite/internal/pkg/phone"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// phone accepts any formatting as long as ten digits are present.
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phone.Complete(fl.Field().String())
	})
}

// Validate returns the failed tag per struct field, or nil when v is valid.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field()] = e.Tag()
	}
	return out
}
