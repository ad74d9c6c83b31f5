package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type contact struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string `validate:"required,phone"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(&contact{Name: "Jane", Email: "jane@example.com", Phone: "(657) 888-0026"}))

	errs := Validate(&contact{Email: "not-an-email", Phone: "657-888"})
	assert.Equal(t, map[string]string{
		"Name":  "required",
		"Email": "email",
		"Phone": "phone",
	}, errs)
}

func TestValidate_NotAStruct(t *testing.T) {
	errs := Validate("plain string")
	assert.Contains(t, errs, "_")
}
