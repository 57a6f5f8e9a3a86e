package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate.Struct(signup{Email: "siti@mail.com", Password: "rahsia123"}))
	assert.Error(t, Validate.Struct(signup{Email: "not-an-email", Password: "rahsia123"}))
	assert.Error(t, Validate.Struct(signup{Email: "siti@mail.com", Password: "123"}))
}
