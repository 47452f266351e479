package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"key": "value"})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestDetail(t *testing.T) {
	resp := Detail("enrolled")

	assert.Equal(t, "enrolled", resp.Detail)
}

func TestImageError(t *testing.T) {
	resp := ImageError("unsupported file extension", "Файл должен иметь другое расширение.")

	assert.Equal(t, "unsupported file extension", resp.DeveloperMessage)
	assert.Equal(t, "Файл должен иметь другое расширение.", resp.UserMessage)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Username string `validate:"required"`
		Email    string `validate:"required,email"`
	}

	err := validator.New().Struct(payload{Email: "not-an-email"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Username is a required field")
	assert.Contains(t, resp.Error, "field Email must be a valid email address")
}
