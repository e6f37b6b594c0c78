package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"key": "value"})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]any{"key": "value"}, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestValidationError(t *testing.T) {
	type request struct {
		Amount      float64 `validate:"required,gt=0"`
		Description string  `validate:"required"`
		Email       string  `validate:"omitempty,email"`
	}

	validate := validator.New()

	tests := []struct {
		name    string
		req     request
		wantMsg string
	}{
		{
			name:    "missing required fields",
			req:     request{},
			wantMsg: "field Amount is a required field, field Description is a required field",
		},
		{
			name:    "negative amount",
			req:     request{Amount: -5, Description: "coffee"},
			wantMsg: "field Amount must be greater than 0",
		},
		{
			name:    "invalid email",
			req:     request{Amount: 10, Description: "coffee", Email: "not-an-email"},
			wantMsg: "field Email must be a valid email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.req)
			require.Error(t, err)

			resp := ValidationError(err.(validator.ValidationErrors))
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}
