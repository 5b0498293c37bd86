package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-empedge/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requiredBody struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and message", func(t *testing.T) {
		httpErr := apperror.ToHTTP(apperror.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, apperror.CodeNotFound, httpErr.Code)
		assert.Equal(t, "Resource not found", httpErr.Message)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", apperror.ErrInvalidBody)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "Invalid request body", httpErr.Message)
	})

	t.Run("unknown error passes message through as 500", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("dial tcp 127.0.0.1:3306: connect: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.Equal(t, "dial tcp 127.0.0.1:3306: connect: connection refused", httpErr.Message)
	})
}

func TestAppError_Is(t *testing.T) {
	withFields := apperror.ErrInvalidInput.WithFields(map[string]string{"email": "Email is invalid"})
	assert.ErrorIs(t, withFields, apperror.ErrInvalidInput)
	assert.NotErrorIs(t, withFields, apperror.ErrNotFound)

	wrapped := apperror.Wrap(errors.New("boom"), apperror.CodeNotFound, "Resource not found", http.StatusNotFound)
	assert.ErrorIs(t, wrapped, apperror.ErrNotFound)
	assert.Equal(t, "Resource not found: boom", wrapped.Error())
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeNotFound, "x", http.StatusNotFound))
}

func TestMapValidationError(t *testing.T) {
	apperror.Init()
	required := apperror.New(apperror.CodeInvalidInput, "All fields are required", http.StatusBadRequest)

	t.Run("missing fields collapse into the required error", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(&requiredBody{})
		require.Error(t, err)

		mapped := apperror.MapValidationError(err, required)
		assert.ErrorIs(t, mapped, required)

		httpErr := apperror.ToHTTP(mapped)
		assert.Equal(t, "All fields are required", httpErr.Message)
		assert.Equal(t, "Full Name is required", httpErr.Fields["full_name"])
		assert.Equal(t, "Email is required", httpErr.Fields["email"])
	})

	t.Run("shape violation reports the field", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(&requiredBody{FullName: "Ann", Email: "nope"})
		require.Error(t, err)

		httpErr := apperror.ToHTTP(apperror.MapValidationError(err, required))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "Email is invalid", httpErr.Message)
	})

	t.Run("non validator error is an invalid body", func(t *testing.T) {
		mapped := apperror.MapValidationError(errors.New("unexpected EOF"), required)
		assert.ErrorIs(t, mapped, apperror.ErrInvalidBody)
	})
}
