package employeeerrors

import (
	"go-empedge/internal/shared/apperror"
	"go-empedge/internal/validation"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"All fields are required",
		http.StatusBadRequest,
	)
	ErrFieldTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"Field value is too long",
		http.StatusBadRequest,
	)
)

// InvalidFields reports shape violations found by strict validation. The
// message is the first violation in form order.
func InvalidFields(errs validation.Errors) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		errs.First(),
		http.StatusBadRequest,
	).WithFields(errs)
}
