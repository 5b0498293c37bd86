package apperror

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns a binding failure into an AppError. A "required"
// violation on any field collapses into required, which carries the
// per-field detail in Fields; other tags become InvalidField for the first
// offending field.
func MapValidationError(err error, required *AppError) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return ErrInvalidBody
	}

	fields := make(map[string]string, len(errs))
	allRequired := true
	for _, e := range errs {
		name := formatFieldName(e.Field())
		if e.Tag() == "required" {
			fields[e.Field()] = RequiredField(name).Message
			continue
		}
		allRequired = false
		fields[e.Field()] = InvalidField(name).Message
	}

	if allRequired && required != nil {
		return required.WithFields(fields)
	}

	first := errs[0]
	return New(
		CodeInvalidInput,
		fields[first.Field()],
		http.StatusBadRequest,
	).WithFields(fields)
}
