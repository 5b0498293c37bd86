// Package validation holds the employee form rules shared by the dashboard
// (checked before submit) and the API when strict validation is enabled.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPosition = "position"
	FieldContact  = "contact"
)

const (
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgInvalidContact = "Contact must be exactly 10 digits"
)

// Fields lists form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldPosition, FieldContact}

// whitespace matches what browsers treat as white space in form input:
// ASCII spaces, vertical tab, Unicode space separators, BOM and the line and
// paragraph separators. RE2's \s alone covers only [\t\n\f\r ].
const whitespace = `\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}`

var (
	emailPattern     = regexp.MustCompile(`^[^` + whitespace + `@]+@[^` + whitespace + `@]+\.[^` + whitespace + `@]+$`)
	contactStrip     = regexp.MustCompile(`[` + whitespace + `\-()]`)
	tenDigitsPattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Draft is the in-progress set of field values bound to the add/edit form.
type Draft struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Contact  string `json:"contact"`
}

// Get returns the value of a field by its form name.
func (d Draft) Get(field string) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPosition:
		return d.Position
	case FieldContact:
		return d.Contact
	}
	return ""
}

// Set returns a copy of d with field replaced. Unknown fields are ignored.
func (d Draft) Set(field, value string) Draft {
	switch field {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldPosition:
		d.Position = value
	case FieldContact:
		d.Contact = value
	}
	return d
}

// Errors maps a field name to its violation. A missing key means the field is valid.
type Errors map[string]string

// First returns the violation of the earliest field in display order.
func (e Errors) First() string {
	for _, f := range Fields {
		if msg, ok := e[f]; ok {
			return msg
		}
	}
	return ""
}

// RequiredMessage is the violation reported for an empty field, e.g. "Name is required".
func RequiredMessage(field string) string {
	return cases.Title(language.English).String(field) + " is required"
}

// Validate checks every field of d and returns only the violated ones.
func Validate(d Draft) Errors {
	errs := Errors{}

	if trim(d.Name) == "" {
		errs[FieldName] = RequiredMessage(FieldName)
	}

	switch {
	case trim(d.Email) == "":
		errs[FieldEmail] = RequiredMessage(FieldEmail)
	case !IsValidEmail(d.Email):
		errs[FieldEmail] = MsgInvalidEmail
	}

	if trim(d.Position) == "" {
		errs[FieldPosition] = RequiredMessage(FieldPosition)
	}

	switch {
	case trim(d.Contact) == "":
		errs[FieldContact] = RequiredMessage(FieldContact)
	case !tenDigitsPattern.MatchString(NormalizeContact(d.Contact)):
		errs[FieldContact] = MsgInvalidContact
	}

	return errs
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\uFEFF', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// IsValidEmail reports whether s has the local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeContact strips whitespace, hyphens and parentheses.
func NormalizeContact(s string) string {
	return contactStrip.ReplaceAllString(s, "")
}
