package validation

import (
	"fmt"
	"regexp"
)

type Kind int

const (
	KindString Kind = iota
	KindBool
	// KindNumericString accepts a string of decimal digits and yields an int64.
	KindNumericString
)

func (k Kind) expected() string {
	switch k {
	case KindBool:
		return "boolean"
	default:
		return "string"
	}
}

// Rule is a single constraint on a string value. Length bounds and named
// checks are evaluated through go-playground/validator tags, patterns through
// regexp.
type Rule struct {
	tag     string
	pattern *regexp.Regexp
	message string
}

func MinLen(n int, message string) Rule {
	return Rule{tag: fmt.Sprintf("min=%d", n), message: message}
}

func MaxLen(n int, message string) Rule {
	return Rule{tag: fmt.Sprintf("max=%d", n), message: message}
}

func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{pattern: re, message: message}
}

// Check refers to a tag registered on the Validator, e.g. TagStrongPassword.
func Check(tag, message string) Rule {
	return Rule{tag: tag, message: message}
}

type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Nullable bool

	RequiredMsg string
	TypeMsg     string
	Rules       []Rule
}

func (f Field) requiredMessage() string {
	if f.RequiredMsg != "" {
		return f.RequiredMsg
	}
	return "Required"
}

func (f Field) typeMessage(received string) string {
	if f.TypeMsg != "" {
		return f.TypeMsg
	}
	return fmt.Sprintf("Expected %s, received %s", f.Kind.expected(), received)
}

// Schema declares the accepted shape of a request. A nil section is not
// validated and yields no values.
type Schema struct {
	Body   []Field
	Params []Field
	Query  []Field
}

// Raw is the undecoded request input handed to Validate.
type Raw struct {
	Body    any
	BodyErr error
	Params  map[string]string
	Query   map[string]string
}
