package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/AlibekovAA/task-manager/internal/common/errors"
)

const TagStrongPassword = "strong_password"

const sectionBody = "body"

var digitsPattern = regexp.MustCompile(`^\d+$`)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation(TagStrongPassword, strongPassword)
	return &Validator{validate: v}
}

// Validate evaluates every declared field of every section and returns all
// violations together as *Error.
func (v *Validator) Validate(schema *Schema, raw Raw) (Input, error) {
	var input Input
	if schema == nil {
		return input, nil
	}

	issues := commonerrors.NewIssues()

	if schema.Body != nil {
		input.Body = v.validateBody(schema.Body, raw, issues)
	}
	if schema.Params != nil {
		input.Params = v.validateText(schema.Params, raw.Params, issues)
	}
	if schema.Query != nil {
		input.Query = v.validateText(schema.Query, raw.Query, issues)
	}

	if issues.Len() > 0 {
		return Input{}, &Error{issues: issues}
	}
	return input, nil
}

func (v *Validator) validateBody(fields []Field, raw Raw, issues *commonerrors.Issues) Values {
	if raw.BodyErr != nil {
		issues.Add(sectionBody, "Malformed JSON body")
		return nil
	}

	var obj map[string]any
	switch body := raw.Body.(type) {
	case nil:
		obj = map[string]any{}
	case map[string]any:
		obj = body
	default:
		issues.Add(sectionBody, fmt.Sprintf("Expected object, received %s", kindOf(body)))
		return nil
	}

	out := make(Values, len(fields))
	for _, f := range fields {
		val, present := obj[f.Name]
		if coerced, ok := v.evaluate(f, val, present, false, issues); ok {
			out[f.Name] = coerced
		}
	}
	return out
}

func (v *Validator) validateText(fields []Field, src map[string]string, issues *commonerrors.Issues) Values {
	out := make(Values, len(fields))
	for _, f := range fields {
		s, present := src[f.Name]
		if coerced, ok := v.evaluate(f, s, present, true, issues); ok {
			out[f.Name] = coerced
		}
	}
	return out
}

func (v *Validator) evaluate(f Field, val any, present, fromText bool, issues *commonerrors.Issues) (any, bool) {
	if !present {
		if f.Required {
			issues.Add(f.Name, f.requiredMessage())
		}
		return nil, false
	}

	if val == nil {
		if f.Nullable {
			return nil, true
		}
		issues.Add(f.Name, f.typeMessage("null"))
		return nil, false
	}

	switch f.Kind {
	case KindBool:
		return v.evaluateBool(f, val, fromText, issues)
	case KindNumericString:
		return v.evaluateNumeric(f, val, issues)
	default:
		s, ok := val.(string)
		if !ok {
			issues.Add(f.Name, f.typeMessage(kindOf(val)))
			return nil, false
		}
		if !v.applyRules(f, s, issues) {
			return nil, false
		}
		return s, true
	}
}

func (v *Validator) evaluateBool(f Field, val any, fromText bool, issues *commonerrors.Issues) (any, bool) {
	if b, ok := val.(bool); ok {
		return b, true
	}
	if s, ok := val.(string); ok && fromText {
		if b, err := strconv.ParseBool(s); err == nil {
			return b, true
		}
	}
	issues.Add(f.Name, f.typeMessage(kindOf(val)))
	return nil, false
}

func (v *Validator) evaluateNumeric(f Field, val any, issues *commonerrors.Issues) (any, bool) {
	s, ok := val.(string)
	if !ok {
		issues.Add(f.Name, f.typeMessage(kindOf(val)))
		return nil, false
	}
	if !digitsPattern.MatchString(s) {
		issues.Add(f.Name, f.numericMessage())
		return nil, false
	}
	if !v.applyRules(f, s, issues) {
		return nil, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		issues.Add(f.Name, f.numericMessage())
		return nil, false
	}
	return n, true
}

func (f Field) numericMessage() string {
	if f.TypeMsg != "" {
		return f.TypeMsg
	}
	return "Expected numeric string"
}

// applyRules runs every rule so that all failing constraints of the field
// are reported.
func (v *Validator) applyRules(f Field, s string, issues *commonerrors.Issues) bool {
	ok := true
	for _, rule := range f.Rules {
		var failed bool
		if rule.pattern != nil {
			failed = !rule.pattern.MatchString(s)
		} else {
			failed = v.validate.Var(s, rule.tag) != nil
		}
		if failed {
			issues.Add(f.Name, rule.message)
			ok = false
		}
	}
	return ok
}

// strongPassword requires an ASCII upper case letter, lower case letter and
// digit. Other scripts do not count toward any class.
func strongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case 'A' <= r && r <= 'Z':
			upper = true
		case 'a' <= r && r <= 'z':
			lower = true
		case '0' <= r && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

func kindOf(val any) string {
	switch val.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", val)
	}
}
