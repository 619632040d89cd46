package validation

// Values holds the coerced fields of one section. Only declared fields that
// were present in the input appear; a nullable field sent as null is stored
// as nil.
type Values map[string]any

func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v Values) IsNull(name string) bool {
	val, ok := v[name]
	return ok && val == nil
}

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// StringPtr reports the field as a pointer (nil when sent as null) and
// whether it was present at all.
func (v Values) StringPtr(name string) (*string, bool) {
	val, ok := v[name]
	if !ok || val == nil {
		return nil, ok
	}
	s, ok := val.(string)
	if !ok {
		return nil, false
	}
	return &s, true
}

func (v Values) Int(name string) int64 {
	n, _ := v[name].(int64)
	return n
}

func (v Values) Bool(name string) (bool, bool) {
	b, ok := v[name].(bool)
	return b, ok
}

type Input struct {
	Body   Values
	Params Values
	Query  Values
}
