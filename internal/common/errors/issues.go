package commonerrors

import (
	"bytes"
	"encoding/json"
)

// Issues maps a field path to the messages raised against it. Fields and
// messages keep the order in which they were added, including when encoded
// to JSON.
type Issues struct {
	order   []string
	byField map[string][]string
}

func NewIssues() *Issues {
	return &Issues{byField: make(map[string][]string)}
}

func (i *Issues) Add(field, message string) {
	if i.byField == nil {
		i.byField = make(map[string][]string)
	}
	if _, ok := i.byField[field]; !ok {
		i.order = append(i.order, field)
	}
	i.byField[field] = append(i.byField[field], message)
}

func (i *Issues) Merge(other *Issues) {
	if other == nil {
		return
	}
	for _, field := range other.order {
		for _, msg := range other.byField[field] {
			i.Add(field, msg)
		}
	}
}

func (i *Issues) Len() int {
	if i == nil {
		return 0
	}
	return len(i.order)
}

func (i *Issues) Fields() []string {
	if i == nil {
		return nil
	}
	out := make([]string, len(i.order))
	copy(out, i.order)
	return out
}

func (i *Issues) Get(field string) []string {
	if i == nil {
		return nil
	}
	return i.byField[field]
}

func (i *Issues) Map() map[string][]string {
	out := make(map[string][]string, i.Len())
	if i == nil {
		return out
	}
	for field, msgs := range i.byField {
		out[field] = append([]string(nil), msgs...)
	}
	return out
}

func (i *Issues) MarshalJSON() ([]byte, error) {
	if i == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for n, field := range i.order {
		if n > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		msgs, err := json.Marshal(i.byField[field])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msgs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
