package hellomoon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Field kinds reported by Descriptor.Fields.
const (
	KindString = "string"
	KindNumber = "number"
	KindFilter = "filter"
	KindBool   = "bool"
)

// Field describes one JSON field of a request body.
type Field struct {
	Name string `json:"name"` // JSON name
	Kind string `json:"kind"` // KindString, KindNumber, KindFilter or KindBool
	Enum bool   `json:"enum"` // string with a fixed set of values
}

var (
	filterType = reflect.TypeOf(Filter{})
	enumType   = reflect.TypeOf((*interface{ Valid() bool })(nil)).Elem()
)

// Fields lists the request body fields in declaration order, with embedded
// structs (Paging) flattened the same way encoding/json flattens them.
func (d Descriptor) Fields() []Field {
	t := reflect.TypeOf(d.NewRequest()).Elem()
	return structFields(t)
}

// Field looks up a request field by JSON name.
func (d Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func structFields(t reflect.Type) []Field {
	var out []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			out = append(out, structFields(sf.Type)...)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		out = append(out, Field{Name: name, Kind: kindOf(sf.Type), Enum: sf.Type.Implements(enumType)})
	}
	return out
}

func kindOf(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == filterType {
		return KindFilter
	}
	switch t.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	}
	return KindNumber
}

// BuildRequest turns "name=value" pairs into a request value. String fields
// take the value verbatim; everything else is parsed as JSON, so filters can
// be given as `blockTime={"operator":">","value":1673226666}`.
func (d Descriptor) BuildRequest(pairs []string) (any, error) {
	obj := make(map[string]json.RawMessage, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", p)
		}
		f, known := d.Field(name)
		if !known {
			return nil, fmt.Errorf("%s has no request field %q", d.Name, name)
		}
		if f.Kind == KindString {
			b, _ := json.Marshal(value)
			obj[name] = b
			continue
		}
		if !json.Valid([]byte(value)) {
			return nil, fmt.Errorf("field %s: %q is not a valid %s", name, value, f.Kind)
		}
		obj[name] = json.RawMessage(value)
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	return d.DecodeRequest(b)
}

// MergeRequest encodes overlay and sets its fields on top of the JSON object
// in base. Fields overlay omits (empty strings, nil pointers) keep base's value.
func MergeRequest(base []byte, overlay any) ([]byte, error) {
	merged := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(base)) > 0 {
		if err := json.Unmarshal(base, &merged); err != nil {
			return nil, fmt.Errorf("request body: %w", err)
		}
	}
	if overlay != nil {
		b, err := json.Marshal(overlay)
		if err != nil {
			return nil, err
		}
		var extra map[string]json.RawMessage
		if err := json.Unmarshal(b, &extra); err != nil {
			return nil, err
		}
		for k, v := range extra {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func decodeStrict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON object")
	}
	return nil
}
