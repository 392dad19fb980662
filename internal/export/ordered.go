package export

import (
	"bytes"
	"encoding/json"
)

// field is one key of a JSON object whose key order matters.
type field struct {
	key   string
	value any
}

// compactObject encodes fields as a JSON object in the given order.
func compactObject(fields []field) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func indentJSON(raw []byte, prefix, indent string) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func hexFields(t roleSource) []field {
	vars := t.Variables()
	fields := make([]field, len(vars))
	for i, v := range vars {
		fields[i] = field{key: v.Key, value: v.Color.Hex()}
	}
	return fields
}
