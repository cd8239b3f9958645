package alarm

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes v without HTML escaping, so descriptions such as
// "Tom & Jerry" stay readable. An empty indent produces compact output.
func MarshalJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if indent != "" {
		encoder.SetIndent("", indent)
	}

	if err := encoder.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
