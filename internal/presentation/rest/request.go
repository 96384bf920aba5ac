package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1 << 20

// jsonObject is a loosely decoded request body. Field values keep their
// JSON encoding so numbers sent as strings are accepted as well.
type jsonObject map[string]json.RawMessage

// decodeObject reads a JSON object body. It reports false for an empty or
// non-object body.
func decodeObject(w http.ResponseWriter, r *http.Request) (jsonObject, bool) {
	var obj jsonObject
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// text returns a field as text: strings unquoted, other literals verbatim,
// and "" for absent or null fields.
func (o jsonObject) text(key string) string {
	raw := bytes.TrimSpace(o[key])
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
