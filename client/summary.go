package client

import (
	"encoding/base64"
	"encoding/json"
)

// decodeSummary recovers the nested document hidden in a band-data entry's
// base64 "summary" blob. A list root yields its first element, an object root
// yields itself, anything else (including undecodable garbage) yields nil.
// Days with no captured data legitimately carry empty or malformed blobs, so
// this never returns an error.
func decodeSummary(b64 string) Document {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil
	}
	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil
	}
	switch v := root.(type) {
	case []any:
		if len(v) == 0 {
			return nil
		}
		doc, _ := asDoc(v[0])
		return doc
	case map[string]any:
		return Document(v)
	}
	return nil
}
