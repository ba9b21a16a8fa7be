package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docuparse/invoice-parser/internal/common"
)

// ExtractJSONObject recovers the JSON object from a model response. Models
// occasionally wrap the object in prose or code fences, so the first '{' to
// the last '}' is tried before falling back to parsing the whole response.
// Fails with ErrResponseParse when neither yields a well-formed object.
func ExtractJSONObject(s string) ([]byte, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		candidate := []byte(s[start : end+1])
		if json.Valid(candidate) {
			return candidate, nil
		}
	}
	whole := []byte(strings.TrimSpace(s))
	if len(whole) > 0 && whole[0] == '{' && json.Valid(whole) {
		return whole, nil
	}
	return nil, fmt.Errorf("%w: no JSON object found in response (%d bytes)", common.ErrResponseParse, len(s))
}
