// Package llmjson normalizes raw chat-completion text into validated JSON
// documents. Model output may arrive wrapped in Markdown code fences and is
// only trusted after it passes the action's response schema.
package llmjson

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "leadflow/internal/common/errors"
)

// StripFences removes a leading ```json or ``` fence and the matching trailing
// fence. Stripping already-unfenced text is a no-op.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(text, "```json"):
		text = strings.TrimPrefix(text, "```json")
	case strings.HasPrefix(text, "```"):
		text = strings.TrimPrefix(text, "```")
	default:
		return text
	}

	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// Decode strips fences from raw, validates the remainder against the action's
// response schema, and unmarshals it into out. Any failure is a malformed
// response attributed to the given action.
func Decode(action, raw, schema string, out interface{}) error {
	stripped := StripFences(raw)

	if !json.Valid([]byte(stripped)) {
		return apperrors.NewMalformedResponseError(action, fmt.Errorf("response is not valid JSON"))
	}

	if schema != "" {
		result, err := gojsonschema.Validate(
			gojsonschema.NewStringLoader(schema),
			gojsonschema.NewStringLoader(stripped),
		)
		if err != nil {
			return apperrors.NewMalformedResponseError(action, fmt.Errorf("schema validation: %w", err))
		}
		if !result.Valid() {
			var problems []string
			for _, desc := range result.Errors() {
				problems = append(problems, desc.String())
			}
			return apperrors.NewMalformedResponseError(action, fmt.Errorf("schema violations: %s", strings.Join(problems, "; ")))
		}
	}

	if err := json.Unmarshal([]byte(stripped), out); err != nil {
		return apperrors.NewMalformedResponseError(action, fmt.Errorf("unmarshal: %w", err))
	}
	return nil
}

// DecodeText normalizes a plain-text response. When the stripped remainder is
// a JSON string literal the inner value is returned, otherwise the trimmed
// text is used as-is.
func DecodeText(raw string) string {
	stripped := StripFences(raw)

	var s string
	if err := json.Unmarshal([]byte(stripped), &s); err == nil {
		return s
	}
	return stripped
}
