// File: internal/services/agent/extract.go
package agent

import "encoding/json"

// FallbackReply is returned when a well-formed payload matches none of
// the extraction rules.
const FallbackReply = "Sorry, I could not process your request."

// extractRule picks the reply text out of a decoded payload. Rules are
// tried in a fixed order; the first one that matches wins.
type extractRule struct {
	name string
	pick func(payload interface{}) (string, bool)
}

// replyRules is the exact precedence the assistant backend has answered
// with so far: an array whose first element carries "output", then an
// object "output", then "response", then "message". Do not reorder.
var replyRules = []extractRule{
	{name: "array_first_output", pick: func(payload interface{}) (string, bool) {
		seq, ok := payload.([]interface{})
		if !ok || len(seq) == 0 {
			return "", false
		}
		first, ok := seq[0].(map[string]interface{})
		if !ok {
			return "", false
		}
		return fieldString(first, "output")
	}},
	{name: "output", pick: func(payload interface{}) (string, bool) {
		obj, ok := payload.(map[string]interface{})
		if !ok {
			return "", false
		}
		return fieldString(obj, "output")
	}},
	{name: "response", pick: func(payload interface{}) (string, bool) {
		obj, ok := payload.(map[string]interface{})
		if !ok {
			return "", false
		}
		return fieldString(obj, "response")
	}},
	{name: "message", pick: func(payload interface{}) (string, bool) {
		obj, ok := payload.(map[string]interface{})
		if !ok {
			return "", false
		}
		return fieldString(obj, "message")
	}},
}

// ExtractReply decodes a response body and applies the reply rules.
// An undecodable body is an error; a decodable body that matches no rule
// yields FallbackReply.
func ExtractReply(body []byte) (string, error) {
	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	for _, rule := range replyRules {
		if reply, ok := rule.pick(payload); ok {
			return reply, nil
		}
	}
	return FallbackReply, nil
}

// fieldString returns a non-empty string field. Empty strings and
// non-string values do not match, letting the next rule try.
func fieldString(obj map[string]interface{}, key string) (string, bool) {
	v, ok := obj[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
