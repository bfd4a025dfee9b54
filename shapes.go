package washly

import (
	"bytes"
	"encoding/json"

	"github.com/washly/washly-go/pkg/logger"
)

// decodeList unwraps the three list envelopes the API is known to produce:
// a bare array, {"data": [...]}, and {"data": {"data": [...]}}. Anything
// else decodes to an empty slice so a malformed read never crashes a list
// view; outright HTTP failure is handled before this point.
func decodeList[T any](raw []byte) []T {
	raw = bytes.TrimSpace(raw)

	for depth := 0; depth <= 2; depth++ {
		if len(raw) > 0 && raw[0] == '[' {
			var items []T
			if err := json.Unmarshal(raw, &items); err != nil {
				logger.Warn("Malformed list payload, defaulting to empty", "error", err)
				return []T{}
			}
			if items == nil {
				return []T{}
			}
			return items
		}

		var wrapped struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil || len(wrapped.Data) == 0 {
			break
		}
		raw = bytes.TrimSpace(wrapped.Data)
	}

	logger.Warn("Unrecognized list payload shape, defaulting to empty")
	return []T{}
}

// decodeObject tolerates the same single-level {"data": {...}} envelope for
// object responses. Unlike lists, a shape mismatch here is an error.
func decodeObject(raw []byte, v interface{}) error {
	raw = bytes.TrimSpace(raw)

	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &wrapped); err == nil {
			if inner := bytes.TrimSpace(wrapped.Data); len(inner) > 0 && inner[0] == '{' {
				raw = inner
			}
		}
	}
	return json.Unmarshal(raw, v)
}
