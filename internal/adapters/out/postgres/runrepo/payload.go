package runrepo

import (
	"encoding/json"
	"fmt"

	"production/internal/core/domain/model/run"
)

// marshalPayload serializes the tagged payload variant to JSON. A record
// without a payload yet serializes to a null column.
func marshalPayload(payload run.MethodPayload) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	return json.Marshal(payload)
}

// unmarshalPayload restores the payload variant matching the stored method
// tag. The method column, not the JSON shape, decides the concrete type.
func unmarshalPayload(method run.Method, raw []byte) (run.MethodPayload, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	switch method {
	case run.Silkscreen:
		var payload run.SilkscreenPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	case run.Sublimation:
		var payload run.SublimationPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	case run.DTF:
		var payload run.DTFPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	case run.Embroidery:
		var payload run.EmbroideryPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	default:
		return nil, fmt.Errorf("unexpected method %q for stored payload", method)
	}
}
