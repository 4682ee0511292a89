package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// stripFences removes markdown code fences the model sometimes wraps JSON in.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// decodeJSON decodes model output into out. Malformed JSON is repaired first;
// if that still does not decode, the text is read as Hjson.
func decodeJSON(text string, out interface{}) error {
	cleaned := stripFences(text)
	if cleaned == "" {
		return fmt.Errorf("%w: empty body", ErrUnparsableResponse)
	}

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(cleaned); err == nil {
		if err := json.Unmarshal([]byte(repaired), out); err == nil {
			return nil
		}
	}

	// hjson decodes into generic values; round-trip through encoding/json to
	// honour the struct tags of out.
	var generic interface{}
	if err := hjson.Unmarshal([]byte(cleaned), &generic); err != nil {
		return fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}
	b, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}
	return nil
}
