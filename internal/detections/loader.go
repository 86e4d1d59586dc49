package detections

import (
	"encoding/json"
	"os"

	"camsort/internal/faults"
)

// Load parses the results file at path into a Document. Both known detector
// output versions share the keys this tool reads; unknown extra keys are
// ignored by the decoder. Missing required top-level keys are a parse fault.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, faults.Wrap(faults.ErrParse, "load results", "read file", "cannot read results file", err)
	}

	// Images is a pointer here so an absent key can be told apart from an
	// empty list, which is a legal document.
	var raw struct {
		DetectionCategories map[string]string `json:"detection_categories"`
		Images              *[]ImageRecord    `json:"images"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, faults.Wrap(faults.ErrParse, "load results", "decode json", "malformed results file", err)
	}
	if raw.Images == nil {
		return nil, faults.Wrap(faults.ErrParse, "load results", "check keys", "results file is missing the images key", nil)
	}
	if raw.DetectionCategories == nil {
		return nil, faults.Wrap(faults.ErrParse, "load results", "check keys", "results file is missing the detection_categories key", nil)
	}

	return &Document{
		DetectionCategories: raw.DetectionCategories,
		Images:              *raw.Images,
	}, nil
}
