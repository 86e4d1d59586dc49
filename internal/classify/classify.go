package classify

import (
	"camsort/internal/detections"
)

// Synthetic labels for images that clear no threshold or more than one.
const (
	LabelEmpty    = "empty"
	LabelMultiple = "multiple"
)

// Options holds the thresholds used to decide whether a category is present
// in an image. Values are fixed at construction; runs share one Options value
// across all workers.
type Options struct {
	DefaultThreshold float64
	// CategoryThresholds overrides the default for specific category names.
	CategoryThresholds map[string]float64
}

// Threshold returns the cutoff for the named category.
func (o Options) Threshold(category string) float64 {
	if t, ok := o.CategoryThresholds[category]; ok {
		return t
	}
	return o.DefaultThreshold
}

// Categorize decides the target label for one image record: the single
// category whose max confidence clears its threshold, LabelMultiple when more
// than one does, or LabelEmpty when none do. The comparison is strict, so a
// confidence exactly equal to the threshold does not count.
//
// Detections referencing a category id absent from categories are skipped and
// reported in unknown; the detector occasionally leaves near-zero-confidence
// entries from its training classes in the output, and those must not fail
// the run.
func Categorize(rec detections.ImageRecord, categories map[string]string, opts Options) (label string, unknown []string) {
	maxConf := make(map[string]float64, len(categories))
	for _, name := range categories {
		maxConf[name] = 0.0
	}

	for _, det := range rec.Detections {
		name, ok := categories[det.Category]
		if !ok {
			unknown = append(unknown, det.Category)
			continue
		}
		if det.Conf > maxConf[name] {
			maxConf[name] = det.Conf
		}
	}

	var above []string
	for name, conf := range maxConf {
		if conf > opts.Threshold(name) {
			above = append(above, name)
		}
	}

	switch len(above) {
	case 0:
		return LabelEmpty, unknown
	case 1:
		return above[0], unknown
	default:
		return LabelMultiple, unknown
	}
}
