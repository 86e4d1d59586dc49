// Package classify decides which output folder an image belongs in.
//
// It reduces an image's detections to a per-category maximum confidence,
// applies per-category or default thresholds with a strict comparison, and
// maps the outcome to a single label: a category name, "empty", or
// "multiple". It also derives the category-to-folder mapping for a run,
// including the pluralized friendly folder names.
package classify
