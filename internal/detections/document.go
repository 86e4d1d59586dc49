package detections

// Detection is one candidate object found in an image by the upstream
// detector: a category id plus a confidence score in [0,1].
type Detection struct {
	Category string  `json:"category"`
	Conf     float64 `json:"conf"`
}

// ImageRecord holds all detections for a single image. File is always a path
// relative to the batch's input folder; documents with absolute paths are
// rejected before any processing.
type ImageRecord struct {
	File       string      `json:"file"`
	Detections []Detection `json:"detections"`
}

// Document is a parsed batch-processing results file.
type Document struct {
	// DetectionCategories maps category ids (for example "1") to category
	// names (for example "animal").
	DetectionCategories map[string]string `json:"detection_categories"`
	Images              []ImageRecord     `json:"images"`
}
