// Package detections models object-detection batch results files and loads
// them into memory. A document carries the detector's category id-to-name
// mapping and one record per image, each with its relative path and scored
// detections.
package detections
