// Package separate runs the full pipeline: load a detection results file,
// decide each image's category, and copy every image into its category folder
// under the output base, preserving relative paths.
//
// Configuration and validation problems abort before any file is copied.
// During the copy phase the first failure stops the batch; there is no retry
// and no rollback of files already placed. An flock-guarded lock file in the
// output base keeps two runs from writing the same tree at once.
package separate
