// Command camsort separates images referenced by an object-detection batch
// results file into category folders (animals, people, vehicles, empty,
// multiple) under an output base, copying each file and preserving its
// relative path.
package main
