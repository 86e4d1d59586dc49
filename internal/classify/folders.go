package classify

import (
	"path/filepath"
	"sort"
)

// friendlyFolderNames substitutes pluralized display names for the detector's
// raw class names when naming output folders.
var friendlyFolderNames = map[string]string{
	"animal":  "animals",
	"person":  "people",
	"vehicle": "vehicles",
}

// FolderMap maps category names (plus LabelEmpty and LabelMultiple) to output
// folder paths. Built once per run and read-only afterwards.
type FolderMap map[string]string

// NewFolderMap derives the output folder for every category in categories,
// applying friendly names where known and falling back to the raw category
// name otherwise. The synthetic empty and multiple folders are always present.
func NewFolderMap(outputBase string, categories map[string]string) FolderMap {
	m := FolderMap{
		LabelEmpty:    filepath.Join(outputBase, LabelEmpty),
		LabelMultiple: filepath.Join(outputBase, LabelMultiple),
	}
	for _, name := range categories {
		folder := name
		if friendly, ok := friendlyFolderNames[name]; ok {
			folder = friendly
		}
		m[name] = filepath.Join(outputBase, folder)
	}
	return m
}

// Folders returns every output folder path, sorted, for pre-creation.
func (m FolderMap) Folders() []string {
	folders := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(m))
	for _, folder := range m {
		if _, ok := seen[folder]; ok {
			continue
		}
		seen[folder] = struct{}{}
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	return folders
}
