package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"camsort/internal/detections"
	"camsort/internal/testsupport"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeScenario(t *testing.T) (resultsFile, inputDir, outputDir string) {
	t.Helper()
	base := t.TempDir()
	inputDir = filepath.Join(base, "in")
	outputDir = filepath.Join(base, "out")

	doc := detections.Document{
		DetectionCategories: map[string]string{"1": "animal", "2": "person", "3": "vehicle"},
		Images: []detections.ImageRecord{
			{File: "cam1/1.jpg", Detections: []detections.Detection{{Category: "1", Conf: 0.5}}},
			{File: "cam1/2.jpg", Detections: []detections.Detection{{Category: "2", Conf: 0.9}}},
			{File: "cam2/3.jpg", Detections: []detections.Detection{{Category: "3", Conf: 0.8}}},
			{File: "cam2/4.jpg", Detections: []detections.Detection{
				{Category: "1", Conf: 0.9},
				{Category: "2", Conf: 0.8},
			}},
		},
	}
	for _, rec := range doc.Images {
		testsupport.WriteFile(t, filepath.Join(inputDir, filepath.FromSlash(rec.File)), []byte("image:"+rec.File))
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	resultsFile = filepath.Join(base, "results.json")
	if err := os.WriteFile(resultsFile, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return resultsFile, inputDir, outputDir
}

func TestRootNoArgsPrintsHelp(t *testing.T) {
	out, _, err := executeRoot(t)
	if err != nil {
		t.Fatalf("no-arg invocation must not fail: %v", err)
	}
	if !strings.Contains(out, "Usage:") || !strings.Contains(out, "camsort") {
		t.Fatalf("expected help output, got %q", out)
	}
}

func TestRootRejectsPartialArgs(t *testing.T) {
	_, _, err := executeRoot(t, "results.json", "input")
	if err == nil {
		t.Fatal("expected error for missing output folder argument")
	}
}

func TestRootSeparatesImages(t *testing.T) {
	resultsFile, inputDir, outputDir := writeScenario(t)

	out, _, err := executeRoot(t, resultsFile, inputDir, outputDir, "--nthreads", "2")
	if err != nil {
		t.Fatal(err)
	}

	for _, rel := range []string{
		"empty/cam1/1.jpg",
		"people/cam1/2.jpg",
		"vehicles/cam2/3.jpg",
		"multiple/cam2/4.jpg",
	} {
		if _, err := os.Stat(filepath.Join(outputDir, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("missing %s: %v", rel, err)
		}
	}

	if !strings.Contains(out, "Separated 4 images") {
		t.Fatalf("expected summary line, got %q", out)
	}
	for _, label := range []string{"empty", "person", "vehicle", "multiple"} {
		if !strings.Contains(out, label) {
			t.Fatalf("expected %q in summary table, got %q", label, out)
		}
	}
}

func TestRootHumanThresholdOverridesPersonCategory(t *testing.T) {
	resultsFile, inputDir, outputDir := writeScenario(t)

	// Raising the person threshold above 0.9 reroutes cam1/2.jpg to empty and
	// demotes cam2/4.jpg from multiple to animal-only.
	_, _, err := executeRoot(t, resultsFile, inputDir, outputDir, "--human_threshold", "0.95")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "empty", "cam1", "2.jpg")); err != nil {
		t.Fatalf("person image should be empty under the raised threshold: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "animals", "cam2", "4.jpg")); err != nil {
		t.Fatalf("multi image should be animals-only under the raised threshold: %v", err)
	}
}

func TestRootRefusesNonEmptyOutputWithoutFlag(t *testing.T) {
	resultsFile, inputDir, outputDir := writeScenario(t)
	testsupport.WriteFile(t, filepath.Join(outputDir, "old.txt"), []byte("previous run"))

	_, _, err := executeRoot(t, resultsFile, inputDir, outputDir)
	if err == nil {
		t.Fatal("expected refusal for non-empty output directory")
	}

	_, _, err = executeRoot(t, resultsFile, inputDir, outputDir, "--allow_existing_directory")
	if err != nil {
		t.Fatalf("override flag should allow the run: %v", err)
	}
}

func TestRootReadsConfigFile(t *testing.T) {
	resultsFile, inputDir, outputDir := writeScenario(t)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	// 0.95 default threshold drops every detection below it.
	content := "[separation]\ndefault_threshold = 0.95\nworkers = 2\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := executeRoot(t, resultsFile, inputDir, outputDir, "--config", configPath)
	if err != nil {
		t.Fatal(err)
	}

	for _, rel := range []string{"cam1/1.jpg", "cam1/2.jpg", "cam2/3.jpg", "cam2/4.jpg"} {
		if _, err := os.Stat(filepath.Join(outputDir, "empty", filepath.FromSlash(rel))); err != nil {
			t.Fatalf("expected %s under empty with raised default threshold: %v", rel, err)
		}
	}
}

func TestRootFlagOverridesConfigFile(t *testing.T) {
	resultsFile, inputDir, outputDir := writeScenario(t)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[separation]\ndefault_threshold = 0.95\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := executeRoot(t, resultsFile, inputDir, outputDir,
		"--config", configPath, "--default_threshold", "0.725")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "people", "cam1", "2.jpg")); err != nil {
		t.Fatalf("flag should override the config threshold: %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	// A nested target exercises parent-directory creation.
	target := filepath.Join(t.TempDir(), "camsort", "config.toml")

	out, _, err := executeRoot(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected target path in output, got %q", out)
	}

	_, _, err = executeRoot(t, "config", "init", "--path", target)
	if err == nil {
		t.Fatal("expected error when config already exists without --overwrite")
	}

	_, _, err = executeRoot(t, "config", "init", "--path", target, "--overwrite")
	if err != nil {
		t.Fatalf("overwrite should replace the existing config: %v", err)
	}

	out, _, err = executeRoot(t, "config", "validate", "--config", target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("expected validation confirmation, got %q", out)
	}
}
