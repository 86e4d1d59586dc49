package separate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"camsort/internal/classify"
	"camsort/internal/detections"
	"camsort/internal/faults"
	"camsort/internal/fileutil"
	"camsort/internal/logging"
)

// lockFileName guards an output tree against concurrent camsort runs. The
// file lives inside the output base folder and is removed when the run ends.
const lockFileName = ".camsort.lock"

// Options describes one separation run. Immutable once the run starts; the
// same value is shared read-only by every worker.
type Options struct {
	ResultsFile string
	InputDir    string
	OutputDir   string
	Classify    classify.Options
	// Workers bounds file-copy parallelism. 1 processes images sequentially.
	Workers int
	// AllowExistingDirectory proceeds with a warning when the output folder
	// already exists and is not empty.
	AllowExistingDirectory bool
}

// Summary reports what a completed run did.
type Summary struct {
	RunID    string
	Images   int
	Counts   map[string]int
	Duration time.Duration
}

// ProgressFunc receives completion updates as image records finish. Calls are
// serialized; done is monotonically increasing.
type ProgressFunc func(done, total int)

// Separator copies images from a detection results file into
// category-labeled output folders.
type Separator struct {
	opts     Options
	logger   *slog.Logger
	progress ProgressFunc
}

// New constructs a Separator. A nil logger disables logging.
func New(opts Options, logger *slog.Logger) *Separator {
	return &Separator{opts: opts, logger: logging.NewComponentLogger(logger, "separator")}
}

// SetProgress installs a progress callback. Must be called before Run.
func (s *Separator) SetProgress(fn ProgressFunc) { s.progress = fn }

// Run executes the pipeline: validate, load, classify, copy. Configuration
// and validation problems abort before any file is touched; the first copy
// failure stops the batch, leaving already-copied files in place.
func (s *Separator) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := s.logger.With(logging.String(logging.FieldRunID, runID))

	if err := s.validateOptions(); err != nil {
		return nil, err
	}
	configured := []logging.Attr{
		logging.Float64("default_threshold", s.opts.Classify.DefaultThreshold),
		logging.Int("workers", s.opts.Workers),
		logging.Bool("allow_existing_directory", s.opts.AllowExistingDirectory),
	}
	for name, threshold := range s.opts.Classify.CategoryThresholds {
		configured = append(configured, logging.Float64(name+"_threshold", threshold))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "separation configured", configured...)

	if err := s.ensureOutputDir(logger); err != nil {
		return nil, err
	}

	release, err := s.lockOutputDir(logger)
	if err != nil {
		return nil, err
	}
	defer release()

	doc, err := detections.Load(s.opts.ResultsFile)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded results file",
		logging.Int("images", len(doc.Images)),
		logging.Int("categories", len(doc.DetectionCategories)))

	// Fail fast on absolute paths: nothing is copied from a document that
	// cannot be mirrored under the output base.
	for _, rec := range doc.Images {
		if fileutil.PathIsAbs(rec.File) {
			return nil, faults.Wrap(faults.ErrValidation, "validate results", "check paths",
				fmt.Sprintf("image path %q is absolute; only relative paths can be separated", rec.File), nil)
		}
	}

	folders := classify.NewFolderMap(s.opts.OutputDir, doc.DetectionCategories)
	for _, folder := range folders.Folders() {
		if err := fileutil.EnsureDir(folder); err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "prepare output", "create category folder",
				fmt.Sprintf("cannot create %s", folder), err)
		}
	}
	logger.Info("created category folders", logging.Int("count", len(folders.Folders())))

	counts, err := s.process(ctx, logger, doc, folders)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:    runID,
		Images:   len(doc.Images),
		Counts:   counts,
		Duration: time.Since(start),
	}
	logger.Info("run completed",
		logging.Int("images", summary.Images),
		logging.Duration("duration", summary.Duration))
	return summary, nil
}

func (s *Separator) validateOptions() error {
	if s.opts.ResultsFile == "" || s.opts.InputDir == "" || s.opts.OutputDir == "" {
		return faults.Wrap(faults.ErrConfiguration, "setup", "check options",
			"results file, input folder, and output folder are all required", nil)
	}
	if s.opts.Workers < 1 {
		return faults.Wrap(faults.ErrConfiguration, "setup", "check options",
			"worker count must be at least 1", nil)
	}
	if s.opts.Classify.DefaultThreshold < 0 || s.opts.Classify.DefaultThreshold > 1 {
		return faults.Wrap(faults.ErrConfiguration, "setup", "check options",
			"default threshold must be between 0 and 1", nil)
	}
	for name, threshold := range s.opts.Classify.CategoryThresholds {
		if threshold < 0 || threshold > 1 {
			return faults.Wrap(faults.ErrConfiguration, "setup", "check options",
				fmt.Sprintf("threshold for %s must be between 0 and 1", name), nil)
		}
	}
	return nil
}

func (s *Separator) ensureOutputDir(logger *slog.Logger) error {
	info, err := os.Stat(s.opts.OutputDir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return faults.Wrap(faults.ErrConfiguration, "prepare output", "check directory",
				fmt.Sprintf("%s exists and is not a directory", s.opts.OutputDir), nil)
		}
		nonEmpty, err := dirHasEntries(s.opts.OutputDir)
		if err != nil {
			return faults.Wrap(faults.ErrConfiguration, "prepare output", "check directory", "cannot inspect output folder", err)
		}
		if nonEmpty {
			if !s.opts.AllowExistingDirectory {
				return faults.Wrap(faults.ErrConfiguration, "prepare output", "check directory",
					fmt.Sprintf("output folder %s exists and is not empty; pass --allow_existing_directory to proceed", s.opts.OutputDir), nil)
			}
			logger.Warn("output folder exists and is not empty; existing files may be overwritten",
				logging.String("output_dir", s.opts.OutputDir))
		}
		return nil
	case os.IsNotExist(err):
		if mkErr := fileutil.EnsureDir(s.opts.OutputDir); mkErr != nil {
			return faults.Wrap(faults.ErrConfiguration, "prepare output", "create directory",
				fmt.Sprintf("cannot create %s", s.opts.OutputDir), mkErr)
		}
		return nil
	default:
		return faults.Wrap(faults.ErrConfiguration, "prepare output", "check directory", "cannot inspect output folder", err)
	}
}

// dirHasEntries reports whether dir contains anything besides the run lock
// file, which a previous aborted run may have left behind.
func dirHasEntries(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.Name() == lockFileName {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (s *Separator) lockOutputDir(logger *slog.Logger) (func(), error) {
	lockPath := filepath.Join(s.opts.OutputDir, lockFileName)
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "prepare output", "lock directory",
			fmt.Sprintf("cannot lock %s", lockPath), err)
	}
	if !locked {
		return nil, faults.Wrap(faults.ErrConfiguration, "prepare output", "lock directory",
			fmt.Sprintf("another run is writing to %s", s.opts.OutputDir), nil)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", logging.Error(err))
		}
		_ = os.Remove(lockPath)
	}, nil
}

func (s *Separator) process(ctx context.Context, logger *slog.Logger, doc *detections.Document, folders classify.FolderMap) (map[string]int, error) {
	total := len(doc.Images)
	logger.Info("separating images",
		logging.Int("images", total),
		logging.Int("workers", s.opts.Workers))

	var mu sync.Mutex
	counts := make(map[string]int)
	done := 0

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(s.opts.Workers)

	for _, rec := range doc.Images {
		rec := rec
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			label, unknown := classify.Categorize(rec, doc.DetectionCategories, s.opts.Classify)
			for _, id := range unknown {
				logger.Warn("unrecognized category in detection",
					logging.String(logging.FieldCategory, id),
					logging.String(logging.FieldFile, rec.File))
			}

			if err := placeFile(s.opts.InputDir, folders[label], rec.File); err != nil {
				return err
			}

			mu.Lock()
			counts[label]++
			done++
			if s.progress != nil {
				s.progress(done, total)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

// placeFile copies one image into its category folder, preserving the
// relative path. The source must already exist; the copy is never a move.
func placeFile(inputDir, categoryFolder, relPath string) error {
	src := filepath.Join(inputDir, filepath.FromSlash(relPath))
	if _, err := os.Stat(src); err != nil {
		return faults.Wrap(faults.ErrNotFound, "placement", "stat source",
			fmt.Sprintf("cannot find file %s", src), err)
	}

	dst := filepath.Join(categoryFolder, filepath.FromSlash(relPath))
	if err := fileutil.EnsureDir(filepath.Dir(dst)); err != nil {
		return faults.Wrap(faults.ErrConfiguration, "placement", "create directory",
			fmt.Sprintf("cannot create parent directory for %s", dst), err)
	}
	if err := fileutil.CopyFile(src, dst); err != nil {
		return fmt.Errorf("placement: copy %s to %s: %w", src, dst, err)
	}
	return nil
}
