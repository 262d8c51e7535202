// Package export writes assembled GIFs to the output directory. It mirrors
// the browser download affordance: a fixed default file name, automatic
// uniquing when the name is taken, and a short cooldown that debounces
// re-entrant export requests.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gifforge/internal/assemble"
	"gifforge/internal/config"
	"gifforge/internal/logging"
)

// ErrCooldown is returned when an export is requested while a previous one
// is still inside the cooldown window.
var ErrCooldown = errors.New("export cooling down, try again shortly")

const defaultCooldown = 2 * time.Second

// Exporter writes artifacts to disk.
type Exporter struct {
	outputDir string
	filename  string
	overwrite bool
	cooldown  time.Duration
	logger    *slog.Logger

	mu   sync.Mutex
	last time.Time
}

// Option configures optional Exporter behavior.
type Option func(*Exporter)

// WithCooldown overrides the debounce window. Zero disables debouncing.
func WithCooldown(d time.Duration) Option {
	return func(e *Exporter) {
		e.cooldown = d
	}
}

// New constructs an Exporter from config.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Exporter {
	e := &Exporter{
		outputDir: cfg.Paths.OutputDir,
		filename:  cfg.Output.Filename,
		overwrite: cfg.Output.Overwrite,
		cooldown:  defaultCooldown,
		logger:    logging.WithComponent(logger, "export"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes the artifact under the configured output directory and
// default file name, returning the path written.
func (e *Exporter) Export(artifact *assemble.GIF) (string, error) {
	return e.ExportTo(filepath.Join(e.outputDir, e.filename), artifact)
}

// ExportTo writes the artifact to an explicit path.
func (e *Exporter) ExportTo(path string, artifact *assemble.GIF) (string, error) {
	if artifact == nil || len(artifact.Data) == 0 {
		return "", errors.New("nothing to export")
	}

	// Arm the debounce up front so a re-entrant request cannot race past
	// it, but disarm again on failure: only a written file starts the
	// cooldown, a failed attempt may be retried immediately.
	e.mu.Lock()
	if e.cooldown > 0 && !e.last.IsZero() && time.Since(e.last) < e.cooldown {
		e.mu.Unlock()
		return "", ErrCooldown
	}
	e.last = time.Now()
	e.mu.Unlock()

	fail := func(err error) (string, error) {
		e.mu.Lock()
		e.last = time.Time{}
		e.mu.Unlock()
		return "", err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fail(fmt.Errorf("create output directory: %w", err))
		}
	}

	target := path
	if !e.overwrite {
		unique, err := uniquePath(path)
		if err != nil {
			return fail(err)
		}
		target = unique
	}

	if err := os.WriteFile(target, artifact.Data, 0o644); err != nil {
		return fail(fmt.Errorf("write gif: %w", err))
	}

	e.logger.Info("gif exported",
		logging.String("path", target),
		logging.Int("bytes", len(artifact.Data)),
		logging.Int("frames", artifact.FrameCount),
	)
	return target, nil
}

// uniquePath returns path itself when free, otherwise "name (n).gif" like a
// browser download would.
func uniquePath(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return path, nil
	} else if err != nil {
		return "", fmt.Errorf("stat output: %w", err)
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 1; n < 100; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("stat output: %w", err)
		}
	}
	return "", fmt.Errorf("no free name for %s", path)
}
