// Package bootstrap runs the install-then-merge pipeline.
//
// The pipeline is an ordered list of steps. Each step either succeeds or
// returns an error, and the first error ends the run: nothing after it
// executes. In particular a failed install means package.json is never read
// or written, and a manifest that does not parse is never written.
//
// There is no rollback. If a step after the install fails, the dependencies
// stay installed; StepError.Installed records that so the caller can say so.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"setup-lint/internal/config"
	"setup-lint/internal/installer"
	"setup-lint/internal/logger"
	"setup-lint/internal/manifest"
	"setup-lint/internal/progress"
)

// Options configures a single run. Zero-valued function fields fall back to
// the manifest package; tests replace them to observe which steps ran.
type Options struct {
	// WorkDir is where the manifest search starts.
	WorkDir string

	Manager   installer.PackageManager
	Profile   *config.Profile
	Installer installer.DependencyInstaller
	Progress  progress.Indicator

	// SkipInstall leaves dependencies alone and only merges the manifest.
	SkipInstall bool

	// Output, when set, receives the merged manifest instead of the file
	// being overwritten (dry run).
	Output io.Writer

	ReadManifest  func(path string) ([]byte, error)
	WriteManifest func(path string, data []byte) error
}

// Result describes a successful run.
type Result struct {
	ManifestPath string
	Dependencies []string
	Installed    bool
	Written      bool
}

// StepError identifies the pipeline step that failed.
type StepError struct {
	Step string
	// Installed is true when dependencies were installed before the failure.
	Installed bool
	Err       error
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Step, e.Err)
	if e.Installed {
		msg += "\n(dependencies were installed, but package.json was not updated)"
	}
	return msg
}

func (e *StepError) Unwrap() error { return e.Err }

// run carries the values produced by one step to the next.
type run struct {
	opts Options

	path     string
	deps     []string
	text     []byte
	doc      *manifest.Manifest
	merged   *manifest.Manifest
	rendered []byte

	installed bool
	written   bool
}

type step struct {
	name string
	fn   func(ctx context.Context, r *run) error
}

// Run executes the pipeline once. The progress indicator is started before
// the first step and always stopped before Run returns.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.setDefaults()

	r := &run{opts: opts}

	opts.Progress.Start()
	defer opts.Progress.Stop()

	for _, s := range r.steps() {
		logger.Debug("[DEBUG] Step: %s\n", s.name)
		if err := s.fn(ctx, r); err != nil {
			return nil, &StepError{Step: s.name, Installed: r.installed, Err: err}
		}
	}

	return &Result{
		ManifestPath: r.path,
		Dependencies: r.deps,
		Installed:    r.installed,
		Written:      r.written,
	}, nil
}

func (o *Options) validate() error {
	if o.Profile == nil {
		return fmt.Errorf("bootstrap: no profile")
	}
	if o.Installer == nil && !o.SkipInstall {
		return fmt.Errorf("bootstrap: no dependency installer")
	}
	return nil
}

func (o *Options) setDefaults() {
	if o.WorkDir == "" {
		o.WorkDir = "."
	}
	if o.Progress == nil {
		o.Progress = progress.Nop{}
	}
	if o.ReadManifest == nil {
		o.ReadManifest = manifest.Read
	}
	if o.WriteManifest == nil {
		o.WriteManifest = manifest.Write
	}
}

// steps lists the pipeline in execution order. The manifest is located
// before anything is installed so a missing package.json costs nothing.
func (r *run) steps() []step {
	steps := []step{
		{"resolve manifest", resolveStep},
		{"select dependencies", dependenciesStep},
	}
	if !r.opts.SkipInstall {
		steps = append(steps, step{"install dependencies", installStep})
	}
	return append(steps,
		step{"read manifest", readStep},
		step{"parse manifest", parseStep},
		step{"merge config", mergeStep},
		step{"serialize manifest", serializeStep},
		step{"write manifest", writeStep},
	)
}

func resolveStep(_ context.Context, r *run) error {
	path, err := manifest.Resolve(r.opts.WorkDir)
	if err != nil {
		return err
	}
	r.path = path
	return nil
}

func dependenciesStep(_ context.Context, r *run) error {
	deps, err := r.opts.Profile.DependenciesFor(r.opts.Manager.Name)
	if err != nil {
		return err
	}
	r.deps = deps
	return nil
}

func installStep(ctx context.Context, r *run) error {
	dir := filepath.Dir(r.path)
	logger.Debug("[DEBUG] Installing %d dependencies with %s\n", len(r.deps), r.opts.Manager.Name)
	if err := r.opts.Installer.Install(ctx, r.opts.Manager, dir, r.deps); err != nil {
		return err
	}
	r.installed = !installer.IsDryRun(r.opts.Installer)
	return nil
}

func readStep(_ context.Context, r *run) error {
	text, err := r.opts.ReadManifest(r.path)
	if err != nil {
		return err
	}
	r.text = text
	return nil
}

func parseStep(_ context.Context, r *run) error {
	doc, err := manifest.Parse(r.text)
	if err != nil {
		var pe *manifest.ParseError
		if errors.As(err, &pe) {
			pe.Path = r.path
		}
		return err
	}
	r.doc = doc
	return nil
}

func mergeStep(_ context.Context, r *run) error {
	blocks := make([]manifest.Block, 0, len(r.opts.Profile.Blocks))
	for _, b := range r.opts.Profile.Blocks {
		blocks = append(blocks, manifest.Block{Key: b.Key, Value: b.Value})
	}
	merged, err := manifest.Merge(r.doc, blocks...)
	if err != nil {
		return err
	}
	r.merged = merged
	return nil
}

func serializeStep(_ context.Context, r *run) error {
	out, err := manifest.Serialize(r.merged)
	if err != nil {
		return err
	}
	r.rendered = out
	return nil
}

func writeStep(_ context.Context, r *run) error {
	if r.opts.Output != nil {
		_, err := r.opts.Output.Write(r.rendered)
		return err
	}
	if err := r.opts.WriteManifest(r.path, r.rendered); err != nil {
		return err
	}
	r.written = true
	return nil
}
