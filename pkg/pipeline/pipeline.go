// Package pipeline runs route scripts against planarized expansions.
//
// This package implements the load → run → render pipeline used by the
// CLI. A route script names an original graph and a list of steps that
// remove, reinsert and split paths of its expansion; the pipeline applies
// them in order, checks the expansion after each step and renders the
// result.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the original graph from JSON
//  2. Run: Apply the steps of a [Script] to the expansion of one component
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// # Usage
//
// Create a Runner and execute a script:
//
//	script, err := pipeline.LoadScript("reroute.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Script:  script,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// # Scripts
//
// Scripts are TOML documents:
//
//	graph = "square.json"
//	embedded = true
//
//	[[step]]
//	op = "insert"
//	edge = "b->d"
//	crossings = [{ edge = "a->c" }]
//
// See [Step] for the operations and their fields.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/planrep/pkg/errors"
	"github.com/matzehuels/planrep/pkg/expansion"
	pio "github.com/matzehuels/planrep/pkg/io"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatDOT, FormatJSON}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// GraphPath is the original graph file. It overrides Script.Graph.
	GraphPath string

	// Document is an already loaded original graph. It overrides GraphPath.
	Document *pio.Document

	// Script is the route script to run. Nil runs no steps and renders the
	// initial expansion of component 0.
	Script *Script

	// Render options
	Formats  []string
	Detailed bool
	Colored  bool

	// Refresh skips the artifact cache.
	Refresh bool

	// Logger overrides the runner's logger.
	Logger *log.Logger
}

// Validate checks the options and applies defaults.
func (o *Options) Validate() error {
	if o.Script == nil {
		o.Script = &Script{}
	}
	if err := o.Script.Validate(); err != nil {
		return err
	}
	if o.Document == nil && o.GraphPath == "" && o.Script.GraphPath() == "" {
		return errs.New(errs.ErrCodeInvalidInput, "no graph given")
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in log records and hook events.
	RunID string

	// Document is the original graph.
	Document *pio.Document

	// Expansion is the expansion after the last step.
	Expansion *expansion.Expansion

	// Snapshot is the JSON form of the final copy graph.
	Snapshot pio.Snapshot

	// SnapshotHash is the content hash of the encoded snapshot.
	SnapshotHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Steps      int
	Crossings  int
	SplitNodes int
	LoadTime   time.Duration
	RunTime    time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits of the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errs.ValidateFormat(format, Formats...)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
