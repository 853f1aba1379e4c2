package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/planrep/pkg/errors"
)

// Step operations.
const (
	OpInsert   = "insert"
	OpRemove   = "remove"
	OpSplit    = "split"
	OpContract = "contract"
	OpResolve  = "resolve"
	OpCheck    = "check"
	OpSelect   = "select"
)

// Script is a decoded route script.
type Script struct {
	// Graph is the original graph file, relative to the script.
	Graph string `toml:"graph"`

	// Component is the connected component expanded first.
	Component int `toml:"component"`

	// Embedded keeps an embedding of the copy graph and routes insertions
	// through its faces.
	Embedded bool `toml:"embedded"`

	// Check runs the consistency check after every step. Defaults to true.
	Check *bool `toml:"check"`

	// Splittable lists the original nodes that may be split. Empty means
	// every node of degree at least 4, or the flags of the graph file.
	Splittable []string `toml:"splittable"`

	Steps []Step `toml:"step"`

	dir string
}

// Step is one edit of the expansion.
//
//   - insert: reroute the path of Edge along Crossings
//   - remove: delete the path of Edge
//   - split: split copy Copy of Node; the entries named in Side stay and
//     the others move to a new copy
//   - contract: contract node split Split, which must be a single edge
//   - resolve: dissolve every pseudo crossing
//   - check: verify the expansion
//   - select: expand component Component instead
//
// Splits are numbered from 1 in the order of the current split list.
type Step struct {
	Op        string     `toml:"op"`
	Edge      string     `toml:"edge"`
	Node      string     `toml:"node"`
	Copy      int        `toml:"copy"`
	Side      []string   `toml:"side"`
	Split     int        `toml:"split"`
	Component int        `toml:"component"`
	Crossings []Crossing `toml:"crossings"`
}

// Crossing names one crossing of an insert step. Exactly one of Edge,
// Split and Node is set.
//
// Edge and Split cross a segment of that path; Segment picks it by
// position. Without Segment a plain insertion crosses the first segment and
// an embedded one any segment that fits the route.
//
// Node splits copy Copy of that node first, keeping the entries named in
// Side together, and crosses the new split edge.
type Crossing struct {
	Edge    string   `toml:"edge"`
	Split   int      `toml:"split"`
	Segment *int     `toml:"segment"`
	Node    string   `toml:"node"`
	Copy    int      `toml:"copy"`
	Side    []string `toml:"side"`
}

// DecodeScript reads a route script from r. Keys the script format does not
// know are rejected.
func DecodeScript(r io.Reader) (*Script, error) {
	var s Script
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidScript, err, "decode")
	}
	if un := md.Undecoded(); len(un) > 0 {
		keys := make([]string, len(un))
		for i, k := range un {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidScript, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads the route script at path. A relative graph path in the
// script is resolved against the script's directory.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	s, err := DecodeScript(f)
	if err != nil {
		return nil, errs.Context(err, "script %s", path)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// GraphPath returns the graph file named by the script, resolved against
// the script's directory, or "" if the script names none.
func (s *Script) GraphPath() string {
	if s.Graph == "" {
		return ""
	}
	return filepath.Join(s.dir, s.Graph)
}

// ShouldCheck reports whether the expansion is checked after every step.
func (s *Script) ShouldCheck() bool {
	return s.Check == nil || *s.Check
}

// Validate checks the script for errors that do not need the graph.
func (s *Script) Validate() error {
	if s.Graph != "" {
		if err := errs.ValidatePath(s.Graph); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidScript, err, "graph")
		}
	}
	if s.Component < 0 {
		return errs.New(errs.ErrCodeInvalidScript, "negative component %d", s.Component)
	}
	for i, st := range s.Steps {
		if err := st.validate(s.Embedded); err != nil {
			return errs.Context(err, "step %d", i+1)
		}
	}
	return nil
}

func (st Step) validate(embedded bool) error {
	switch st.Op {
	case OpInsert:
		if st.Edge == "" {
			return errs.New(errs.ErrCodeInvalidScript, "insert needs an edge")
		}
		for j, c := range st.Crossings {
			if err := c.validate(embedded); err != nil {
				return errs.Context(err, "crossing %d", j+1)
			}
		}
	case OpRemove:
		if st.Edge == "" {
			return errs.New(errs.ErrCodeInvalidScript, "remove needs an edge")
		}
	case OpSplit:
		if st.Node == "" || len(st.Side) == 0 {
			return errs.New(errs.ErrCodeInvalidScript, "split needs a node and a side")
		}
	case OpContract:
		if st.Split < 1 {
			return errs.New(errs.ErrCodeInvalidScript, "contract needs a split number")
		}
	case OpSelect:
		if st.Component < 0 {
			return errs.New(errs.ErrCodeInvalidScript, "negative component %d", st.Component)
		}
	case OpResolve, OpCheck:
	case "":
		return errs.New(errs.ErrCodeInvalidScript, "missing op")
	default:
		return errs.New(errs.ErrCodeInvalidScript, "unknown op %q", st.Op)
	}
	return nil
}

func (c Crossing) validate(embedded bool) error {
	set := 0
	for _, ok := range []bool{c.Edge != "", c.Split != 0, c.Node != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return errs.New(errs.ErrCodeInvalidScript, "crossing must name exactly one of edge, split and node")
	}
	if c.Segment != nil && *c.Segment < 0 {
		return errs.New(errs.ErrCodeInvalidScript, "negative segment %d", *c.Segment)
	}
	if c.Node != "" {
		if len(c.Side) == 0 {
			return errs.New(errs.ErrCodeInvalidScript, "node crossing needs a side")
		}
		if embedded {
			return errs.New(errs.ErrCodeUnsupported, "node crossings need embedded = false")
		}
	}
	return nil
}
