// Package plan reads splice plans: declarative lists of guarded edits,
// grouped by target file.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/splice/debug"
	"github.com/signadot/splice/edit"

	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"
)

// ErrInvalid is wrapped by errors for plans which decode but cannot be run.
var ErrInvalid = errors.New("invalid plan")

type Plan struct {
	// Path is the plan file, Root the directory relative file paths are
	// resolved against.
	Path string `yaml:"-"`
	Root string `yaml:"-"`

	Description string         `yaml:"description,omitempty"`
	Env         map[string]any `yaml:"env,omitempty"`
	Files       []File         `yaml:"files"`
}

type File struct {
	Path string `yaml:"path"`
	// Optional files are skipped when they do not exist.
	Optional bool `yaml:"optional,omitempty"`
	// Expect lists strings which must be present once all edits ran.
	Expect Strings    `yaml:"expect,omitempty"`
	Edits  []EditSpec `yaml:"edits"`
}

type EditSpec struct {
	Name     string  `yaml:"name,omitempty"`
	Op       string  `yaml:"op"`
	At       Strings `yaml:"at,omitempty"`
	Last     bool    `yaml:"last,omitempty"`
	Until    string  `yaml:"until,omitempty"`
	Text     string  `yaml:"text,omitempty"`
	Old      string  `yaml:"old,omitempty"`
	Count    int     `yaml:"count,omitempty"`
	Line     bool    `yaml:"line,omitempty"`
	Unless   Strings `yaml:"unless,omitempty"`
	Requires Strings `yaml:"requires,omitempty"`
	Fallback string  `yaml:"fallback,omitempty"`
	If       string  `yaml:"if,omitempty"`

	edit *edit.Edit
	cond *vm.Program
}

// Edit returns the compiled edit. It is nil for specs not obtained from
// Open or Decode.
func (s *EditSpec) Edit() *edit.Edit {
	return s.edit
}

func (s *EditSpec) String() string {
	if s.edit != nil {
		return s.edit.String()
	}
	return fmt.Sprintf("%s %s", s.Op, s.Name)
}

type options struct {
	root    string
	dir     string
	profile string
	env     map[string]any
}

type Option func(*options)

// WithRoot sets the directory target paths are relative to. It defaults
// to the directory containing the plan.
func WithRoot(dir string) Option {
	return func(o *options) { o.root = dir }
}

// WithProfile patches the plan with a profile before decoding it. A name
// which is not a file is looked up in the profiles directory next to the
// plan.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithEnv overrides plan environment values.
func WithEnv(env map[string]any) Option {
	return func(o *options) { o.env = env }
}

// Open reads the plan at path.
func Open(path string, opts ...Option) (*Plan, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read plan %q: %w", path, err)
	}
	o := &options{root: filepath.Dir(path), dir: filepath.Dir(path)}
	for _, opt := range opts {
		opt(o)
	}
	p, err := decode(d, path, o)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Decode decodes a plan from memory. Relative target paths are resolved
// against the root given by WithRoot, or the working directory.
func Decode(d []byte, opts ...Option) (*Plan, error) {
	o := &options{root: "."}
	for _, opt := range opts {
		opt(o)
	}
	return decode(d, "", o)
}

func decode(d []byte, path string, o *options) (*Plan, error) {
	name := path
	if name == "" {
		name = "<plan>"
	}
	if o.profile != "" {
		dir := o.dir
		if dir == "" {
			dir = o.root
		}
		pd, err := applyProfile(d, dir, o.profile)
		if err != nil {
			return nil, fmt.Errorf("error applying profile %q to %s: %w", o.profile, name, err)
		}
		d = pd
	}
	p := &Plan{}
	if err := yaml.UnmarshalWithOptions(d, p, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", name, err)
	}
	p.Path = path
	p.Root = o.root

	envEnv, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	if p.Env == nil {
		p.Env = map[string]any{}
	}
	MergeEnv(p.Env, envEnv)
	MergeEnv(p.Env, o.env)
	if debug.Plan() {
		debug.Logf("plan %s env:\n%s\n", name, p.Env)
	}
	if err := p.compile(name); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Plan) compile(name string) error {
	if len(p.Files) == 0 {
		return fmt.Errorf("%w: %s has no files", ErrInvalid, name)
	}
	for i := range p.Files {
		f := &p.Files[i]
		if f.Path == "" {
			return fmt.Errorf("%w: %s: files[%d] has no path", ErrInvalid, name, i)
		}
		for j := range f.Edits {
			s := &f.Edits[j]
			if err := s.compile(); err != nil {
				return fmt.Errorf("%w: %s: files[%d].edits[%d] (%s): %w", ErrInvalid, name, i, j, s.Name, err)
			}
		}
	}
	return nil
}

func (s *EditSpec) compile() error {
	op, err := edit.ParseOp(s.Op)
	if err != nil {
		return err
	}
	e := &edit.Edit{
		Name:     s.Name,
		Op:       op,
		At:       s.At,
		Last:     s.Last,
		Until:    s.Until,
		Text:     s.Text,
		Old:      s.Old,
		Count:    s.Count,
		Line:     s.Line,
		Unless:   s.Unless,
		Requires: s.Requires,
		Fallback: edit.Op(s.Fallback),
	}
	if err := e.Validate(); err != nil {
		return err
	}
	s.edit = e
	if s.If == "" {
		return nil
	}
	prg, err := compileCond(s.If)
	if err != nil {
		return fmt.Errorf("error compiling if %q: %w", s.If, err)
	}
	s.cond = prg
	return nil
}

// Resolve returns the location of a target path.
func (p *Plan) Resolve(path string) string {
	if filepath.IsAbs(path) || strings.Contains(path, "://") {
		return path
	}
	return filepath.Join(p.Root, path)
}

// Edits returns the number of edits in the plan.
func (p *Plan) Edits() int {
	n := 0
	for i := range p.Files {
		n += len(p.Files[i].Edits)
	}
	return n
}

// Single returns a plan applying the one edit e to path, resolved against
// root.
func Single(root, path string, e *edit.Edit) (*Plan, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no path", ErrInvalid)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, e, err)
	}
	return &Plan{
		Root: root,
		Env:  map[string]any{},
		Files: []File{{
			Path:  path,
			Edits: []EditSpec{{Name: e.Name, Op: string(e.Op), edit: e}},
		}},
	}, nil
}
