package holey

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/vito/holey/pkg/hm"
	"github.com/vito/holey/pkg/oracle"
	"gopkg.in/yaml.v3"
)

// ProblemFile is the file FindProblem looks for.
const ProblemFile = "holey.toml"

// Problem describes a synthesis task: what to build, the library it may use
// and, optionally, a scripted oracle to replay.
type Problem struct {
	// Description guides the oracle's choices.
	Description string `toml:"description" yaml:"description"`

	// Goal is the param the finished program must satisfy.
	Goal ParamSpec `toml:"goal" yaml:"goal"`

	// Scope lists the library functions in scope, bound at runtime to
	// library references of the same name.
	Scope []ParamSpec `toml:"context,omitempty" yaml:"context,omitempty"`

	// Oracle holds scripted answers, if any.
	Oracle *oracle.ScriptConfig `toml:"oracle,omitempty" yaml:"oracle,omitempty"`
}

// ParamSpec is the file form of hm.Param.
type ParamSpec struct {
	Name        string   `toml:"name" yaml:"name"`
	Description string   `toml:"description,omitempty" yaml:"description,omitempty"`
	Type        TypeSpec `toml:"type" yaml:"type"`
}

// TypeSpec is the file form of hm.Type: either an exact type name, or the
// params of a curried function and its return type.
type TypeSpec struct {
	Exact   string      `toml:"exact,omitempty" yaml:"exact,omitempty"`
	Params  []ParamSpec `toml:"params,omitempty" yaml:"params,omitempty"`
	Returns *TypeSpec   `toml:"returns,omitempty" yaml:"returns,omitempty"`
}

// LoadProblem loads a problem from a .toml, .yaml or .yml file.
func LoadProblem(path string) (*Problem, error) {
	var problem Problem
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &problem); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
	case ".yaml", ".yml":
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		dec := yaml.NewDecoder(file)
		dec.KnownFields(true)
		if err := dec.Decode(&problem); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
	default:
		return nil, errors.Errorf("unsupported problem file extension %q", ext)
	}
	if err := problem.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid problem %s", path)
	}
	return &problem, nil
}

// FindProblem searches for holey.toml starting from dir and walking up to
// parent directories, stopping at a .git boundary. Returns ("", nil, nil) if
// none is found.
func FindProblem(dir string) (string, *Problem, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, ProblemFile)
		found, err := exists(path)
		if err != nil {
			return "", nil, err
		}
		if found {
			problem, err := LoadProblem(path)
			if err != nil {
				return "", nil, err
			}
			return path, problem, nil
		}

		repo, err := exists(filepath.Join(dir, ".git"))
		if err != nil {
			return "", nil, err
		}
		if repo {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// exists reports whether path exists. Errors other than the path missing are
// returned.
func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, errors.Wrapf(err, "stat %s", path)
	}
}

// Validate checks that every param and type is well formed.
func (p *Problem) Validate() error {
	if _, err := p.Goal.Param(); err != nil {
		return fmt.Errorf("goal: %w", err)
	}
	_, err := p.TypingContext()
	return err
}

// TypingContext returns the params of Scope, in order.
func (p *Problem) TypingContext() (*hm.Context, error) {
	var ctx *hm.Context
	for i, spec := range p.Scope {
		param, err := spec.Param()
		if err != nil {
			return nil, fmt.Errorf("context[%d]: %w", i, err)
		}
		ctx = ctx.Add(param)
	}
	return ctx, nil
}

// Start returns the initial term, a hole for the goal, and its root Position.
func (p *Problem) Start() (Term, Position, error) {
	goal, err := p.Goal.Param()
	if err != nil {
		return nil, Position{}, fmt.Errorf("goal: %w", err)
	}
	ctx, err := p.TypingContext()
	if err != nil {
		return nil, Position{}, err
	}
	return Hole{Param: goal}, Root(ctx, LibEnv(ctx)), nil
}

// Param converts s to an hm.Param.
func (s ParamSpec) Param() (hm.Param, error) {
	if s.Name == "" {
		return hm.Param{}, errors.New("param has no name")
	}
	t, err := s.Type.Type()
	if err != nil {
		return hm.Param{}, fmt.Errorf("param %s: %w", s.Name, err)
	}
	return hm.NewParam(s.Name, t, s.Description), nil
}

// Type converts s to an hm.Type.
func (s TypeSpec) Type() (hm.Type, error) {
	if len(s.Params) == 0 {
		if s.Returns != nil {
			return nil, errors.New("returns given without params")
		}
		if s.Exact == "" {
			return nil, errors.New("type has neither exact name nor params")
		}
		return hm.Exact(s.Exact), nil
	}
	if s.Exact != "" {
		return nil, errors.Errorf("type %q cannot also have params", s.Exact)
	}
	if s.Returns == nil {
		return nil, errors.New("function type has no return type")
	}
	ret, err := s.Returns.Type()
	if err != nil {
		return nil, fmt.Errorf("returns: %w", err)
	}
	params := make([]hm.Param, len(s.Params))
	for i, ps := range s.Params {
		param, err := ps.Param()
		if err != nil {
			return nil, fmt.Errorf("params[%d]: %w", i, err)
		}
		params[i] = param
	}
	return hm.NewCurriedFnType(ret, params...), nil
}
