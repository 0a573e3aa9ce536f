package oracle

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Recorder passes every call through to Oracle and remembers the answers,
// so a run can be replayed later with NewScript(r.Script()).
type Recorder struct {
	Oracle Oracle

	mu     sync.Mutex
	script ScriptConfig
}

var _ Oracle = (*Recorder)(nil)

// Record wraps o in a Recorder.
func Record(o Oracle) *Recorder {
	return &Recorder{Oracle: o}
}

func (r *Recorder) Choose(ctx context.Context, desc string, options []string) (int, error) {
	choice, err := r.Oracle.Choose(ctx, desc, options)
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	r.script.Choices = append(r.script.Choices, choice)
	r.mu.Unlock()
	return choice, nil
}

func (r *Recorder) Fill(ctx context.Context, tmpl string, blank string) (string, error) {
	text, err := r.Oracle.Fill(ctx, tmpl, blank)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.script.Fills = append(r.script.Fills, text)
	r.mu.Unlock()
	return text, nil
}

func (r *Recorder) Predict(ctx context.Context, prefix string) (string, error) {
	text, err := r.Oracle.Predict(ctx, prefix)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.script.Predictions = append(r.script.Predictions, text)
	r.mu.Unlock()
	return text, nil
}

func (r *Recorder) Ask(ctx context.Context, question string) (string, error) {
	text, err := r.Oracle.Ask(ctx, question)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.script.Answers = append(r.script.Answers, text)
	r.mu.Unlock()
	return text, nil
}

// Script returns a copy of the answers recorded so far.
func (r *Recorder) Script() ScriptConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ScriptConfig{
		Choices:     append([]int(nil), r.script.Choices...),
		Fills:       append([]string(nil), r.script.Fills...),
		Predictions: append([]string(nil), r.script.Predictions...),
		Answers:     append([]string(nil), r.script.Answers...),
	}
}

// WriteScript saves config to path as TOML or YAML, chosen by extension.
func WriteScript(config ScriptConfig, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", path)
	}

	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(abs)); ext {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return errors.Wrapf(err, "marshal %s", abs)
		}
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(config); err != nil {
			return errors.Wrapf(err, "marshal %s", abs)
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, "encoder close")
		}
	default:
		return errors.Errorf("unsupported script file extension %q", ext)
	}

	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", abs)
	}
	return nil
}

// ReadScript loads a ScriptConfig written by WriteScript.
func ReadScript(path string) (ScriptConfig, error) {
	var config ScriptConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &config); err != nil {
			return ScriptConfig{}, errors.Wrapf(err, "parse %s", path)
		}
	case ".yaml", ".yml":
		file, err := os.Open(path)
		if err != nil {
			return ScriptConfig{}, err
		}
		defer file.Close()

		dec := yaml.NewDecoder(file)
		dec.KnownFields(true)
		if err := dec.Decode(&config); err != nil {
			return ScriptConfig{}, errors.Wrapf(err, "parse %s", path)
		}
	default:
		return ScriptConfig{}, errors.Errorf("unsupported script file extension %q", ext)
	}
	return config, nil
}
