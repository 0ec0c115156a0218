// Package pipeline describes and runs an ordered chain of image operators.
//
// A pipeline file is YAML:
//
//	steps:
//	  - op: blur
//	  - op: brighten
//	    repeat: 2
//	  - op: threshold
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/soypat/pixkern"
	"github.com/soypat/pixkern/filters"
	"gopkg.in/yaml.v3"
)

// Config is the YAML form of a pipeline.
type Config struct {
	Steps []Step `yaml:"steps"`
}

// Step is a single operator application, optionally repeated.
type Step struct {
	Op     string `yaml:"op"`
	Repeat int    `yaml:"repeat,omitempty"`
}

// Pipeline is a validated operator chain.
type Pipeline struct {
	ops []filters.Operator
	// OnStep, if set, is called after each operator completes.
	OnStep func(step int, op filters.Operator, elapsed time.Duration)
}

// New returns a pipeline applying ops in order.
func New(ops ...filters.Operator) *Pipeline {
	return &Pipeline{ops: ops}
}

// Load reads and parses a pipeline file.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a YAML pipeline and resolves its operator names.
func Parse(data []byte) (*Pipeline, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline: %w", err)
	}
	return FromConfig(cfg)
}

// FromConfig resolves the operator names of cfg.
func FromConfig(cfg Config) (*Pipeline, error) {
	if len(cfg.Steps) == 0 {
		return nil, errors.New("pipeline has no steps")
	}
	p := &Pipeline{}
	for i, s := range cfg.Steps {
		op, err := filters.ParseOperator(s.Op)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		n := s.Repeat
		if n < 0 {
			return nil, fmt.Errorf("step %d: negative repeat %d", i, n)
		} else if n == 0 {
			n = 1
		}
		for range n {
			p.ops = append(p.ops, op)
		}
	}
	return p, nil
}

// Operators returns the expanded operator sequence.
func (p *Pipeline) Operators() []filters.Operator {
	return append([]filters.Operator(nil), p.ops...)
}

// Config returns the YAML form of p with consecutive repeats folded.
func (p *Pipeline) Config() Config {
	var cfg Config
	for _, op := range p.ops {
		if n := len(cfg.Steps); n > 0 && cfg.Steps[n-1].Op == op.String() {
			cfg.Steps[n-1].Repeat++
			continue
		}
		cfg.Steps = append(cfg.Steps, Step{Op: op.String(), Repeat: 1})
	}
	return cfg
}

// Run applies every operator in order. src is not modified and the result
// never aliases it, even for an empty pipeline.
func (p *Pipeline) Run(src *pixkern.Buffer) (*pixkern.Buffer, error) {
	if src == nil {
		return nil, pixkern.ErrInvalidBuffer
	}
	cur := src.Clone()
	for i, op := range p.ops {
		start := time.Now()
		next, err := filters.Apply(op, cur)
		if err != nil {
			return nil, fmt.Errorf("step %d (%v): %w", i, op, err)
		}
		cur = next
		if p.OnStep != nil {
			p.OnStep(i, op, time.Since(start))
		}
	}
	return cur, nil
}
