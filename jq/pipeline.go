package jq

import (
	"slices"
	"strings"

	"git.fractalqb.de/fractalqb/eloc"
)

// Pipeline applies its transforms from left to right. The zero Pipeline is
// the identity.
type Pipeline struct {
	steps []Transform
}

// Add appends t to the end of p. Pipelines copied from p before are not
// affected.
func (p *Pipeline) Add(t Transform) {
	p.steps = append(slices.Clip(p.steps), t)
}

func (p *Pipeline) Reset() { p.steps = nil }

func (p Pipeline) Len() int { return len(p.steps) }

func (p Pipeline) Steps() []Transform { return slices.Clone(p.steps) }

// Apply threads v through all steps. It stops at the first failing step
// and returns its error.
func (p Pipeline) Apply(v any) (any, error) {
	var err error
	for _, t := range p.steps {
		if v, err = t.Apply(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// String renders p in jq syntax. The empty pipeline is rendered as the
// identity filter ".".
func (p Pipeline) String() string {
	if len(p.steps) == 0 {
		return "."
	}
	var sb strings.Builder
	for i, t := range p.steps {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

// ParsePipeline parses transforms separated by '|'. A single "." is the
// empty pipeline. Field names containing '|' cannot be parsed this way.
func ParsePipeline(text string) (res Pipeline, err error) {
	if strings.TrimSpace(text) == "." {
		return res, nil
	}
	for i, part := range strings.Split(text, "|") {
		t, err := Parse(part)
		if err != nil {
			return Pipeline{}, eloc.Errorf("step %d: %w", i+1, err)
		}
		res.Add(t)
	}
	return res, nil
}
