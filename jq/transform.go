// Package jq implements transforms of JSON values that are written in a
// small subset of the jq filter syntax.
package jq

import (
	"errors"
	"fmt"
	"strings"

	"git.fractalqb.de/fractalqb/eloc"
)

var (
	ErrSyntax        = errors.New("syntax error")
	ErrFieldNotFound = errors.New("field not found")
	ErrNotAnObject   = errors.New("not an object")
)

// SyntaxError describes why a text could not be parsed as transform.
type SyntaxError struct {
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %q", e.Msg, e.Text)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// Transform maps one JSON value to another one. String renders the
// transform in jq syntax such that [Parse] yields an equal transform.
type Transform interface {
	Apply(v any) (any, error)
	String() string
	transform()
}

// SelectField projects the named member out of an object. Use [Select]
// or [Parse] to create one; the zero value is invalid and fails to apply
// with [ErrSyntax].
type SelectField struct {
	name string
}

// Select creates a SelectField transform. The name must not be empty and
// must not start or end with white space.
func Select(name string) (SelectField, error) {
	switch {
	case name == "":
		return SelectField{}, &SyntaxError{Text: name, Msg: "field name cannot be empty"}
	case strings.TrimSpace(name) != name:
		return SelectField{}, &SyntaxError{Text: name, Msg: "field name has surrounding white space"}
	}
	return SelectField{name: name}, nil
}

func (s SelectField) Name() string { return s.name }

func (s SelectField) Apply(v any) (any, error) {
	if s.name == "" {
		return nil, &SyntaxError{Text: s.String(), Msg: "field name cannot be empty"}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, eloc.Errorf("cannot select field '%s' from %s: %w",
			s.name,
			describe(v),
			ErrNotAnObject,
		)
	}
	fv, ok := obj[s.name]
	if !ok {
		return nil, eloc.Errorf("field '%s': %w", s.name, ErrFieldNotFound)
	}
	return clone(fv), nil
}

func (s SelectField) String() string { return "." + s.name }

func (SelectField) transform() {}

// Parse parses one transform. The only supported syntax is a '.' followed
// by a field name.
func Parse(text string) (Transform, error) {
	trimmed := strings.TrimSpace(text)
	field, ok := strings.CutPrefix(trimmed, ".")
	if !ok {
		return nil, &SyntaxError{Text: text, Msg: "transform must start with '.'"}
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, &SyntaxError{Text: text, Msg: "field name cannot be empty"}
	}
	return SelectField{name: field}, nil
}

func clone(v any) any {
	switch v := v.(type) {
	case map[string]any:
		res := make(map[string]any, len(v))
		for k, e := range v {
			res[k] = clone(e)
		}
		return res
	case []any:
		res := make([]any, len(v))
		for i, e := range v {
			res[i] = clone(e)
		}
		return res
	}
	return v
}

func describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return fmt.Sprintf("boolean %t", v)
	case string:
		return fmt.Sprintf("string %q", v)
	case []any:
		return fmt.Sprintf("array of length %d", len(v))
	}
	return fmt.Sprintf("%v", v)
}
