package hermes

import (
	"fmt"
	"io"

	"git.fractalqb.de/fractalqb/eloc"
	"git.fractalqb.de/fractalqb/tetrta"
)

type SummaryConfig struct {
	TreeStyle *tetrta.TreeStyle
}

// Summary prints types as indented trees.
type Summary struct {
	w    io.Writer
	tree tetrta.Tree
	SummaryConfig
}

func NewSummary(w io.Writer, cfg *SummaryConfig) *Summary {
	res := &Summary{w: w}
	if cfg != nil {
		res.SummaryConfig = *cfg
		res.tree.Style = cfg.TreeStyle
	}
	return res
}

func (s *Summary) Print(t JsonType) error {
	if t == nil {
		t = Never
	}
	return s.printIndent(t, true)
}

func (s *Summary) printIndent(t JsonType, last bool) (err error) {
	if last {
		_, err = io.WriteString(s.w, s.tree.Last(nil))
	} else {
		_, err = io.WriteString(s.w, s.tree.Next(nil))
	}
	if err != nil {
		return eloc.At(err)
	}
	switch t := t.(type) {
	case Atom:
		_, err = fmt.Fprintln(s.w, AtomLabel(t))
		return eloc.At(err)
	case Array:
		return s.array(t)
	case Object:
		return s.object(t)
	case Union:
		return s.union(t)
	}
	return eloc.Errorf("unsupported type %T", t)
}

func AtomLabel(a Atom) string {
	switch a {
	case Never:
		return "Never"
	case Null:
		return "Null"
	case Bool:
		return "Boolean"
	case Number:
		return "Number"
	}
	return "String"
}

func ArrayLabel(a Array) string {
	if a.elem().Kind() == KindNever {
		return "Empty array"
	}
	return "Array of"
}

func (s *Summary) array(a Array) error {
	if _, err := fmt.Fprintf(s.w, "%s:\n", ArrayLabel(a)); err != nil {
		return eloc.At(err)
	}
	s.tree.Descend()
	defer s.tree.Ascend(1)
	return s.printIndent(a.elem(), true)
}

func ObjectLabel(o Object) string {
	return fmt.Sprintf("Object with %d members", o.Len())
}

func (s *Summary) object(o Object) error {
	if _, err := fmt.Fprintf(s.w, "%s:\n", ObjectLabel(o)); err != nil {
		return eloc.At(err)
	}
	nms := o.Names()
	s.tree.Descend()
	for i, n := range nms {
		var pf string
		if i == len(nms)-1 {
			pf = s.tree.Last(nil)
		} else {
			pf = s.tree.Next(nil)
		}
		if _, err := fmt.Fprintf(s.w, "%s#%-2d %q:\n", pf, i+1, n); err != nil {
			return eloc.At(err)
		}
		s.tree.Descend()
		if err := s.printIndent(o.fields[n], true); err != nil {
			return err
		}
		s.tree.Ascend(1)
	}
	s.tree.Ascend(1)
	return nil
}

func UnionLabel(u Union) string {
	return fmt.Sprintf("Union of %d types", len(u.variants))
}

func (s *Summary) union(u Union) error {
	if _, err := fmt.Fprintf(s.w, "%s:\n", UnionLabel(u)); err != nil {
		return eloc.At(err)
	}
	s.tree.Descend()
	for i, v := range u.variants {
		if err := s.printIndent(v, i == len(u.variants)-1); err != nil {
			return err
		}
	}
	s.tree.Ascend(1)
	return nil
}
