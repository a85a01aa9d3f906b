package hermes

import (
	"encoding/binary"
	"iter"
	"maps"
	"slices"
)

// Object is the type of JSON objects. It maps every observed member name
// to the type of the member's values.
type Object struct {
	fields map[string]JsonType
}

// NewObject creates an object type from a copy of fields. Nil field types
// are taken as [Never].
func NewObject(fields map[string]JsonType) Object {
	res := Object{fields: make(map[string]JsonType, len(fields))}
	for n, t := range fields {
		if t == nil {
			t = Never
		}
		res.fields[n] = t
	}
	return res
}

func (o Object) Kind() Kind { return KindObject }

func (o Object) Len() int { return len(o.fields) }

func (o Object) Field(name string) (JsonType, bool) {
	t, ok := o.fields[name]
	return t, ok
}

// Names returns the member names in lexical order.
func (o Object) Names() []string {
	return slices.Sorted(maps.Keys(o.fields))
}

// All iterates the members in lexical order of their names.
func (o Object) All() iter.Seq2[string, JsonType] {
	return func(yield func(string, JsonType) bool) {
		for _, n := range o.Names() {
			if !yield(n, o.fields[n]) {
				return
			}
		}
	}
}

func (o Object) Equal(t JsonType) bool {
	b, ok := t.(Object)
	if !ok || len(o.fields) != len(b.fields) {
		return false
	}
	for n, ot := range o.fields {
		bt, ok := b.fields[n]
		if !ok || !ot.Equal(bt) {
			return false
		}
	}
	return true
}

func (o Object) Hash(dh DedupHash) uint64 {
	hash := startHash(KindObject)
	for n, t := range o.All() {
		hash.WriteString(n)
		hash.WriteByte(0)
		binary.Write(hash, hashEndian, t.Hash(dh))
	}
	res := hash.Sum64()
	dh.add(res, o)
	return res
}

func (o Object) Doc() any {
	res := make(map[string]any, len(o.fields))
	for n, t := range o.fields {
		res[n] = t.Doc()
	}
	return res
}

func (o Object) JSONSchema() any {
	scm := jscmObj{
		jscmType: jscmType{Type: "object"},
		Props:    make(map[string]any, len(o.fields)),
	}
	for n, t := range o.fields {
		scm.Props[n] = t.JSONSchema()
	}
	return scm
}

func (Object) jsonType() {}
