package hermes

import "encoding/binary"

// Array is the type of homogeneous arrays. Elem is the join of the types
// of all observed elements; it is [Never] for empty arrays.
type Array struct {
	Elem JsonType
}

func (a Array) Kind() Kind { return KindArray }

func (a Array) Equal(t JsonType) bool {
	b, ok := t.(Array)
	return ok && a.elem().Equal(b.elem())
}

func (a Array) Hash(dh DedupHash) uint64 {
	hash := startHash(KindArray)
	binary.Write(hash, hashEndian, a.elem().Hash(dh))
	res := hash.Sum64()
	dh.add(res, a)
	return res
}

func (a Array) Doc() any { return []any{a.elem().Doc()} }

func (a Array) JSONSchema() any {
	return jscmArray{
		jscmType: jscmType{Type: "array"},
		Items:    a.elem().JSONSchema(),
	}
}

func (Array) jsonType() {}

// elem treats the zero Array as array of Never.
func (a Array) elem() JsonType {
	if a.Elem == nil {
		return Never
	}
	return a.Elem
}
