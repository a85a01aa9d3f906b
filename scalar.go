package hermes

// Atom is the type of structurally atomic JSON values. The only atoms are
// [Never], [Null], [Bool], [Number] and [String].
type Atom Kind

const (
	// Never is the type of an empty set of values and the bottom element
	// of the type lattice.
	Never  = Atom(KindNever)
	Null   = Atom(KindNull)
	Bool   = Atom(KindBool)
	Number = Atom(KindNumber)
	String = Atom(KindString)
)

func (a Atom) Kind() Kind { return Kind(a) }

func (a Atom) String() string { return Kind(a).String() }

func (a Atom) Equal(t JsonType) bool {
	b, ok := t.(Atom)
	return ok && a == b
}

func (a Atom) Hash(dh DedupHash) uint64 {
	res := startHash(a.Kind()).Sum64()
	dh.add(res, a)
	return res
}

func (a Atom) Doc() any { return a.String() }

func (a Atom) JSONSchema() any {
	switch a {
	case Never:
		return jscmNot{Not: struct{}{}}
	case Null:
		return jscmType{Type: "null"}
	case Bool:
		return jscmType{Type: "boolean"}
	case Number:
		return jscmType{Type: "number"}
	}
	return jscmType{Type: "string"}
}

func (Atom) jsonType() {}
