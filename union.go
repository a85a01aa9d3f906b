package hermes

import "encoding/binary"

// Union is the type of values with incompatible shapes. A Union is always
// canonical: it has at least two members, holds at most one member per
// [Kind], never holds [Never] or another Union and lists its members in
// the order of their kinds. Unions can only be built with [NewUnion].
type Union struct {
	variants []JsonType
}

// NewUnion returns the join of all ts. Members of the same kind are joined
// into one member. If that leaves less than two members, the result is not
// a Union but [Never] or the single member.
func NewUnion(ts ...JsonType) JsonType {
	var slots [KindUnion]JsonType
	for _, t := range ts {
		collect(&slots, t)
	}
	var res []JsonType
	for _, t := range slots {
		if t != nil {
			res = append(res, t)
		}
	}
	switch len(res) {
	case 0:
		return Never
	case 1:
		return res[0]
	}
	return Union{variants: res}
}

func collect(slots *[KindUnion]JsonType, t JsonType) {
	switch t := t.(type) {
	case nil:
		return
	case Union:
		for _, v := range t.variants {
			collect(slots, v)
		}
		return
	}
	k := t.Kind()
	if k == KindNever {
		return
	}
	if s := slots[k]; s != nil {
		slots[k] = joinSame(s, t)
	} else {
		slots[k] = t
	}
}

func (u Union) Kind() Kind { return KindUnion }

// Variants returns a copy of the union's members.
func (u Union) Variants() []JsonType {
	return append([]JsonType(nil), u.variants...)
}

func (u Union) Len() int { return len(u.variants) }

// Member returns the member of kind k.
func (u Union) Member(k Kind) (JsonType, bool) {
	for _, v := range u.variants {
		if v.Kind() == k {
			return v, true
		}
	}
	return nil, false
}

func (u Union) Equal(t JsonType) bool {
	b, ok := t.(Union)
	if !ok || len(u.variants) != len(b.variants) {
		return false
	}
	for i := range u.variants {
		if !u.variants[i].Equal(b.variants[i]) {
			return false
		}
	}
	return true
}

func (u Union) Hash(dh DedupHash) uint64 {
	hash := startHash(KindUnion)
	for _, v := range u.variants {
		binary.Write(hash, hashEndian, v.Hash(dh))
	}
	res := hash.Sum64()
	dh.add(res, u)
	return res
}

func (u Union) Doc() any {
	vs := make([]any, len(u.variants))
	for i, v := range u.variants {
		vs[i] = v.Doc()
	}
	return map[string]any{"union": vs}
}

func (u Union) JSONSchema() any {
	res := jscmAnyOf{AnyOf: make([]any, len(u.variants))}
	for i, v := range u.variants {
		res.AnyOf[i] = v.JSONSchema()
	}
	return res
}

func (Union) jsonType() {}
