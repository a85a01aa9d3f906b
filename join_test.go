package hermes

import (
	"fmt"
	"testing"
)

func typeCorpus(t *testing.T) []JsonType {
	res := []JsonType{Never, Null, Bool, Number, String}
	for _, js := range []string{
		`[]`,
		`[1]`,
		`["x"]`,
		`[1, "x"]`,
		`[[1], null]`,
		`{}`,
		`{"a": 1}`,
		`{"a": "x", "b": true}`,
		`{"b": [{"c": null}]}`,
		`[{"a": 1}, 2]`,
		`[{"a": [1]}, {"a": ["x"]}, "s"]`,
	} {
		res = append(res, inferJSON(t, js))
	}
	res = append(res,
		NewUnion(Number, String),
		NewUnion(Null, Array{Elem: Bool}, NewObject(map[string]JsonType{"a": Null})),
	)
	return res
}

func TestJoin_identity(t *testing.T) {
	for _, x := range typeCorpus(t) {
		shallEqual(t, Join(Never, x), x)
		shallEqual(t, Join(x, Never), x)
		shallEqual(t, Join(nil, x), x)
	}
}

func TestJoin_idempotent(t *testing.T) {
	for _, x := range typeCorpus(t) {
		shallEqual(t, Join(x, x), x)
	}
}

func TestJoin_commutative(t *testing.T) {
	ts := typeCorpus(t)
	for _, a := range ts {
		for _, b := range ts {
			shallEqual(t, Join(a, b), Join(b, a))
		}
	}
}

func TestJoin_associative(t *testing.T) {
	ts := typeCorpus(t)
	for _, a := range ts {
		for _, b := range ts {
			for _, c := range ts {
				shallEqual(t, Join(Join(a, b), c), Join(a, Join(b, c)))
			}
		}
	}
}

func TestJoin_table(t *testing.T) {
	point := NewObject(map[string]JsonType{"x": Number})
	tests := []struct {
		a, b, want JsonType
	}{
		{Bool, Bool, Bool},
		{Null, Null, Null},
		{Bool, Number, NewUnion(Bool, Number)},
		{Array{Elem: Number}, Array{Elem: String}, Array{Elem: NewUnion(Number, String)}},
		{Array{Elem: Never}, Array{Elem: Bool}, Array{Elem: Bool}},
		{Array{Elem: Number}, point, NewUnion(Array{Elem: Number}, point)},
		{NewUnion(Number, String), NewUnion(String, Null), NewUnion(Null, Number, String)},
		{NewUnion(Number, String), Bool, NewUnion(Bool, Number, String)},
		{Bool, NewUnion(Number, String), NewUnion(Bool, Number, String)},
		{NewUnion(Number, String), Number, NewUnion(Number, String)},
	}
	for i, test := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			shallEqual(t, Join(test.a, test.b), test.want)
		})
	}
}

func TestJoin_objectFields(t *testing.T) {
	a := NewObject(map[string]JsonType{"shared": Number, "left": Bool})
	b := NewObject(map[string]JsonType{"shared": String, "right": Null})
	o, ok := Join(a, b).(Object)
	if !ok {
		t.Fatalf("join of objects is %T", Join(a, b))
	}
	if o.Len() != 3 {
		t.Errorf("joined object has %d members", o.Len())
	}
	if ft, _ := o.Field("shared"); !ft.Equal(NewUnion(Number, String)) {
		t.Errorf("shared member not joined: %s", Render(ft))
	}
	if ft, _ := o.Field("left"); !ft.Equal(Bool) {
		t.Errorf("left member changed: %s", Render(ft))
	}
	if ft, _ := o.Field("right"); !ft.Equal(Null) {
		t.Errorf("right member changed: %s", Render(ft))
	}
	if ft, _ := a.Field("shared"); !ft.Equal(Number) {
		t.Error("join modified its operand")
	}
}

func TestJoin_unionMergesSameKind(t *testing.T) {
	u := Join(NewUnion(Number, Array{Elem: Number}), Array{Elem: String}).(Union)
	if u.Len() != 2 {
		t.Fatalf("union has %d members: %s", u.Len(), Render(u))
	}
	arr, _ := u.Member(KindArray)
	shallEqual(t, arr, Array{Elem: NewUnion(Number, String)})
}

func TestNewUnion_canonical(t *testing.T) {
	shallEqual(t, NewUnion(), Never)
	shallEqual(t, NewUnion(Never, Bool, Never), Bool)
	shallEqual(t, NewUnion(String, Number), NewUnion(Number, String))
	shallEqual(t,
		NewUnion(NewUnion(Null, Bool), NewUnion(String, NewUnion(Bool, Number))),
		NewUnion(Null, Bool, Number, String),
	)
	u := NewUnion(String, Null, String, Number).(Union)
	var kinds []Kind
	for _, v := range u.Variants() {
		kinds = append(kinds, v.Kind())
	}
	if fmt.Sprint(kinds) != "[null number string]" {
		t.Errorf("union members %v", kinds)
	}
}

func permutations(ts []JsonType) (res [][]JsonType) {
	if len(ts) <= 1 {
		return [][]JsonType{ts}
	}
	for i := range ts {
		rest := make([]JsonType, 0, len(ts)-1)
		rest = append(rest, ts[:i]...)
		rest = append(rest, ts[i+1:]...)
		for _, p := range permutations(rest) {
			res = append(res, append([]JsonType{ts[i]}, p...))
		}
	}
	return res
}

func TestUnify_orderIndependent(t *testing.T) {
	sets := [][]JsonType{
		{Number, String, Bool},
		{Number, Number, String},
		{inferJSON(t, `[1]`), inferJSON(t, `["x"]`), inferJSON(t, `1`), inferJSON(t, `"x"`)},
		{inferJSON(t, `{"a": 1}`), inferJSON(t, `{"b": 1}`), inferJSON(t, `{"a": "x"}`), Null},
	}
	for _, set := range sets {
		want := Unify(set...)
		for _, p := range permutations(set) {
			shallEqual(t, Unify(p...), want)
		}
	}
}

func TestUnify(t *testing.T) {
	shallEqual(t, Unify(), Never)
	shallEqual(t, Unify(Number, Number, String), NewUnion(Number, String))
	u := Unify(Number, Number, String).(Union)
	if u.Len() != 2 {
		t.Errorf("union of %d members", u.Len())
	}
}

func TestFold(t *testing.T) {
	res := Fold(Lattice{Never}, Lattice{Number}, Lattice{}, Lattice{Bool})
	shallEqual(t, res.Type(), NewUnion(Bool, Number))
}

func TestCompare(t *testing.T) {
	ts := typeCorpus(t)
	for _, a := range ts {
		for _, b := range ts {
			c := Compare(a, b)
			if (c == 0) != a.Equal(b) {
				t.Errorf("compare %s / %s = %d", Render(a), Render(b), c)
			}
			if Compare(b, a) != -c {
				t.Errorf("compare not antisymmetric: %s / %s", Render(a), Render(b))
			}
		}
	}
}
