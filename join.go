/*
A tool to infer the structure of JSON values and to transform them.
Copyright (C) 2025  Marcus Perlick

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package hermes

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Join returns the most specific type that describes all values of type a
// and all values of type b. Nil arguments are taken as [Never].
func Join(a, b JsonType) JsonType {
	switch {
	case a == nil || a.Kind() == KindNever:
		if b == nil {
			return Never
		}
		return b
	case b == nil || b.Kind() == KindNever:
		return a
	}
	ak, bk := a.Kind(), b.Kind()
	if ak == bk && ak != KindUnion {
		return joinSame(a, b)
	}
	return NewUnion(a, b)
}

// joinSame joins two types of the same kind that are not unions.
func joinSame(a, b JsonType) JsonType {
	switch a := a.(type) {
	case Atom:
		return a
	case Array:
		return Array{Elem: Join(a.elem(), b.(Array).elem())}
	case Object:
		return joinObject(a, b.(Object))
	}
	panic(fmt.Errorf("cannot join %T with %T", a, b))
}

// joinObject keeps members that occur on one side only and joins the types
// of members that occur on both sides.
func joinObject(a, b Object) Object {
	res := Object{fields: make(map[string]JsonType, max(len(a.fields), len(b.fields)))}
	for n, t := range a.fields {
		if bt, ok := b.fields[n]; ok {
			t = Join(t, bt)
		}
		res.fields[n] = t
	}
	for n, t := range b.fields {
		if _, ok := a.fields[n]; !ok {
			res.fields[n] = t
		}
	}
	return res
}

// Unify joins all ts starting from [Never].
func Unify(ts ...JsonType) JsonType {
	return Fold(Lattice{Never}, lattices(ts)...).Type()
}

func lattices(ts []JsonType) []Lattice {
	res := make([]Lattice, len(ts))
	for i, t := range ts {
		res[i] = Lattice{t}
	}
	return res
}

// Compare is a total order on types. It returns 0 iff a.Equal(b).
func Compare(a, b JsonType) int {
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	if a.Kind().Atomic() {
		return 0
	}
	switch a := a.(type) {
	case Array:
		return Compare(a.elem(), b.(Array).elem())
	case Object:
		bo := b.(Object)
		an, bn := a.Names(), bo.Names()
		if c := slices.Compare(an, bn); c != 0 {
			return c
		}
		for _, n := range an {
			if c := Compare(a.fields[n], bo.fields[n]); c != 0 {
				return c
			}
		}
		return 0
	case Union:
		return slices.CompareFunc(a.variants, b.(Union).variants, Compare)
	}
	panic(fmt.Errorf("cannot compare %T", a))
}

func sortReuse(rs []Reuse) {
	slices.SortFunc(rs, func(a, b Reuse) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return Compare(a.Type, b.Type)
	})
}

// Render returns the schema document of t as indented JSON. Members of
// objects are sorted by name.
func Render(t JsonType) string {
	if t == nil {
		t = Never
	}
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(t.Doc()); err != nil {
		// Docs only hold strings, slices and string maps
		panic(err)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// JSONSchemaDoc returns the JSON Schema of t as top-level document.
func JSONSchemaDoc(t JsonType) map[string]any {
	if t == nil {
		t = Never
	}
	res := map[string]any{"$schema": jscmDraft}
	// Round trip to get a flat document that can be extended
	raw, err := json.Marshal(t.JSONSchema())
	if err != nil {
		panic(err)
	}
	var scm map[string]any
	if err := json.Unmarshal(raw, &scm); err != nil {
		panic(err)
	}
	for k, v := range scm {
		res[k] = v
	}
	return res
}
