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

// Package hermes infers structural types from JSON values. Inferred types
// form a join-semilattice with [Never] as bottom element: [Join] merges
// two types into the most specific type describing both.
package hermes

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/maphash"
	"reflect"
	"time"
)

// Kind identifies the variant of a [JsonType]. The order of the kinds is
// the order of members in a [Union].
type Kind int

const (
	KindNever Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindUnion
)

var kindNames = [...]string{
	KindNever:  "never",
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
	KindUnion:  "union",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Atomic reports whether values of kind k have no inner structure.
func (k Kind) Atomic() bool { return k >= KindNever && k <= KindString }

// JsonType is the inferred type of a set of JSON values. The variants are
// [Atom], [Array], [Object] and [Union]; the set is closed. JsonType
// values are immutable.
type JsonType interface {
	Kind() Kind
	Equal(t JsonType) bool
	// Hash computes a structural hash and registers the type in dh
	// if dh is not nil.
	Hash(dh DedupHash) uint64
	// Doc returns the schema document of the type, i.e. the value that
	// is rendered by [Render].
	Doc() any
	JSONSchema() any
	jsonType()
}

var (
	hashEndian = binary.LittleEndian
	hashSeed   = maphash.MakeSeed()
)

func startHash(k Kind) *maphash.Hash {
	h := new(maphash.Hash)
	h.SetSeed(hashSeed)
	binary.Write(h, hashEndian, int32(k))
	return h
}

// KindOf detects the kind of a decoded JSON value. It returns false if v
// is not part of the JSON data model.
func KindOf(v any) (Kind, bool) {
	switch v.(type) {
	case nil:
		return KindNull, true
	case string, time.Time:
		return KindString, true
	case int, uint, int64, uint64, int32, uint32, int16, uint16, int8, uint8:
		return KindNumber, true
	case float32, float64, json.Number:
		return KindNumber, true
	case bool:
		return KindBool, true
	case map[string]any, map[any]any:
		return KindObject, true
	case []any:
		return KindArray, true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map:
		return KindObject, true
	case reflect.Slice, reflect.Array:
		return KindArray, true
	}
	return KindNever, false
}

// Infer computes the type of a JSON value as it is produced by
// encoding/json or gopkg.in/yaml.v3. Infer panics if v is not part of the
// JSON data model.
func Infer(v any) JsonType {
	k, ok := KindOf(v)
	if !ok {
		panic(fmt.Errorf("cannot infer JSON type of %T", v))
	}
	switch k {
	case KindNull:
		return Null
	case KindBool:
		return Bool
	case KindNumber:
		return Number
	case KindString:
		return String
	case KindArray:
		return inferArray(v)
	case KindObject:
		return inferObject(v)
	}
	panic(fmt.Errorf("unexpected kind %s for %T", k, v))
}

func inferArray(v any) JsonType {
	if a, ok := v.([]any); ok {
		ts := make([]JsonType, len(a))
		for i, e := range a {
			ts[i] = Infer(e)
		}
		return Array{Elem: Unify(ts...)}
	}
	rv := reflect.ValueOf(v)
	elem := JsonType(Never)
	for i := range rv.Len() {
		elem = Join(elem, Infer(rv.Index(i).Interface()))
	}
	return Array{Elem: elem}
}

func inferObject(v any) JsonType {
	var fields map[string]JsonType
	switch o := v.(type) {
	case map[string]any:
		fields = make(map[string]JsonType, len(o))
		for k, fv := range o {
			fields[k] = Infer(fv)
		}
	case map[any]any:
		fields = make(map[string]JsonType, len(o))
		for k, fv := range o {
			n := fmt.Sprint(k)
			fields[n] = Join(fields[n], Infer(fv))
		}
	default:
		rv := reflect.ValueOf(v)
		fields = make(map[string]JsonType, rv.Len())
		for it := rv.MapRange(); it.Next(); {
			n := fmt.Sprint(it.Key().Interface())
			fields[n] = Join(fields[n], Infer(it.Value().Interface()))
		}
	}
	return Object{fields: fields}
}

// DedupHash collects types by their structural hash to find types that
// occur at more than one place of a schema.
type DedupHash map[uint64][]Reuse

// Reuse is a type together with the number of places it occurs at.
type Reuse struct {
	Type  JsonType
	Count int
}

func (dh DedupHash) add(h uint64, t JsonType) {
	if dh == nil {
		return
	}
	rs := dh[h]
	for i := range rs {
		if rs[i].Type.Equal(t) {
			rs[i].Count++
			return
		}
	}
	dh[h] = append(rs, Reuse{Type: t, Count: 1})
}

// ReusedTypes returns the arrays and objects that occur more than once,
// most frequent first.
func (dh DedupHash) ReusedTypes() (res []Reuse) {
	for _, rs := range dh {
		for _, r := range rs {
			switch r.Type.Kind() {
			case KindArray, KindObject:
				if r.Count > 1 {
					res = append(res, r)
				}
			}
		}
	}
	sortReuse(res)
	return res
}
