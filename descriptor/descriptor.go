// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package descriptor is the reflective type-descriptor graph described by
// a soia schema: a recursive, cycle-tolerant model mirroring the runtime's
// serializers, round-trippable to and from a self-describing JSON document.
//
// Records (Struct and Enum) may reference themselves, directly or through a
// chain of optional/array/struct fields. Record is always used through a
// pointer so that a self-referencing graph is just a pointer cycle; callers
// that walk a Type must track visited *Record identities themselves (see
// AsJSON and ParseFromJSON for the pattern).
package descriptor

// Kind is the closed set of shapes a Type can take.
type Kind int

const (
	KindPrimitive Kind = iota
	KindOptional
	KindArray
	KindStruct
	KindEnum
)

// PrimitiveKind is the closed set of scalar kinds.
type PrimitiveKind int

const (
	Bool PrimitiveKind = iota
	Int32
	Int64
	Uint64
	Float32
	Float64
	Timestamp
	String
	Bytes
)

var primitiveNames = [...]string{
	Bool: "bool", Int32: "int32", Int64: "int64", Uint64: "uint64",
	Float32: "float32", Float64: "float64", Timestamp: "timestamp",
	String: "string", Bytes: "bytes",
}

// Name returns the wire name of the primitive kind, as used in descriptor
// JSON and in error messages.
func (k PrimitiveKind) Name() string {
	if int(k) < 0 || int(k) >= len(primitiveNames) {
		return ""
	}
	return primitiveNames[k]
}

// PrimitiveKindByName resolves a descriptor-JSON primitive name, reporting
// ok=false for anything this runtime doesn't define.
func PrimitiveKindByName(name string) (PrimitiveKind, bool) {
	for i, n := range primitiveNames {
		if n == name {
			return PrimitiveKind(i), true
		}
	}
	return 0, false
}

// Type is one node of the descriptor graph.
type Type struct {
	Kind Kind

	Primitive PrimitiveKind // valid iff Kind == KindPrimitive

	Optional *Type // valid iff Kind == KindOptional

	Item        *Type  // valid iff Kind == KindArray
	KeyProperty string // non-empty iff the array is keyed

	Record *Record // valid iff Kind == KindStruct or KindEnum
}

// RecordKind distinguishes the two record shapes.
type RecordKind int

const (
	StructRecord RecordKind = iota
	EnumRecord
)

// Record is a named struct or enum. Two Types referencing the same record
// share the same *Record pointer; that pointer identity is what AsJSON
// dedups on and what ParseFromJSON reconstructs via its shell map.
type Record struct {
	Kind           RecordKind
	RecordID       string // "<module_path>:<qualified_name>"
	Doc            string
	RemovedNumbers []int32

	Fields   []Field   // struct only
	Variants []Variant // enum only
}

// Field is one struct field.
type Field struct {
	Name   string
	Number int32
	Type   *Type
	Doc    string
}

// VariantKind distinguishes the two enum-variant shapes.
type VariantKind int

const (
	ConstantVariant VariantKind = iota
	WrapperVariant
)

// Variant is one enum variant: a constant, or a wrapper carrying a value.
// The distinguished unknown variant (number 0, name "?") is not stored in
// Record.Variants; it is implicit, per the spec's "always present
// logically" rule.
type Variant struct {
	Kind      VariantKind
	Name      string
	Number    int32
	ValueType *Type // valid iff Kind == WrapperVariant
	Doc       string
}

// NewPrimitive returns the Type for a scalar kind.
func NewPrimitive(kind PrimitiveKind) *Type {
	return &Type{Kind: KindPrimitive, Primitive: kind}
}

// NewOptional wraps inner in an optional Type.
func NewOptional(inner *Type) *Type {
	return &Type{Kind: KindOptional, Optional: inner}
}

// NewArray returns a plain (unkeyed) array Type over item.
func NewArray(item *Type) *Type {
	return &Type{Kind: KindArray, Item: item}
}

// NewKeyedArray returns an array Type keyed by keyProperty.
func NewKeyedArray(item *Type, keyProperty string) *Type {
	return &Type{Kind: KindArray, Item: item, KeyProperty: keyProperty}
}

// NewRecordType returns a Type referencing a struct or enum record.
func NewRecordType(record *Record) *Type {
	kind := KindStruct
	if record.Kind == EnumRecord {
		kind = KindEnum
	}
	return &Type{Kind: kind, Record: record}
}
