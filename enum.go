// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/solidcoredata/soia/descriptor"
)

// tagEnumWrapperN is tagArray2 (248) reused in enum context: a
// length-prefixed variant number follows, rather than "two array
// elements". See wire.go's tag table note on this overload.
const tagEnumWrapperN = tagArray2

// EnumUnrecognized is the opaque payload an enum's distinguished unknown
// variant carries when it wraps a number/variant the schema doesn't
// define. Exactly one of Bytes (binary path) or JSON (JSON path, when
// HasJSON) is populated.
type EnumUnrecognized struct {
	Bytes   []byte
	JSON    jsonValue
	HasJSON bool
}

// EnumOptions wires a generated enum type F into the runtime. Enums have no
// separate mutable builder (spec.md §3: only structs get one) — F is both
// the value type registration hands back for constants and the frozen
// value type serializers produce.
type EnumOptions[F any] struct {
	// Unknown is the distinguished unknown-variant zero value, with no
	// unrecognized payload attached.
	Unknown F
	// KindOrdinal returns 0 for the unknown variant, or the kind_ordinal
	// passed to AddConstantVariant/AddWrapperVariant for f's variant.
	KindOrdinal func(f F) int
	// GetUnrecognized returns the unrecognized payload attached to the
	// unknown variant's value, or nil if f doesn't carry one (including
	// when f is simply Unknown).
	GetUnrecognized func(f F) *EnumUnrecognized
	// WrapUnrecognized builds an unknown-variant F carrying u.
	WrapUnrecognized func(u *EnumUnrecognized) F
}

type enumVariant[F any] struct {
	kind        descriptor.VariantKind
	name        string
	number      int32
	kindOrdinal int
	ser         anySerializer // nil for constant variants
	instance    F             // valid for constant variants
	wrap        func(any) F   // valid for wrapper variants
	unwrap      func(F) any   // valid for wrapper variants
}

// EnumBuilder accumulates variants and removed numbers for one enum record
// before Finalize freezes it into a Serializer[F].
type EnumBuilder[F any] struct {
	recordID       string
	doc            string
	opts           EnumOptions[F]
	variants       []*enumVariant[F]
	numbersUsed    map[int32]bool
	namesUsed      map[string]bool
	ordinalsUsed   map[int]bool
	removedNumbers []int32
	finalized      bool
}

// NewEnumSerializer starts building the serializer for one enum record.
func NewEnumSerializer[F any](recordID string, opts EnumOptions[F]) *EnumBuilder[F] {
	return &EnumBuilder[F]{
		recordID:     recordID,
		opts:         opts,
		numbersUsed:  map[int32]bool{},
		namesUsed:    map[string]bool{},
		ordinalsUsed: map[int]bool{},
	}
}

// Doc attaches a documentation string emitted into descriptor JSON.
func (eb *EnumBuilder[F]) Doc(doc string) *EnumBuilder[F] {
	eb.doc = doc
	return eb
}

func (eb *EnumBuilder[F]) checkVariant(number int32, name string, kindOrdinal int) {
	if eb.finalized {
		panic(ErrAlreadyFinalized)
	}
	if number < 1 {
		panic(fmt.Errorf("%w: enum %s: variant number must be >= 1, got %d", ErrInvalidArgument, eb.recordID, number))
	}
	if eb.numbersUsed[number] {
		panic(fmt.Errorf("%w: enum %s: variant/removed number %d reused", ErrInvalidArgument, eb.recordID, number))
	}
	if eb.namesUsed[name] {
		panic(fmt.Errorf("%w: enum %s: variant name %q reused", ErrInvalidArgument, eb.recordID, name))
	}
	if eb.ordinalsUsed[kindOrdinal] {
		panic(fmt.Errorf("%w: enum %s: kind ordinal %d reused", ErrInvalidArgument, eb.recordID, kindOrdinal))
	}
	eb.numbersUsed[number] = true
	eb.namesUsed[name] = true
	eb.ordinalsUsed[kindOrdinal] = true
}

// AddRemovedNumber marks number as a removed variant: it decodes to the
// unknown default and is never re-encoded.
func (eb *EnumBuilder[F]) AddRemovedNumber(number int32) *EnumBuilder[F] {
	if eb.finalized {
		panic(ErrAlreadyFinalized)
	}
	if eb.numbersUsed[number] {
		panic(fmt.Errorf("%w: enum %s: variant/removed number %d reused", ErrInvalidArgument, eb.recordID, number))
	}
	eb.numbersUsed[number] = true
	eb.removedNumbers = append(eb.removedNumbers, number)
	return eb
}

// AddConstantVariant registers a singleton variant. kindOrdinal is whatever
// dense, zero-based identifier generated code's KindOrdinal function
// returns for instance; it has no type parameter beyond F, so (unlike
// AddWrapperVariant) this can be a method.
func (eb *EnumBuilder[F]) AddConstantVariant(number int32, name string, kindOrdinal int, instance F) *EnumBuilder[F] {
	eb.checkVariant(number, name, kindOrdinal)
	eb.variants = append(eb.variants, &enumVariant[F]{
		kind:        descriptor.ConstantVariant,
		name:        name,
		number:      number,
		kindOrdinal: kindOrdinal,
		instance:    instance,
	})
	return eb
}

// AddWrapperVariant registers a variant carrying one value of type V. It is
// a free function, not a method, for the same reason AddField is: V varies
// per call while F is fixed for the whole enum, and Go methods cannot
// introduce their own type parameter.
func AddWrapperVariant[F any, V any](eb *EnumBuilder[F], number int32, name string, kindOrdinal int, inner Serializer[V], wrap func(V) F, unwrap func(F) V) *EnumBuilder[F] {
	eb.checkVariant(number, name, kindOrdinal)
	eb.variants = append(eb.variants, &enumVariant[F]{
		kind:        descriptor.WrapperVariant,
		name:        name,
		number:      number,
		kindOrdinal: kindOrdinal,
		ser:         inner.raw,
		wrap:        func(v any) F { return wrap(v.(V)) },
		unwrap:      func(f F) any { return unwrap(f) },
	})
	return eb
}

// Finalize freezes registration and returns the consumer-facing Serializer.
// Calling Finalize twice, or any Add* method afterward, panics with
// ErrAlreadyFinalized — see StructBuilder.Finalize for the rationale.
func (eb *EnumBuilder[F]) Finalize() Serializer[F] {
	if eb.finalized {
		panic(ErrAlreadyFinalized)
	}
	eb.finalized = true

	removed := make(map[int32]bool, len(eb.removedNumbers))
	for _, n := range eb.removedNumbers {
		removed[n] = true
	}
	numberToVariant := make(map[int32]*enumVariant[F], len(eb.variants))
	nameToVariant := make(map[string]*enumVariant[F], len(eb.variants))
	kindToVariant := make(map[int]*enumVariant[F], len(eb.variants))
	descVariants := make([]descriptor.Variant, len(eb.variants))
	for i, v := range eb.variants {
		numberToVariant[v.number] = v
		nameToVariant[v.name] = v
		kindToVariant[v.kindOrdinal] = v
		dv := descriptor.Variant{Kind: v.kind, Name: v.name, Number: v.number}
		if v.kind == descriptor.WrapperVariant {
			dv.ValueType = v.ser.typeDescriptor()
		}
		descVariants[i] = dv
	}

	record := &descriptor.Record{
		Kind:           descriptor.EnumRecord,
		RecordID:       eb.recordID,
		Doc:            eb.doc,
		RemovedNumbers: append([]int32(nil), eb.removedNumbers...),
		Variants:       descVariants,
	}

	s := &enumSerializer[F]{
		opts:            eb.opts,
		removed:         removed,
		numberToVariant: numberToVariant,
		nameToVariant:   nameToVariant,
		kindToVariant:   kindToVariant,
		typ:             descriptor.NewRecordType(record),
	}
	return Serializer[F]{raw: s}
}

type enumSerializer[F any] struct {
	opts            EnumOptions[F]
	removed         map[int32]bool
	numberToVariant map[int32]*enumVariant[F]
	nameToVariant   map[string]*enumVariant[F]
	kindToVariant   map[int]*enumVariant[F]
	typ             *descriptor.Type
}

func (s *enumSerializer[F]) encodeAny(e *encoder, v any) {
	f := v.(F)
	ordinal := s.opts.KindOrdinal(f)
	if ordinal == 0 {
		unrec := s.opts.GetUnrecognized(f)
		if unrec != nil && unrec.Bytes != nil {
			e.writeBytes(unrec.Bytes)
		} else {
			e.writeByte(0)
		}
		return
	}
	variant := s.kindToVariant[ordinal]
	switch variant.kind {
	case descriptor.ConstantVariant:
		encodeInt32(e, variant.number)
	case descriptor.WrapperVariant:
		if variant.number < 5 {
			e.writeByte(byte(int(tagEnumWrapper1) + int(variant.number) - 1))
		} else {
			e.writeByte(tagEnumWrapperN)
			encodeInt32(e, variant.number)
		}
		variant.ser.encodeAny(e, variant.unwrap(f))
	}
}

func (s *enumSerializer[F]) decodeAny(d *decodeBuffer, keepUnrecognized bool) (any, error) {
	tag, err := d.peekByte()
	if err != nil {
		return nil, err
	}
	if tag < tagEmptyString {
		raw, err := decodeUnsignedNumber(d)
		if err != nil {
			return nil, err
		}
		number := int32(raw)
		if s.removed[number] {
			return s.opts.Unknown, nil
		}
		variant, ok := s.numberToVariant[number]
		if !ok {
			if keepUnrecognized {
				scratch := &encoder{}
				encodeInt32(scratch, number)
				return s.opts.WrapUnrecognized(&EnumUnrecognized{Bytes: scratch.bytes()}), nil
			}
			return s.opts.Unknown, nil
		}
		if variant.kind != descriptor.ConstantVariant {
			return nil, fmt.Errorf("%w: wrapper variant %q seen in bare number form", ErrInvalidWire, variant.name)
		}
		return variant.instance, nil
	}

	var number int32
	var prefix []byte
	switch {
	case tag >= tagEnumWrapper1 && tag <= tagEnumWrapper4:
		d.pos++
		number = int32(tag-tagEnumWrapper1) + 1
		if keepUnrecognized {
			prefix = []byte{tag}
		}
	case tag == tagEnumWrapperN:
		d.pos++
		start := d.pos
		n, err := decodeInt32(d)
		if err != nil {
			return nil, err
		}
		number = n
		if keepUnrecognized {
			prefix = append([]byte{tag}, append([]byte(nil), d.buf[start:d.pos]...)...)
		}
	default:
		return nil, fmt.Errorf("%w: unexpected tag %d for enum", ErrInvalidWire, tag)
	}

	if s.removed[number] {
		if err := decodeUnusedValue(d); err != nil {
			return nil, err
		}
		return s.opts.Unknown, nil
	}
	variant, ok := s.numberToVariant[number]
	if !ok {
		start := d.pos
		if err := decodeUnusedValue(d); err != nil {
			return nil, err
		}
		if keepUnrecognized {
			full := append(append([]byte{}, prefix...), d.buf[start:d.pos]...)
			return s.opts.WrapUnrecognized(&EnumUnrecognized{Bytes: full}), nil
		}
		return s.opts.Unknown, nil
	}
	if variant.kind != descriptor.WrapperVariant {
		return nil, fmt.Errorf("%w: constant variant %q seen in wrapper form", ErrInvalidWire, variant.name)
	}
	inner, err := variant.ser.decodeAny(d, keepUnrecognized)
	if err != nil {
		return nil, err
	}
	return variant.wrap(inner), nil
}

func (s *enumSerializer[F]) toJSONAny(v any, flavor Flavor) jsonValue {
	f := v.(F)
	ordinal := s.opts.KindOrdinal(f)
	if ordinal == 0 {
		if flavor == Readable {
			return "?"
		}
		unrec := s.opts.GetUnrecognized(f)
		if unrec != nil && unrec.HasJSON {
			return unrec.JSON
		}
		return json.Number("0")
	}
	variant := s.kindToVariant[ordinal]
	switch variant.kind {
	case descriptor.ConstantVariant:
		if flavor == Readable {
			return variant.name
		}
		return json.Number(strconv.FormatInt(int64(variant.number), 10))
	default: // WrapperVariant
		inner := variant.unwrap(f)
		if flavor == Readable {
			return map[string]any{"kind": variant.name, "value": variant.ser.toJSONAny(inner, Readable)}
		}
		return []any{json.Number(strconv.FormatInt(int64(variant.number), 10)), variant.ser.toJSONAny(inner, Dense)}
	}
}

func (s *enumSerializer[F]) resolveNumber(v any) (int32, bool) {
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return int32(f), true
	case string:
		if variant, ok := s.nameToVariant[val]; ok {
			return variant.number, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func (s *enumSerializer[F]) fromPrimitiveForm(v any, keepUnrecognized bool, raw jsonValue) (any, error) {
	number, ok := s.resolveNumber(v)
	if !ok {
		if keepUnrecognized {
			return s.opts.WrapUnrecognized(&EnumUnrecognized{JSON: raw, HasJSON: true}), nil
		}
		return s.opts.Unknown, nil
	}
	if s.removed[number] {
		return s.opts.Unknown, nil
	}
	variant, ok := s.numberToVariant[number]
	if !ok {
		if keepUnrecognized {
			return s.opts.WrapUnrecognized(&EnumUnrecognized{JSON: raw, HasJSON: true}), nil
		}
		return s.opts.Unknown, nil
	}
	if variant.kind != descriptor.ConstantVariant {
		return nil, fmt.Errorf("%w: wrapper variant %q used as a bare value", ErrInvalidArgument, variant.name)
	}
	return variant.instance, nil
}

func (s *enumSerializer[F]) fromArrayForm(arr []any, keepUnrecognized bool, raw jsonValue) (any, error) {
	number, ok := s.resolveNumber(arr[0])
	if !ok {
		if keepUnrecognized {
			return s.opts.WrapUnrecognized(&EnumUnrecognized{JSON: raw, HasJSON: true}), nil
		}
		return s.opts.Unknown, nil
	}
	if s.removed[number] {
		return s.opts.Unknown, nil
	}
	variant, ok := s.numberToVariant[number]
	if !ok {
		if keepUnrecognized {
			return s.opts.WrapUnrecognized(&EnumUnrecognized{JSON: raw, HasJSON: true}), nil
		}
		return s.opts.Unknown, nil
	}
	if variant.kind != descriptor.WrapperVariant {
		return nil, fmt.Errorf("%w: constant variant %q used in array form", ErrInvalidArgument, variant.name)
	}
	inner, err := variant.ser.fromJSONAny(arr[1], keepUnrecognized)
	if err != nil {
		return nil, err
	}
	return variant.wrap(inner), nil
}

func (s *enumSerializer[F]) fromObjectForm(obj map[string]any) (any, error) {
	name, _ := obj["kind"].(string)
	variant, ok := s.nameToVariant[name]
	if !ok || variant.kind != descriptor.WrapperVariant {
		return s.opts.Unknown, nil
	}
	inner, err := variant.ser.fromJSONAny(obj["value"], false)
	if err != nil {
		return nil, err
	}
	return variant.wrap(inner), nil
}

func (s *enumSerializer[F]) fromJSONAny(j jsonValue, keepUnrecognized bool) (any, error) {
	switch val := j.(type) {
	case nil:
		return s.opts.Unknown, nil
	case []any:
		if len(val) != 2 {
			return nil, fmt.Errorf("%w: enum array form must have exactly 2 elements", ErrInvalidArgument)
		}
		return s.fromArrayForm(val, keepUnrecognized, j)
	case map[string]any:
		return s.fromObjectForm(val)
	case string:
		if val == "?" {
			return s.opts.Unknown, nil
		}
		return s.fromPrimitiveForm(val, keepUnrecognized, j)
	case json.Number:
		return s.fromPrimitiveForm(val, keepUnrecognized, j)
	default:
		return nil, fmt.Errorf("%w: cannot decode %T as enum", ErrInvalidArgument, j)
	}
}

func (s *enumSerializer[F]) isDefaultAny(v any) bool {
	f := v.(F)
	if s.opts.KindOrdinal(f) != 0 {
		return false
	}
	return s.opts.GetUnrecognized(f) == nil
}

func (s *enumSerializer[F]) typeDescriptor() *descriptor.Type {
	return s.typ
}

func (s *enumSerializer[F]) transformAny(v any, t Transformer) any {
	f := v.(F)
	ordinal := s.opts.KindOrdinal(f)
	if ordinal == 0 {
		return f
	}
	variant := s.kindToVariant[ordinal]
	if variant.kind != descriptor.WrapperVariant {
		return f
	}
	newInner := variant.ser.transformAny(variant.unwrap(f), t)
	return variant.wrap(newInner)
}
