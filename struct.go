// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia

import (
	"encoding/json"
	"fmt"

	"github.com/solidcoredata/soia/descriptor"
)

// StructUnrecognized is the opaque tail a struct value carries when it was
// decoded from a payload written by a newer schema with more fields than
// this one knows about. Exactly one of Bytes (binary path) or JSONTail
// (JSON path) is populated.
type StructUnrecognized struct {
	TotalSlots int
	Bytes      []byte
	JSONTail   []jsonValue
}

// StructOptions wires a generated struct type F (the frozen value) and its
// mutable counterpart B (the builder) into the runtime, mirroring spec.md
// §6's "new(record_id, default, make_mutable, to_frozen, get_unrec,
// set_unrec)".
type StructOptions[B any, F any] struct {
	// Default is the struct's zero/default frozen instance.
	Default F
	// NewBuilder returns a fresh mutable builder.
	NewBuilder func() B
	// ToFrozen converts a filled builder to its immutable frozen form.
	ToFrozen func(B) F
	// GetUnrecognized returns the unrecognized tail attached to f, or nil.
	GetUnrecognized func(f F) *StructUnrecognized
	// SetUnrecognized attaches an unrecognized tail to a builder in
	// progress.
	SetUnrecognized func(b B, u *StructUnrecognized)
}

type structField[B any, F any] struct {
	name   string
	number int32
	ser    anySerializer
	getAny func(F) any
	setAny func(B, any)
}

// StructBuilder accumulates fields and removed numbers for one struct
// record before Finalize freezes it into a Serializer[F].
type StructBuilder[B any, F any] struct {
	recordID       string
	doc            string
	opts           StructOptions[B, F]
	fields         []*structField[B, F]
	numbersUsed    map[int32]bool
	namesUsed      map[string]bool
	removedNumbers []int32
	finalized      bool
}

// NewStructSerializer starts building the serializer for one struct record.
func NewStructSerializer[B any, F any](recordID string, opts StructOptions[B, F]) *StructBuilder[B, F] {
	return &StructBuilder[B, F]{
		recordID:    recordID,
		opts:        opts,
		numbersUsed: map[int32]bool{},
		namesUsed:   map[string]bool{},
	}
}

// Doc attaches a documentation string emitted into descriptor JSON. It
// returns sb so generated code can chain it before Finalize.
func (sb *StructBuilder[B, F]) Doc(doc string) *StructBuilder[B, F] {
	sb.doc = doc
	return sb
}

func (sb *StructBuilder[B, F]) checkNumber(number int32, name string) {
	if sb.finalized {
		panic(ErrAlreadyFinalized)
	}
	if sb.numbersUsed[number] {
		panic(fmt.Errorf("%w: struct %s: field/removed number %d reused", ErrInvalidArgument, sb.recordID, number))
	}
	if name != "" && sb.namesUsed[name] {
		panic(fmt.Errorf("%w: struct %s: field name %q reused", ErrInvalidArgument, sb.recordID, name))
	}
	sb.numbersUsed[number] = true
	if name != "" {
		sb.namesUsed[name] = true
	}
}

// AddRemovedNumber marks number as a removed slot: it must decode to
// default and encode as a zero byte.
func (sb *StructBuilder[B, F]) AddRemovedNumber(number int32) *StructBuilder[B, F] {
	sb.checkNumber(number, "")
	sb.removedNumbers = append(sb.removedNumbers, number)
	return sb
}

// AddField registers one field. It is a free function, not a method on
// StructBuilder, because Go methods cannot introduce their own type
// parameter: T varies per field while B and F are fixed for the whole
// struct, so the field's type can only be threaded through a function call.
func AddField[B any, F any, T any](sb *StructBuilder[B, F], name string, number int32, inner Serializer[T], get func(F) T, set func(B, T)) *StructBuilder[B, F] {
	sb.checkNumber(number, name)
	sb.fields = append(sb.fields, &structField[B, F]{
		name:   name,
		number: number,
		ser:    inner.raw,
		getAny: func(f F) any { return get(f) },
		setAny: func(b B, v any) { set(b, v.(T)) },
	})
	return sb
}

// Finalize freezes registration and returns the consumer-facing Serializer.
// Calling Finalize twice, or calling any Add* method afterward, panics with
// ErrAlreadyFinalized: registration happens once at program startup, so a
// violation is a programming error rather than routine failure.
func (sb *StructBuilder[B, F]) Finalize() Serializer[F] {
	if sb.finalized {
		panic(ErrAlreadyFinalized)
	}
	sb.finalized = true

	maxNumber := int32(-1)
	for _, f := range sb.fields {
		if f.number > maxNumber {
			maxNumber = f.number
		}
	}
	for _, n := range sb.removedNumbers {
		if n > maxNumber {
			maxNumber = n
		}
	}
	slotCount := int(maxNumber) + 1

	slotToField := make([]*structField[B, F], slotCount)
	for _, f := range sb.fields {
		slotToField[f.number] = f
	}

	descFields := make([]descriptor.Field, len(sb.fields))
	for i, f := range sb.fields {
		descFields[i] = descriptor.Field{Name: f.name, Number: f.number, Type: f.ser.typeDescriptor()}
	}
	record := &descriptor.Record{
		Kind:           descriptor.StructRecord,
		RecordID:       sb.recordID,
		Doc:            sb.doc,
		RemovedNumbers: append([]int32(nil), sb.removedNumbers...),
		Fields:         descFields,
	}

	s := &structSerializer[B, F]{
		opts:        sb.opts,
		fields:      sb.fields,
		slotToField: slotToField,
		typ:         descriptor.NewRecordType(record),
	}
	return Serializer[F]{raw: s}
}

type structSerializer[B any, F any] struct {
	opts        StructOptions[B, F]
	fields      []*structField[B, F]
	slotToField []*structField[B, F]
	typ         *descriptor.Type
}

func (s *structSerializer[B, F]) computeRecognizedSlots(f F) int {
	for i := len(s.slotToField) - 1; i >= 0; i-- {
		entry := s.slotToField[i]
		if entry == nil {
			continue
		}
		if !entry.ser.isDefaultAny(entry.getAny(f)) {
			return i + 1
		}
	}
	return 0
}

func (s *structSerializer[B, F]) encodeAny(e *encoder, v any) {
	f := v.(F)
	unrec := s.opts.GetUnrecognized(f)
	var totalSlots, recognizedSlots int
	if unrec != nil && unrec.Bytes != nil {
		totalSlots = unrec.TotalSlots
		recognizedSlots = len(s.slotToField)
	} else {
		recognizedSlots = s.computeRecognizedSlots(f)
		totalSlots = recognizedSlots
	}
	encodeArrayHeader(e, totalSlots)
	for i := 0; i < recognizedSlots; i++ {
		entry := s.slotToField[i]
		if entry != nil {
			entry.ser.encodeAny(e, entry.getAny(f))
		} else {
			e.writeByte(0)
		}
	}
	if unrec != nil && unrec.Bytes != nil {
		e.writeBytes(unrec.Bytes)
	}
}

func (s *structSerializer[B, F]) decodeAny(d *decodeBuffer, keepUnrecognized bool) (any, error) {
	encodedSlots, err := decodeArrayCount(d)
	if err != nil {
		return nil, err
	}
	if encodedSlots == 0 {
		return s.opts.Default, nil
	}
	b := s.opts.NewBuilder()
	limit := encodedSlots
	if limit > len(s.slotToField) {
		limit = len(s.slotToField)
	}
	for i := 0; i < limit; i++ {
		entry := s.slotToField[i]
		if entry != nil {
			v, err := entry.ser.decodeAny(d, keepUnrecognized)
			if err != nil {
				return nil, err
			}
			entry.setAny(b, v)
		} else if err := decodeUnusedValue(d); err != nil {
			return nil, err
		}
	}
	if encodedSlots > len(s.slotToField) {
		remaining := encodedSlots - len(s.slotToField)
		if keepUnrecognized {
			start := d.pos
			for i := 0; i < remaining; i++ {
				if err := decodeUnusedValue(d); err != nil {
					return nil, err
				}
			}
			raw := make([]byte, d.pos-start)
			copy(raw, d.buf[start:d.pos])
			s.opts.SetUnrecognized(b, &StructUnrecognized{TotalSlots: encodedSlots, Bytes: raw})
		} else {
			for i := 0; i < remaining; i++ {
				if err := decodeUnusedValue(d); err != nil {
					return nil, err
				}
			}
		}
	}
	return s.opts.ToFrozen(b), nil
}

func (s *structSerializer[B, F]) toJSONAny(v any, flavor Flavor) jsonValue {
	f := v.(F)
	if flavor == Readable {
		obj := map[string]any{}
		for _, entry := range s.fields {
			val := entry.getAny(f)
			if entry.ser.isDefaultAny(val) {
				continue
			}
			obj[entry.name] = entry.ser.toJSONAny(val, Readable)
		}
		return obj
	}

	unrec := s.opts.GetUnrecognized(f)
	recognizedSlots := s.computeRecognizedSlots(f)
	var tail []jsonValue
	if unrec != nil {
		if len(s.slotToField) > recognizedSlots {
			recognizedSlots = len(s.slotToField)
		}
		tail = unrec.JSONTail
	}
	arr := make([]any, 0, recognizedSlots+len(tail))
	for i := 0; i < recognizedSlots; i++ {
		entry := s.slotToField[i]
		if entry != nil {
			arr = append(arr, entry.ser.toJSONAny(entry.getAny(f), Dense))
		} else {
			arr = append(arr, json.Number("0"))
		}
	}
	for _, t := range tail {
		arr = append(arr, t)
	}
	return arr
}

func (s *structSerializer[B, F]) fromJSONAny(j jsonValue, keepUnrecognized bool) (any, error) {
	if isJSONNull(j) {
		return s.opts.Default, nil
	}
	if n, ok := j.(json.Number); ok {
		f, err := n.Float64()
		if err != nil || f != 0 {
			return nil, fmt.Errorf("%w: unexpected struct literal %v", ErrInvalidArgument, j)
		}
		return s.opts.Default, nil
	}
	obj, isObj := j.(map[string]any)
	if isObj {
		return s.fromReadableJSON(obj, keepUnrecognized)
	}
	arr, ok := j.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a struct JSON array", ErrInvalidArgument)
	}
	if len(arr) == 0 {
		return s.opts.Default, nil
	}
	b := s.opts.NewBuilder()
	limit := len(arr)
	if limit > len(s.slotToField) {
		limit = len(s.slotToField)
	}
	for i := 0; i < limit; i++ {
		entry := s.slotToField[i]
		if entry == nil {
			continue
		}
		v, err := entry.ser.fromJSONAny(arr[i], keepUnrecognized)
		if err != nil {
			return nil, err
		}
		entry.setAny(b, v)
	}
	if len(arr) > len(s.slotToField) && keepUnrecognized {
		tail := make([]jsonValue, len(arr)-len(s.slotToField))
		copy(tail, arr[len(s.slotToField):])
		s.opts.SetUnrecognized(b, &StructUnrecognized{TotalSlots: len(arr), JSONTail: tail})
	}
	return s.opts.ToFrozen(b), nil
}

// fromReadableJSON decodes the name-keyed object form. Readable JSON never
// carries an unrecognized tail, per spec.md §4.4.
func (s *structSerializer[B, F]) fromReadableJSON(obj map[string]any, keepUnrecognized bool) (any, error) {
	b := s.opts.NewBuilder()
	for _, entry := range s.fields {
		raw, ok := obj[entry.name]
		if !ok {
			continue
		}
		v, err := entry.ser.fromJSONAny(raw, keepUnrecognized)
		if err != nil {
			return nil, err
		}
		entry.setAny(b, v)
	}
	return s.opts.ToFrozen(b), nil
}

func (s *structSerializer[B, F]) isDefaultAny(v any) bool {
	f := v.(F)
	if s.opts.GetUnrecognized(f) != nil {
		return false
	}
	for _, entry := range s.fields {
		if !entry.ser.isDefaultAny(entry.getAny(f)) {
			return false
		}
	}
	return true
}

func (s *structSerializer[B, F]) typeDescriptor() *descriptor.Type {
	return s.typ
}

func (s *structSerializer[B, F]) transformAny(v any, t Transformer) any {
	f := v.(F)
	b := s.opts.NewBuilder()
	for _, entry := range s.fields {
		entry.setAny(b, entry.ser.transformAny(entry.getAny(f), t))
	}
	if unrec := s.opts.GetUnrecognized(f); unrec != nil {
		s.opts.SetUnrecognized(b, unrec)
	}
	return s.opts.ToFrozen(b)
}
