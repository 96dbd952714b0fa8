// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia

import (
	"fmt"

	"github.com/solidcoredata/soia/descriptor"
)

// magicPrefix is written before every binary payload produced by ToBytes,
// per spec.md §4.6/§6.
const magicPrefix = "soia"

// anySerializer is the type-erased core every concrete serializer
// implements. Serializer[T] is a thin generic facade over one of these,
// which is what lets a struct or enum hold fields/variants of different T
// in a single ordered slice — Go methods cannot introduce their own type
// parameters, so composition happens through this interface instead of
// through generics all the way down.
type anySerializer interface {
	encodeAny(e *encoder, v any)
	decodeAny(d *decodeBuffer, keepUnrecognized bool) (any, error)
	toJSONAny(v any, flavor Flavor) jsonValue
	fromJSONAny(j jsonValue, keepUnrecognized bool) (any, error)
	isDefaultAny(v any) bool
	typeDescriptor() *descriptor.Type
	transformAny(v any, t Transformer) any
}

// Serializer is the consumer-facing handle generated code hands to callers:
// ToJSON/ToJSONCode/FromJSON/FromJSONCode/ToBytes/FromBytes/TypeDescriptor,
// per spec.md §6. It is a value type: copying it is cheap and safe, and
// every method is safe for concurrent use once the underlying builder (if
// any) has been finalized.
type Serializer[T any] struct {
	raw anySerializer
}

// ToBytes encodes v as a framed binary payload: the four bytes "soia"
// followed by the binary encoding of v.
func (s Serializer[T]) ToBytes(v T) []byte {
	e := &encoder{}
	e.writeBytes([]byte(magicPrefix))
	s.raw.encodeAny(e, v)
	return e.bytes()
}

// FromBytes decodes a payload produced by ToBytes. If buf does not start
// with the "soia" magic, the entire buffer is instead treated as UTF-8 JSON
// text and parsed via FromJSONCode — this is the single auto-detecting
// boundary described in spec.md §4.6.
func (s Serializer[T]) FromBytes(buf []byte, keepUnrecognized bool) (T, error) {
	var zero T
	if len(buf) >= len(magicPrefix) && string(buf[:len(magicPrefix)]) == magicPrefix {
		d := newDecodeBuffer(buf[len(magicPrefix):])
		v, err := s.raw.decodeAny(d, keepUnrecognized)
		if err != nil {
			return zero, err
		}
		if !d.atEOF() {
			return zero, fmt.Errorf("%w", ErrTrailingBytes)
		}
		t, ok := v.(T)
		if !ok {
			return zero, fmt.Errorf("%w: decoded %T, want %T", ErrInvalidWire, v, zero)
		}
		return t, nil
	}
	return s.FromJSONCode(buf, keepUnrecognized)
}

// ToJSON renders v as a jsonValue tree (not text) in the given flavor.
func (s Serializer[T]) ToJSON(v T, flavor Flavor) any {
	return s.raw.toJSONAny(v, flavor)
}

// ToJSONCode renders v as JSON text in the given flavor.
func (s Serializer[T]) ToJSONCode(v T, flavor Flavor) []byte {
	return marshalJSONValue(s.raw.toJSONAny(v, flavor))
}

// FromJSON decodes a jsonValue tree (as produced by ToJSON, or by
// parseJSONValue) into a T.
func (s Serializer[T]) FromJSON(j any, keepUnrecognized bool) (T, error) {
	var zero T
	v, err := s.raw.fromJSONAny(j, keepUnrecognized)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: decoded %T, want %T", ErrInvalidArgument, v, zero)
	}
	return t, nil
}

// FromJSONCode parses code as JSON text and decodes it into a T.
func (s Serializer[T]) FromJSONCode(code []byte, keepUnrecognized bool) (T, error) {
	var zero T
	j, err := parseJSONValue(code)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidWire, err)
	}
	return s.FromJSON(j, keepUnrecognized)
}

// IsDefault reports whether v is the type's default (zero) value: the
// distinguished unknown variant for enums, an empty struct for structs,
// absent for optionals, the empty list, or the scalar zero value.
func (s Serializer[T]) IsDefault(v T) bool {
	return s.raw.isDefaultAny(v)
}

// TypeDescriptor returns the reflective descriptor for T.
func (s Serializer[T]) TypeDescriptor() *descriptor.Type {
	return s.raw.typeDescriptor()
}
