// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia

import (
	"github.com/solidcoredata/soia/descriptor"
)

// Option is the host representation of an optional value: present==false
// means absent, independent of whatever Value happens to hold. Generated
// code for an optional field of type T uses Option[T] rather than a bare
// pointer so the zero Option is unambiguously "absent" without an
// allocation.
type Option[T any] struct {
	Value   T
	Present bool
}

// Some wraps v as a present Option.
func Some[T any](v T) Option[T] { return Option[T]{Value: v, Present: true} }

// None returns the absent Option for T.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the wrapped value and whether it was present, mirroring the
// comma-ok idiom used throughout the standard library.
func (o Option[T]) Get() (T, bool) { return o.Value, o.Present }

type optionalSerializer[T any] struct {
	inner anySerializer
}

func (s optionalSerializer[T]) encodeAny(e *encoder, v any) {
	opt := v.(Option[T])
	if !opt.Present {
		e.writeByte(tagAbsent)
		return
	}
	s.inner.encodeAny(e, opt.Value)
}

func (s optionalSerializer[T]) decodeAny(d *decodeBuffer, keepUnrecognized bool) (any, error) {
	tag, err := d.peekByte()
	if err != nil {
		return nil, err
	}
	if tag == tagAbsent {
		d.pos++
		return Option[T]{}, nil
	}
	v, err := s.inner.decodeAny(d, keepUnrecognized)
	if err != nil {
		return nil, err
	}
	return Option[T]{Value: v.(T), Present: true}, nil
}

func (s optionalSerializer[T]) toJSONAny(v any, flavor Flavor) jsonValue {
	opt := v.(Option[T])
	if !opt.Present {
		return nil
	}
	return s.inner.toJSONAny(opt.Value, flavor)
}

func (s optionalSerializer[T]) fromJSONAny(j jsonValue, keepUnrecognized bool) (any, error) {
	if isJSONNull(j) {
		return Option[T]{}, nil
	}
	v, err := s.inner.fromJSONAny(j, keepUnrecognized)
	if err != nil {
		return nil, err
	}
	return Option[T]{Value: v.(T), Present: true}, nil
}

func (s optionalSerializer[T]) isDefaultAny(v any) bool {
	return !v.(Option[T]).Present
}

func (s optionalSerializer[T]) transformAny(v any, t Transformer) any {
	opt := v.(Option[T])
	if !opt.Present {
		return opt
	}
	return Option[T]{Value: s.inner.transformAny(opt.Value, t).(T), Present: true}
}

func (s optionalSerializer[T]) typeDescriptor() *descriptor.Type {
	return descriptor.NewOptional(s.inner.typeDescriptor())
}

// NewOptionalSerializer returns a Serializer for Option[T], wrapping the
// element Serializer's rules: absent encodes as the single "absent" tag,
// present defers entirely to the element serializer, and a JSON null
// round-trips to the absent Option.
func NewOptionalSerializer[T any](elem Serializer[T]) Serializer[Option[T]] {
	return Serializer[Option[T]]{raw: optionalSerializer[T]{inner: elem.raw}}
}
