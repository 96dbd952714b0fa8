// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia

import (
	"fmt"
	"sync"

	"github.com/solidcoredata/soia/descriptor"
)

func encodeArrayHeader(e *encoder, n int) {
	switch n {
	case 0:
		e.writeByte(tagEmptyArray)
	case 1:
		e.writeByte(tagArray1)
	case 2:
		e.writeByte(tagArray2)
	case 3:
		e.writeByte(tagArray3)
	default:
		e.writeByte(tagArrayN)
		encodeLengthPrefix(e, n)
	}
}

// decodeArrayCount reads an array/struct header tag and returns the number
// of elements/slots that follow.
func decodeArrayCount(d *decodeBuffer) (int, error) {
	tag, err := d.readByte()
	if err != nil {
		return 0, err
	}
	switch tag {
	case 0, tagEmptyArray:
		return 0, nil
	case tagArray1:
		return 1, nil
	case tagArray2:
		return 2, nil
	case tagArray3:
		return 3, nil
	case tagArrayN:
		n, err := decodeUnsignedNumber(d)
		if err != nil {
			return 0, err
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: tag %d is not a valid array header", ErrInvalidWire, tag)
	}
}

// listIndex is the lazily-built, publish-once key index behind a keyed
// List. It is shared by every copy of the List value it belongs to, so the
// first access from any goroutine pays the build cost and the rest read a
// finished map.
type listIndex[T any] struct {
	once sync.Once
	m    map[any]T
}

// List is the host representation of both plain and keyed soia lists. A
// List built via NewList has no key function and Get always reports not
// found; one built via NewKeyedList derives a key per item with keyFunc and
// builds its lookup map lazily on first Get, per spec.md §5's "lazy state"
// rule.
type List[T any] struct {
	items   []T
	keyFunc func(T) any
	idx     *listIndex[T]
}

// NewList wraps items as an unkeyed List.
func NewList[T any](items []T) List[T] {
	return List[T]{items: items}
}

// NewKeyedList wraps items as a List whose Get looks up by the key keyFunc
// derives from each item. Later items win on a duplicate key.
func NewKeyedList[T any, K comparable](items []T, keyFunc func(T) K) List[T] {
	return List[T]{
		items:   items,
		keyFunc: func(v T) any { return keyFunc(v) },
		idx:     &listIndex[T]{},
	}
}

// Items returns the underlying items in encounter order.
func (l List[T]) Items() []T { return l.items }

// Len returns the number of items.
func (l List[T]) Len() int { return len(l.items) }

// Get looks up an item by key; it always reports ok=false on an unkeyed
// List.
func (l List[T]) Get(key any) (T, bool) {
	if l.idx == nil {
		var zero T
		return zero, false
	}
	l.idx.once.Do(func() {
		m := make(map[any]T, len(l.items))
		for _, item := range l.items {
			m[l.keyFunc(item)] = item
		}
		l.idx.m = m
	})
	v, ok := l.idx.m[key]
	return v, ok
}

// GetKey is a type-safe wrapper over List.Get for callers who know K.
func GetKey[T any, K comparable](l List[T], key K) (T, bool) {
	return l.Get(key)
}

type listSerializer[T any] struct {
	elem        anySerializer
	keyFunc     func(T) any
	keyProperty string
}

func (s listSerializer[T]) wrap(items []T) List[T] {
	if s.keyFunc == nil {
		return NewList(items)
	}
	return List[T]{items: items, keyFunc: s.keyFunc, idx: &listIndex[T]{}}
}

func (s listSerializer[T]) encodeAny(e *encoder, v any) {
	items := v.(List[T]).items
	encodeArrayHeader(e, len(items))
	for _, item := range items {
		s.elem.encodeAny(e, item)
	}
}

func (s listSerializer[T]) decodeAny(d *decodeBuffer, keepUnrecognized bool) (any, error) {
	n, err := decodeArrayCount(d)
	if err != nil {
		return nil, err
	}
	items := make([]T, n)
	for i := 0; i < n; i++ {
		v, err := s.elem.decodeAny(d, keepUnrecognized)
		if err != nil {
			return nil, err
		}
		items[i] = v.(T)
	}
	return s.wrap(items), nil
}

func (s listSerializer[T]) toJSONAny(v any, flavor Flavor) jsonValue {
	items := v.(List[T]).items
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = s.elem.toJSONAny(item, flavor)
	}
	return out
}

func (s listSerializer[T]) fromJSONAny(j jsonValue, keepUnrecognized bool) (any, error) {
	if isJSONNull(j) {
		return s.wrap(nil), nil
	}
	arr, ok := j.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidArgument)
	}
	items := make([]T, len(arr))
	for i, rv := range arr {
		v, err := s.elem.fromJSONAny(rv, keepUnrecognized)
		if err != nil {
			return nil, err
		}
		items[i] = v.(T)
	}
	return s.wrap(items), nil
}

func (s listSerializer[T]) isDefaultAny(v any) bool {
	return v.(List[T]).Len() == 0
}

func (s listSerializer[T]) transformAny(v any, t Transformer) any {
	items := v.(List[T]).items
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = s.elem.transformAny(item, t).(T)
	}
	return s.wrap(out)
}

func (s listSerializer[T]) typeDescriptor() *descriptor.Type {
	if s.keyProperty == "" {
		return descriptor.NewArray(s.elem.typeDescriptor())
	}
	return descriptor.NewKeyedArray(s.elem.typeDescriptor(), s.keyProperty)
}

// NewListSerializer returns a Serializer for a plain (unkeyed) List of T.
func NewListSerializer[T any](item Serializer[T]) Serializer[List[T]] {
	return Serializer[List[T]]{raw: listSerializer[T]{elem: item.raw}}
}

// NewKeyedListSerializer returns a Serializer for a List of T whose Get
// looks up items by the key keyOf derives from each one. The wire and JSON
// encodings are identical to a plain list; keyProperty is recorded in the
// descriptor only.
func NewKeyedListSerializer[T any, K comparable](item Serializer[T], keyProperty string, keyOf func(T) K) Serializer[List[T]] {
	return Serializer[List[T]]{raw: listSerializer[T]{
		elem:        item.raw,
		keyFunc:     func(v T) any { return keyOf(v) },
		keyProperty: keyProperty,
	}}
}
