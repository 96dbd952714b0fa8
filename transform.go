// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia

// Transformer is the visitor generated code (or a caller) supplies to
// Transform: one method per scalar kind, applied at every leaf the
// traversal reaches. Optional/list/struct/enum shape is handled entirely
// by the driver built into each serializer — a Transformer never sees
// those directly.
type Transformer interface {
	TransformBool(v bool) bool
	TransformInt32(v int32) int32
	TransformInt64(v int64) int64
	TransformUint64(v uint64) uint64
	TransformFloat32(v float32) float32
	TransformFloat64(v float64) float64
	TransformString(v string) string
	TransformBytes(v []byte) []byte
	TransformTimestamp(v Timestamp) Timestamp
}

// Transform walks v according to s's type descriptor, applying t at every
// leaf and rebuilding optionals/lists/structs/enums around the results.
func Transform[T any](s Serializer[T], v T, t Transformer) T {
	return s.raw.transformAny(v, t).(T)
}

// identityTransformer is the no-op Transformer: every method returns its
// argument unchanged.
type identityTransformer struct{}

func (identityTransformer) TransformBool(v bool) bool             { return v }
func (identityTransformer) TransformInt32(v int32) int32          { return v }
func (identityTransformer) TransformInt64(v int64) int64          { return v }
func (identityTransformer) TransformUint64(v uint64) uint64       { return v }
func (identityTransformer) TransformFloat32(v float32) float32    { return v }
func (identityTransformer) TransformFloat64(v float64) float64    { return v }
func (identityTransformer) TransformString(v string) string       { return v }
func (identityTransformer) TransformBytes(v []byte) []byte        { return v }
func (identityTransformer) TransformTimestamp(v Timestamp) Timestamp { return v }

// Identity is the shared no-op Transformer instance.
var Identity Transformer = identityTransformer{}
