// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/soia"
)

// colorV1/colorV2 model an enum that gains a constant variant and loses a
// wrapper variant between schema versions.

type colorKindV1 int

const (
	colorV1Unknown colorKindV1 = iota
	colorV1Named
	colorV1RGB
)

type colorV1 struct {
	kind  colorKindV1
	named string
	rgb   int32
	unrec *soia.EnumUnrecognized
}

func newColorV1Serializer() soia.Serializer[colorV1] {
	eb := soia.NewEnumSerializer[colorV1]("test:Color", soia.EnumOptions[colorV1]{
		Unknown:     colorV1{},
		KindOrdinal: func(f colorV1) int { return int(f.kind) },
		GetUnrecognized: func(f colorV1) *soia.EnumUnrecognized {
			if f.kind == colorV1Unknown {
				return f.unrec
			}
			return nil
		},
		WrapUnrecognized: func(u *soia.EnumUnrecognized) colorV1 { return colorV1{unrec: u} },
	})
	soia.AddWrapperVariant(eb, 1, "named", int(colorV1Named), soia.NewStringSerializer(),
		func(v string) colorV1 { return colorV1{kind: colorV1Named, named: v} },
		func(f colorV1) string { return f.named })
	soia.AddWrapperVariant(eb, 2, "rgb", int(colorV1RGB), soia.NewInt32Serializer(),
		func(v int32) colorV1 { return colorV1{kind: colorV1RGB, rgb: v} },
		func(f colorV1) int32 { return f.rgb })
	return eb.Finalize()
}

type colorKindV2 int

const (
	colorV2Unknown colorKindV2 = iota
	colorV2Named
	colorV2Transparent
)

type colorV2 struct {
	kind  colorKindV2
	named string
	unrec *soia.EnumUnrecognized
}

func newColorV2Serializer() soia.Serializer[colorV2] {
	eb := soia.NewEnumSerializer[colorV2]("test:Color", soia.EnumOptions[colorV2]{
		Unknown:     colorV2{},
		KindOrdinal: func(f colorV2) int { return int(f.kind) },
		GetUnrecognized: func(f colorV2) *soia.EnumUnrecognized {
			if f.kind == colorV2Unknown {
				return f.unrec
			}
			return nil
		},
		WrapUnrecognized: func(u *soia.EnumUnrecognized) colorV2 { return colorV2{unrec: u} },
	})
	soia.AddWrapperVariant(eb, 1, "named", int(colorV2Named), soia.NewStringSerializer(),
		func(v string) colorV2 { return colorV2{kind: colorV2Named, named: v} },
		func(f colorV2) string { return f.named })
	eb.AddRemovedNumber(2) // rgb retired in favor of named colors only
	eb.AddConstantVariant(3, "transparent", int(colorV2Transparent), colorV2{kind: colorV2Transparent})
	return eb.Finalize()
}

func TestEnumConstantAndWrapperRoundTrip(t *testing.T) {
	s := newColorV2Serializer()

	named := colorV2{kind: colorV2Named, named: "red"}
	got, err := s.FromBytes(s.ToBytes(named), false)
	require.NoError(t, err)
	require.Equal(t, named, got)

	transparent := colorV2{kind: colorV2Transparent}
	got, err = s.FromBytes(s.ToBytes(transparent), false)
	require.NoError(t, err)
	require.Equal(t, colorV2Transparent, got.kind)
}

func TestEnumRemovedVariantDecodesToUnknown(t *testing.T) {
	v1 := newColorV1Serializer()
	v2 := newColorV2Serializer()

	buf := v1.ToBytes(colorV1{kind: colorV1RGB, rgb: 0xFF0000})
	got, err := v2.FromBytes(buf, false)
	require.NoError(t, err)
	require.Equal(t, colorV2Unknown, got.kind)
}

func TestEnumUnknownVariantCapturesUnrecognizedPayload(t *testing.T) {
	v2 := newColorV2Serializer()
	v1 := newColorV1Serializer()

	buf := v2.ToBytes(colorV2{kind: colorV2Transparent})
	got, err := v1.FromBytes(buf, true)
	require.NoError(t, err)
	require.Equal(t, colorV1Unknown, got.kind)
	require.NotNil(t, got.unrec)
	require.NotEmpty(t, got.unrec.Bytes)

	roundTripped, err := v2.FromBytes(v1.ToBytes(got), false)
	require.NoError(t, err)
	require.Equal(t, colorV2Transparent, roundTripped.kind)
}

func TestEnumJSONShapes(t *testing.T) {
	s := newColorV2Serializer()

	named := colorV2{kind: colorV2Named, named: "blue"}
	readable := s.ToJSONCode(named, soia.Readable)
	require.Contains(t, string(readable), `"kind"`)
	require.Contains(t, string(readable), `"blue"`)

	dense := s.ToJSONCode(named, soia.Dense)
	got, err := s.FromJSONCode(dense, false)
	require.NoError(t, err)
	require.Equal(t, named, got)

	transparent := colorV2{kind: colorV2Transparent}
	denseConst := s.ToJSONCode(transparent, soia.Dense)
	gotConst, err := s.FromJSONCode(denseConst, false)
	require.NoError(t, err)
	require.Equal(t, colorV2Transparent, gotConst.kind)

	readableConst := s.ToJSONCode(transparent, soia.Readable)
	require.Equal(t, `"transparent"`, string(readableConst))
}

func TestEnumIsDefault(t *testing.T) {
	s := newColorV2Serializer()
	require.True(t, s.IsDefault(colorV2{}))
	require.False(t, s.IsDefault(colorV2{kind: colorV2Transparent}))
}
