// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/soia"
)

// widgetV1/widgetV2 model a struct that gains a field between schema
// versions, exercising forward compatibility (an old reader decoding data
// from a new writer) and backward compatibility (a new reader decoding
// data from an old writer) the way spec.md §8 describes.

type widgetV1 struct {
	name  string
	count int32
	unrec *soia.StructUnrecognized
}

func newWidgetV1Serializer() soia.Serializer[widgetV1] {
	sb := soia.NewStructSerializer[*widgetV1, widgetV1]("test:Widget", soia.StructOptions[*widgetV1, widgetV1]{
		Default:         widgetV1{},
		NewBuilder:      func() *widgetV1 { return &widgetV1{} },
		ToFrozen:        func(b *widgetV1) widgetV1 { return *b },
		GetUnrecognized: func(f widgetV1) *soia.StructUnrecognized { return f.unrec },
		SetUnrecognized: func(b *widgetV1, u *soia.StructUnrecognized) { b.unrec = u },
	})
	soia.AddField(sb, "name", 0, soia.NewStringSerializer(),
		func(f widgetV1) string { return f.name }, func(b *widgetV1, v string) { b.name = v })
	soia.AddField(sb, "count", 1, soia.NewInt32Serializer(),
		func(f widgetV1) int32 { return f.count }, func(b *widgetV1, v int32) { b.count = v })
	return sb.Finalize()
}

type widgetV2 struct {
	name  string
	count int32
	tag   string
	unrec *soia.StructUnrecognized
}

func newWidgetV2Serializer() soia.Serializer[widgetV2] {
	sb := soia.NewStructSerializer[*widgetV2, widgetV2]("test:Widget", soia.StructOptions[*widgetV2, widgetV2]{
		Default:         widgetV2{},
		NewBuilder:      func() *widgetV2 { return &widgetV2{} },
		ToFrozen:        func(b *widgetV2) widgetV2 { return *b },
		GetUnrecognized: func(f widgetV2) *soia.StructUnrecognized { return f.unrec },
		SetUnrecognized: func(b *widgetV2, u *soia.StructUnrecognized) { b.unrec = u },
	})
	soia.AddField(sb, "name", 0, soia.NewStringSerializer(),
		func(f widgetV2) string { return f.name }, func(b *widgetV2, v string) { b.name = v })
	soia.AddField(sb, "count", 1, soia.NewInt32Serializer(),
		func(f widgetV2) int32 { return f.count }, func(b *widgetV2, v int32) { b.count = v })
	soia.AddField(sb, "tag", 2, soia.NewStringSerializer(),
		func(f widgetV2) string { return f.tag }, func(b *widgetV2, v string) { b.tag = v })
	return sb.Finalize()
}

func TestStructForwardCompatibility(t *testing.T) {
	v1 := newWidgetV1Serializer()
	v2 := newWidgetV2Serializer()

	w2 := widgetV2{name: "gizmo", count: 3, tag: "extra"}
	buf := v2.ToBytes(w2)

	got, err := v1.FromBytes(buf, true)
	require.NoError(t, err)
	require.Equal(t, "gizmo", got.name)
	require.Equal(t, int32(3), got.count)
	require.NotNil(t, got.unrec)
	require.Equal(t, 3, got.unrec.TotalSlots)
	require.NotEmpty(t, got.unrec.Bytes)
}

func TestStructBackwardCompatibility(t *testing.T) {
	v1 := newWidgetV1Serializer()
	v2 := newWidgetV2Serializer()

	w1 := widgetV1{name: "sprocket", count: 7}
	buf := v1.ToBytes(w1)

	got, err := v2.FromBytes(buf, false)
	require.NoError(t, err)
	require.Equal(t, "sprocket", got.name)
	require.Equal(t, int32(7), got.count)
	require.Equal(t, "", got.tag)
}

func TestStructDropsUnrecognizedWhenNotKept(t *testing.T) {
	v1 := newWidgetV1Serializer()
	v2 := newWidgetV2Serializer()

	buf := v2.ToBytes(widgetV2{name: "x", tag: "y"})
	got, err := v1.FromBytes(buf, false)
	require.NoError(t, err)
	require.Nil(t, got.unrec)
}

func TestStructIsDefault(t *testing.T) {
	v1 := newWidgetV1Serializer()
	require.True(t, v1.IsDefault(widgetV1{}))
	require.False(t, v1.IsDefault(widgetV1{name: "a"}))
}

func TestStructRemovedNumberEncodesAsZeroSlot(t *testing.T) {
	sb := soia.NewStructSerializer[*widgetV1, widgetV1]("test:WidgetRemoved", soia.StructOptions[*widgetV1, widgetV1]{
		Default:         widgetV1{},
		NewBuilder:      func() *widgetV1 { return &widgetV1{} },
		ToFrozen:        func(b *widgetV1) widgetV1 { return *b },
		GetUnrecognized: func(f widgetV1) *soia.StructUnrecognized { return f.unrec },
		SetUnrecognized: func(b *widgetV1, u *soia.StructUnrecognized) { b.unrec = u },
	})
	soia.AddField(sb, "name", 0, soia.NewStringSerializer(),
		func(f widgetV1) string { return f.name }, func(b *widgetV1, v string) { b.name = v })
	sb.AddRemovedNumber(1)
	soia.AddField(sb, "count2", 2, soia.NewInt32Serializer(),
		func(f widgetV1) int32 { return f.count }, func(b *widgetV1, v int32) { b.count = v })
	removedSer := sb.Finalize()

	w := widgetV1{name: "a", count: 9}
	buf := removedSer.ToBytes(w)
	require.Equal(t, []byte{'s', 'o', 'i', 'a', 0xF9, 0xF3, 0x01, 'a', 0x00, 0x09}, buf)
	got, err := removedSer.FromBytes(buf, false)
	require.NoError(t, err)
	require.Equal(t, w.name, got.name)
	require.Equal(t, w.count, got.count)
}
