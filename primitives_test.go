// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/soia"
)

func TestPrimitiveBinaryRoundTrip(t *testing.T) {
	boolS := soia.NewBoolSerializer()
	for _, v := range []bool{true, false} {
		got, err := boolS.FromBytes(boolS.ToBytes(v), false)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}

	int32S := soia.NewInt32Serializer()
	for _, v := range []int32{0, 1, -1, 231, 232, 65536, -65537, 1 << 30, -(1 << 30)} {
		got, err := int32S.FromBytes(int32S.ToBytes(v), false)
		require.NoError(t, err, "v=%d", v)
		require.Equal(t, v, got, "v=%d", v)
	}

	int64S := soia.NewInt64Serializer()
	for _, v := range []int64{0, 1, -1, 1 << 40, -(1 << 40)} {
		got, err := int64S.FromBytes(int64S.ToBytes(v), false)
		require.NoError(t, err, "v=%d", v)
		require.Equal(t, v, got, "v=%d", v)
	}

	uint64S := soia.NewUint64Serializer()
	for _, v := range []uint64{0, 1, 1 << 62} {
		got, err := uint64S.FromBytes(uint64S.ToBytes(v), false)
		require.NoError(t, err, "v=%d", v)
		require.Equal(t, v, got, "v=%d", v)
	}

	float32S := soia.NewFloat32Serializer()
	got32, err := float32S.FromBytes(float32S.ToBytes(3.5), false)
	require.NoError(t, err)
	require.Equal(t, float32(3.5), got32)

	float64S := soia.NewFloat64Serializer()
	got64, err := float64S.FromBytes(float64S.ToBytes(2.25), false)
	require.NoError(t, err)
	require.Equal(t, 2.25, got64)

	stringS := soia.NewStringSerializer()
	for _, v := range []string{"", "hello", "日本語"} {
		got, err := stringS.FromBytes(stringS.ToBytes(v), false)
		require.NoError(t, err, "v=%q", v)
		require.Equal(t, v, got, "v=%q", v)
	}

	bytesS := soia.NewBytesSerializer()
	for _, v := range [][]byte{nil, {}, {1, 2, 3}} {
		got, err := bytesS.FromBytes(bytesS.ToBytes(v), false)
		require.NoError(t, err)
		require.Equal(t, len(v), len(got))
	}

	tsS := soia.NewTimestampSerializer()
	now := soia.TimestampFromTime(time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC))
	gotTS, err := tsS.FromBytes(tsS.ToBytes(now), false)
	require.NoError(t, err)
	require.Equal(t, now, gotTS)
}

func TestInt64OutsideJSONSafeRangeRoundTripsThroughStringForm(t *testing.T) {
	s := soia.NewInt64Serializer()
	const big int64 = 1<<53 + 12345
	code := s.ToJSONCode(big, soia.Dense)
	require.Contains(t, string(code), `"`)

	got, err := s.FromJSONCode(code, false)
	require.NoError(t, err)
	require.Equal(t, big, got)
}

func TestTimestampClampsToSupportedRange(t *testing.T) {
	s := soia.NewTimestampSerializer()
	overflow := soia.Timestamp(1 << 62)
	buf := s.ToBytes(overflow)
	got, err := s.FromBytes(buf, false)
	require.NoError(t, err)
	require.LessOrEqual(t, int64(got), int64(8_640_000_000_000_000))
}

func TestOptionalAbsentAndPresentRoundTrip(t *testing.T) {
	s := soia.NewOptionalSerializer(soia.NewStringSerializer())

	absent := soia.None[string]()
	got, err := s.FromBytes(s.ToBytes(absent), false)
	require.NoError(t, err)
	_, ok := got.Get()
	require.False(t, ok)

	present := soia.Some("x")
	got, err = s.FromBytes(s.ToBytes(present), false)
	require.NoError(t, err)
	v, ok := got.Get()
	require.True(t, ok)
	require.Equal(t, "x", v)
}

func TestListPlainAndKeyedRoundTrip(t *testing.T) {
	plain := soia.NewListSerializer(soia.NewStringSerializer())
	l := soia.NewList([]string{"a", "b", "c"})
	got, err := plain.FromBytes(plain.ToBytes(l), false)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, got.Items())

	keyed := soia.NewKeyedListSerializer(soia.NewStringSerializer(), "self", func(s string) string { return s })
	kl := soia.NewKeyedList([]string{"a", "b", "c"}, func(s string) string { return s })
	gotKeyed, err := keyed.FromBytes(keyed.ToBytes(kl), false)
	require.NoError(t, err)
	v, ok := gotKeyed.Get("b")
	require.True(t, ok)
	require.Equal(t, "b", v)
}
