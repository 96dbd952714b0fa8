// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeInt32Bytes(n int32) []byte {
	e := &encoder{}
	encodeInt32(e, n)
	return e.bytes()
}

func TestEncodeInt32WireExactness(t *testing.T) {
	cases := []struct {
		n    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{231, []byte{0xE7}},
		{232, []byte{0xE8, 0xE8, 0x00}},
		{65536, []byte{0xE9, 0x00, 0x00, 0x01, 0x00}},
		{-1, []byte{0xEB, 0xFF}},
	}
	for _, c := range cases {
		require.Equal(t, c.want, encodeInt32Bytes(c.n), "n=%d", c.n)
	}
}

func TestDecodeInt32IsEncodeInt32Inverse(t *testing.T) {
	values := []int32{0, 1, 231, 232, 65535, 65536, -1, -256, -257, -65536, -65537, 1 << 30, -(1 << 30)}
	for _, n := range values {
		d := newDecodeBuffer(encodeInt32Bytes(n))
		got, err := decodeInt32(d)
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, n, got, "n=%d", n)
		require.True(t, d.atEOF(), "n=%d", n)
	}
}

func TestDecodeUnusedValueSkipsWithoutDecoding(t *testing.T) {
	e := &encoder{}
	encodeInt32(e, 1000)
	encodeString(e, "hello")
	buf := e.bytes()

	d := newDecodeBuffer(buf)
	require.NoError(t, decodeUnusedValue(d))
	got, err := decodeString(d)
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}
