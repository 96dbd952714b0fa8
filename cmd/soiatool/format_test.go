// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/soia"
	"github.com/solidcoredata/soia/example"
)

func TestEncodeDecodeSceneRoundTripsAllFormats(t *testing.T) {
	scene := example.NewScene([]example.Point{
		example.NewPoint(1, 2, "a"),
		example.NewPoint(3, 4, "b"),
	}, soia.Some("cli round trip"))

	for _, format := range []string{"binary", "dense", "readable"} {
		buf, err := encodeScene(scene, format)
		require.NoError(t, err, format)

		got, err := decodeScene(buf, format)
		require.NoError(t, err, format)
		require.Equal(t, scene.Points(), got.Points(), format)
		note, ok := got.Note()
		require.True(t, ok, format)
		require.Equal(t, "cli round trip", note, format)
	}
}

func TestEncodeSceneRejectsUnknownFormat(t *testing.T) {
	_, err := encodeScene(example.Scene{}, "xml")
	require.Error(t, err)
}
