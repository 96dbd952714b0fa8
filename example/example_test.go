// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package example_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/soia"
	"github.com/solidcoredata/soia/example"
)

func TestPointBinaryRoundTrip(t *testing.T) {
	p := example.NewPoint(1.5, -2.25, "origin")
	buf := example.PointSerializer.ToBytes(p)

	got, err := example.PointSerializer.FromBytes(buf, false)
	require.NoError(t, err)
	require.Equal(t, p.X(), got.X())
	require.Equal(t, p.Y(), got.Y())
	require.Equal(t, p.Label(), got.Label())
}

func TestPointJSONRoundTripBothFlavors(t *testing.T) {
	p := example.NewPoint(3, 4, "corner")
	for _, flavor := range []soia.Flavor{soia.Dense, soia.Readable} {
		code := example.PointSerializer.ToJSONCode(p, flavor)
		got, err := example.PointSerializer.FromJSONCode(code, false)
		require.NoError(t, err, "flavor %d", flavor)
		require.Equal(t, p, got, "flavor %d", flavor)
	}
}

func TestPointDefaultIsZeroValue(t *testing.T) {
	require.True(t, example.PointSerializer.IsDefault(example.Point{}))
	require.False(t, example.PointSerializer.IsDefault(example.NewPoint(0, 0, "named")))
}

func TestShapeBinaryRoundTrip(t *testing.T) {
	for _, s := range []example.Shape{example.NewCircle(2.5), example.NewSquare(9), example.Unit} {
		buf := example.ShapeSerializer.ToBytes(s)
		got, err := example.ShapeSerializer.FromBytes(buf, false)
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestShapeUnknownVariantIsDistinguished(t *testing.T) {
	require.True(t, example.ShapeSerializer.IsDefault(example.Shape{}))
	require.False(t, example.ShapeSerializer.IsDefault(example.Unit))
}

func TestSceneWithListsAndOptionalRoundTrips(t *testing.T) {
	points := []example.Point{
		example.NewPoint(0, 0, "origin"),
		example.NewPoint(1, 1, "corner"),
	}
	scene := example.NewScene(points, soia.Some("a demo scene"))

	buf := example.SceneSerializer.ToBytes(scene)
	got, err := example.SceneSerializer.FromBytes(buf, false)
	require.NoError(t, err)

	require.Equal(t, points, got.Points())
	note, ok := got.Note()
	require.True(t, ok)
	require.Equal(t, "a demo scene", note)

	byLabel, ok := got.ByLabel("corner")
	require.True(t, ok)
	require.Equal(t, 1.0, byLabel.X())
}

func TestSceneWithAbsentNote(t *testing.T) {
	scene := example.NewScene(nil, soia.None[string]())
	buf := example.SceneSerializer.ToBytes(scene)

	got, err := example.SceneSerializer.FromBytes(buf, false)
	require.NoError(t, err)
	_, ok := got.Note()
	require.False(t, ok)
	require.Empty(t, got.Points())
}

type upperCaseTransformer struct{ soia.Transformer }

func (upperCaseTransformer) TransformString(v string) string {
	out := make([]byte, len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func TestTransformRecursesIntoStructFields(t *testing.T) {
	p := example.NewPoint(1, 2, "lowercase")
	xform := upperCaseTransformer{Transformer: soia.Identity}

	got := soia.Transform(example.PointSerializer, p, xform)
	require.Equal(t, "LOWERCASE", got.Label())
	require.Equal(t, 1.0, got.X())
}
