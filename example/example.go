// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package example is a hand-written stand-in for compiler-generated code:
// a small struct (Point) and enum (Shape), each carrying one removed
// number, registered against the soia runtime the way a real generated
// package would. It exists so the runtime's tests, cmd/soiatool, and the
// compat package have a concrete, non-trivial schema to exercise instead
// of ad hoc fixtures scattered across the codebase.
package example

import (
	"github.com/solidcoredata/soia"
)

// Point is a 2D point with a removed slot (number 2, formerly "z") and a
// trailing label field added after the removal.
type Point struct {
	x, y  float64
	label string
	unrec *soia.StructUnrecognized
}

// NewPoint constructs a Point with the given coordinates and label.
func NewPoint(x, y float64, label string) Point {
	return Point{x: x, y: y, label: label}
}

func (p Point) X() float64    { return p.x }
func (p Point) Y() float64    { return p.y }
func (p Point) Label() string { return p.label }

// PointSerializer is the registered Serializer for Point. Registration
// happens once at package init, mirroring what generated code does at
// program startup.
var PointSerializer = func() soia.Serializer[Point] {
	sb := soia.NewStructSerializer[*Point, Point]("soia.example:Point", soia.StructOptions[*Point, Point]{
		Default:    Point{},
		NewBuilder: func() *Point { return &Point{} },
		ToFrozen:   func(b *Point) Point { return *b },
		GetUnrecognized: func(f Point) *soia.StructUnrecognized {
			return f.unrec
		},
		SetUnrecognized: func(b *Point, u *soia.StructUnrecognized) {
			b.unrec = u
		},
	}).Doc("A point in the plane. Field 2 (\"z\") was removed when this stopped being a 3D point type.")

	soia.AddField(sb, "x", 0, soia.NewFloat64Serializer(),
		func(p Point) float64 { return p.x },
		func(b *Point, v float64) { b.x = v })
	soia.AddField(sb, "y", 1, soia.NewFloat64Serializer(),
		func(p Point) float64 { return p.y },
		func(b *Point, v float64) { b.y = v })
	sb.AddRemovedNumber(2)
	soia.AddField(sb, "label", 3, soia.NewStringSerializer(),
		func(p Point) string { return p.label },
		func(b *Point, v string) { b.label = v })

	return sb.Finalize()
}()

type shapeKind int

const (
	shapeKindUnknown shapeKind = iota
	shapeKindCircle
	shapeKindSquare
	shapeKindUnit
)

// Shape is a tagged union of circle(radius), square(side), and the
// constant "unit" shape. Variant number 3 (formerly "triangle") was
// removed.
type Shape struct {
	kind         shapeKind
	circleRadius float64
	squareSide   float64
	unrec        *soia.EnumUnrecognized
}

// NewCircle returns a circle variant with the given radius.
func NewCircle(radius float64) Shape { return Shape{kind: shapeKindCircle, circleRadius: radius} }

// NewSquare returns a square variant with the given side length.
func NewSquare(side float64) Shape { return Shape{kind: shapeKindSquare, squareSide: side} }

// Unit is the constant unit-square shape.
var Unit = Shape{kind: shapeKindUnit}

// IsUnknown reports whether s is the distinguished unknown variant.
func (s Shape) IsUnknown() bool { return s.kind == shapeKindUnknown }

// Circle reports the radius and whether s is a circle.
func (s Shape) Circle() (float64, bool) { return s.circleRadius, s.kind == shapeKindCircle }

// Square reports the side length and whether s is a square.
func (s Shape) Square() (float64, bool) { return s.squareSide, s.kind == shapeKindSquare }

// IsUnit reports whether s is the constant unit shape.
func (s Shape) IsUnit() bool { return s.kind == shapeKindUnit }

// ShapeSerializer is the registered Serializer for Shape.
var ShapeSerializer = func() soia.Serializer[Shape] {
	eb := soia.NewEnumSerializer[Shape]("soia.example:Shape", soia.EnumOptions[Shape]{
		Unknown: Shape{},
		KindOrdinal: func(f Shape) int {
			return int(f.kind)
		},
		GetUnrecognized: func(f Shape) *soia.EnumUnrecognized {
			return f.unrec
		},
		WrapUnrecognized: func(u *soia.EnumUnrecognized) Shape {
			return Shape{kind: shapeKindUnknown, unrec: u}
		},
	}).Doc("A shape: a circle or square carrying a measurement, or the constant unit square. Variant 3 (\"triangle\") was removed.")

	soia.AddWrapperVariant(eb, 1, "circle", int(shapeKindCircle), soia.NewFloat64Serializer(),
		func(radius float64) Shape { return Shape{kind: shapeKindCircle, circleRadius: radius} },
		func(f Shape) float64 { return f.circleRadius })
	soia.AddWrapperVariant(eb, 2, "square", int(shapeKindSquare), soia.NewFloat64Serializer(),
		func(side float64) Shape { return Shape{kind: shapeKindSquare, squareSide: side} },
		func(f Shape) float64 { return f.squareSide })
	eb.AddRemovedNumber(3)
	eb.AddConstantVariant(4, "unit", int(shapeKindUnit), Unit)

	return eb.Finalize()
}()

// Scene bundles a plain list of points, a list of points keyed by label,
// and an optional note — exercising the list, keyed-list, and optional
// serializers together over the Point struct above.
type Scene struct {
	points  soia.List[Point]
	labeled soia.List[Point]
	note    soia.Option[string]
	unrec   *soia.StructUnrecognized
}

// NewScene builds a Scene from points (also indexed by label) and an
// optional note.
func NewScene(points []Point, note soia.Option[string]) Scene {
	return Scene{
		points:  soia.NewList(points),
		labeled: soia.NewKeyedList(points, Point.Label),
		note:    note,
	}
}

func (s Scene) Points() []Point { return s.points.Items() }

// ByLabel looks up a point by its label.
func (s Scene) ByLabel(label string) (Point, bool) { return s.labeled.Get(label) }

// Note returns the scene's optional note.
func (s Scene) Note() (string, bool) { return s.note.Get() }

// SceneSerializer is the registered Serializer for Scene.
var SceneSerializer = func() soia.Serializer[Scene] {
	pointList := soia.NewListSerializer(PointSerializer)
	labeledPointList := soia.NewKeyedListSerializer(PointSerializer, "label", Point.Label)
	noteOpt := soia.NewOptionalSerializer(soia.NewStringSerializer())

	sb := soia.NewStructSerializer[*Scene, Scene]("soia.example:Scene", soia.StructOptions[*Scene, Scene]{
		Default:    Scene{},
		NewBuilder: func() *Scene { return &Scene{} },
		ToFrozen:   func(b *Scene) Scene { return *b },
		GetUnrecognized: func(f Scene) *soia.StructUnrecognized {
			return f.unrec
		},
		SetUnrecognized: func(b *Scene, u *soia.StructUnrecognized) {
			b.unrec = u
		},
	})

	soia.AddField(sb, "points", 0, pointList,
		func(s Scene) soia.List[Point] { return s.points },
		func(b *Scene, v soia.List[Point]) { b.points = v })
	soia.AddField(sb, "labeled", 1, labeledPointList,
		func(s Scene) soia.List[Point] { return s.labeled },
		func(b *Scene, v soia.List[Point]) { b.labeled = v })
	soia.AddField(sb, "note", 2, noteOpt,
		func(s Scene) soia.Option[string] { return s.note },
		func(b *Scene, v soia.Option[string]) { b.note = v })

	return sb.Finalize()
}()
