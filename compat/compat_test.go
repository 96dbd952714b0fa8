// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/soia/compat"
	"github.com/solidcoredata/soia/descriptor"
	"github.com/solidcoredata/soia/example"
)

func strField(number int32, name string) descriptor.Field {
	return descriptor.Field{Name: name, Number: number, Type: descriptor.NewPrimitive(descriptor.String)}
}

func int64Field(number int32, name string) descriptor.Field {
	return descriptor.Field{Name: name, Number: number, Type: descriptor.NewPrimitive(descriptor.Int64)}
}

func TestCompareIdenticalStructsAreUnchanged(t *testing.T) {
	writer := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:Point", Fields: []descriptor.Field{
		strField(0, "label"),
		int64Field(1, "count"),
	}}
	reader := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:Point", Fields: []descriptor.Field{
		strField(0, "label"),
		int64Field(1, "count"),
	}}

	report, err := compat.Compare(writer, reader)
	require.NoError(t, err)
	require.True(t, report.Compatible())
	require.Len(t, report.Changes, 2)
	for _, c := range report.Changes {
		require.Equal(t, compat.Unchanged, c.Kind)
	}
}

func TestCompareFieldAddedByWriterIsNotAnError(t *testing.T) {
	writer := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:Point", Fields: []descriptor.Field{
		strField(0, "label"),
		int64Field(1, "count"),
	}}
	reader := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:Point", Fields: []descriptor.Field{
		strField(0, "label"),
	}}

	report, err := compat.Compare(writer, reader)
	require.NoError(t, err)
	require.True(t, report.Compatible())
	require.Len(t, report.Changes, 2)
	require.Equal(t, compat.Unchanged, report.Changes[0].Kind)
	require.Equal(t, compat.AddedByWriter, report.Changes[1].Kind)
	require.Equal(t, "count", report.Changes[1].Name)
}

func TestCompareFieldRemovedByReaderFallsBackToDefault(t *testing.T) {
	writer := &descriptor.Record{
		Kind:           descriptor.StructRecord,
		RecordID:       "x:Point",
		RemovedNumbers: []int32{1},
		Fields:         []descriptor.Field{strField(0, "label")},
	}
	reader := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:Point", Fields: []descriptor.Field{
		strField(0, "label"),
		int64Field(1, "count"),
	}}

	report, err := compat.Compare(writer, reader)
	require.NoError(t, err)
	require.True(t, report.Compatible())
	require.Len(t, report.Changes, 2)
	require.Equal(t, compat.RemovedByReader, report.Changes[1].Kind)
	require.Contains(t, report.Changes[1].Detail, "writer formally removed")
}

func TestCompareTypeChangedIsAlwaysIncompatible(t *testing.T) {
	writer := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:Point", Fields: []descriptor.Field{
		int64Field(0, "count"),
	}}
	reader := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:Point", Fields: []descriptor.Field{
		strField(0, "count"),
	}}

	report, err := compat.Compare(writer, reader)
	require.NoError(t, err)
	require.False(t, report.Compatible())
	require.Len(t, report.Errors(), 1)
	require.Equal(t, compat.TypeChanged, report.Errors()[0].Kind)
	require.Equal(t, "int64 vs string", report.Errors()[0].Detail)
}

func TestCompareEnumVariants(t *testing.T) {
	writer := &descriptor.Record{
		Kind:     descriptor.EnumRecord,
		RecordID: "x:Shape",
		Variants: []descriptor.Variant{
			{Kind: descriptor.WrapperVariant, Name: "circle", Number: 1, ValueType: descriptor.NewPrimitive(descriptor.Float64)},
			{Kind: descriptor.ConstantVariant, Name: "unit", Number: 4},
		},
	}
	reader := &descriptor.Record{
		Kind:     descriptor.EnumRecord,
		RecordID: "x:Shape",
		Variants: []descriptor.Variant{
			{Kind: descriptor.WrapperVariant, Name: "circle", Number: 1, ValueType: descriptor.NewPrimitive(descriptor.Float64)},
		},
	}

	report, err := compat.Compare(writer, reader)
	require.NoError(t, err)
	require.True(t, report.Compatible())
	require.Len(t, report.Changes, 2)
	require.Equal(t, compat.AddedByWriter, report.Changes[1].Kind)
	require.Equal(t, "unit", report.Changes[1].Name)
}

func TestCompareRejectsMismatchedRecordKinds(t *testing.T) {
	writer := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:A"}
	reader := &descriptor.Record{Kind: descriptor.EnumRecord, RecordID: "x:A"}

	_, err := compat.Compare(writer, reader)
	require.Error(t, err)
}

// TestCompareExampleSchemaEvolution compares the real example.Point and
// example.Shape descriptors (which already have field 2 / variant 3
// formally removed) against hand-built "v1" records shaped the way those
// types looked before the removal, the way a real consumer would compare
// two builds of a generated package across a schema change.
func TestCompareExampleSchemaEvolution(t *testing.T) {
	pointV2 := example.PointSerializer.TypeDescriptor().Record
	pointV1 := &descriptor.Record{
		Kind:     descriptor.StructRecord,
		RecordID: pointV2.RecordID,
		Fields: []descriptor.Field{
			{Name: "x", Number: 0, Type: descriptor.NewPrimitive(descriptor.Float64)},
			{Name: "y", Number: 1, Type: descriptor.NewPrimitive(descriptor.Float64)},
			{Name: "z", Number: 2, Type: descriptor.NewPrimitive(descriptor.Float64)},
		},
	}

	report, err := compat.Compare(pointV1, pointV2)
	require.NoError(t, err)
	require.True(t, report.Compatible())
	byNumber := map[int32]compat.Change{}
	for _, c := range report.Changes {
		byNumber[c.Number] = c
	}
	require.Equal(t, compat.Unchanged, byNumber[0].Kind)
	require.Equal(t, compat.Unchanged, byNumber[1].Kind)
	require.Equal(t, compat.AddedByWriter, byNumber[2].Kind)
	require.Contains(t, byNumber[2].Detail, "reader formally removed")
	require.Equal(t, compat.RemovedByReader, byNumber[3].Kind)
	require.Empty(t, byNumber[3].Detail)

	shapeV2 := example.ShapeSerializer.TypeDescriptor().Record
	shapeV1 := &descriptor.Record{
		Kind:     descriptor.EnumRecord,
		RecordID: shapeV2.RecordID,
		Variants: []descriptor.Variant{
			{Kind: descriptor.WrapperVariant, Name: "circle", Number: 1, ValueType: descriptor.NewPrimitive(descriptor.Float64)},
			{Kind: descriptor.WrapperVariant, Name: "square", Number: 2, ValueType: descriptor.NewPrimitive(descriptor.Float64)},
			{Kind: descriptor.WrapperVariant, Name: "triangle", Number: 3, ValueType: descriptor.NewPrimitive(descriptor.Float64)},
		},
	}

	shapeReport, err := compat.Compare(shapeV1, shapeV2)
	require.NoError(t, err)
	require.True(t, shapeReport.Compatible())
	shapeByNumber := map[int32]compat.Change{}
	for _, c := range shapeReport.Changes {
		shapeByNumber[c.Number] = c
	}
	require.Equal(t, compat.Unchanged, shapeByNumber[1].Kind)
	require.Equal(t, compat.Unchanged, shapeByNumber[2].Kind)
	require.Equal(t, compat.AddedByWriter, shapeByNumber[3].Kind)
	require.Contains(t, shapeByNumber[3].Detail, "reader formally removed")
	require.Equal(t, compat.RemovedByReader, shapeByNumber[4].Kind)
}

func TestCompareNestedRecordReferenceByID(t *testing.T) {
	innerA := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:Inner"}
	innerB := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:Inner"}

	writer := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:Outer", Fields: []descriptor.Field{
		{Name: "inner", Number: 0, Type: descriptor.NewRecordType(innerA)},
	}}
	reader := &descriptor.Record{Kind: descriptor.StructRecord, RecordID: "x:Outer", Fields: []descriptor.Field{
		{Name: "inner", Number: 0, Type: descriptor.NewOptional(descriptor.NewRecordType(innerB))},
	}}

	report, err := compat.Compare(writer, reader)
	require.NoError(t, err)
	require.False(t, report.Compatible())
	require.Equal(t, "struct vs optional", report.Errors()[0].Detail)
}
