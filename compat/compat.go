// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compat answers one question: can data written against a writer
// schema be read safely by consumers holding a reader schema? It never
// touches encoded bytes — it walks two descriptor.Record graphs and
// reports, number by number, whether the field or variant survived
// unchanged, is defined only by the writer, is defined only by the reader,
// or changed type outright.
//
// The classification follows a version-negotiation idea: a writer and a
// reader each carry their own view of "current", and the interesting
// cases are exactly the ones where those views diverge.
package compat

import (
	"fmt"
	"sort"

	"github.com/solidcoredata/soia/descriptor"
)

// ChangeKind classifies how a single field or variant number differs
// between the writer and reader schemas.
type ChangeKind int

const (
	// Unchanged means both schemas define the number with compatible
	// types.
	Unchanged ChangeKind = iota
	// AddedByWriter means only the writer defines the number. A reader on
	// this schema decodes data written by a newer writer; the runtime's
	// unrecognized-slot handling covers it, so this is informational, not
	// an error.
	AddedByWriter
	// RemovedByReader means only the reader defines the number. The
	// reader expects a number that writer data omits; the runtime
	// substitutes the field's or variant's default/unknown value, so this
	// is informational, not an error.
	RemovedByReader
	// TypeChanged means both schemas define the number but with
	// incompatible types. This is always an error: neither side can
	// safely interpret the other's wire bytes for that number.
	TypeChanged
)

func (k ChangeKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case AddedByWriter:
		return "added_by_writer"
	case RemovedByReader:
		return "removed_by_reader"
	case TypeChanged:
		return "type_changed"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change describes the fate of one field or variant number.
type Change struct {
	Number int32
	Name   string // the reader's name where the reader defines the number, else the writer's
	Kind   ChangeKind
	Detail string // human-readable elaboration, e.g. the two incompatible type signatures
}

// Report is the full result of comparing a writer and a reader record.
type Report struct {
	WriterID string
	ReaderID string
	Changes  []Change // sorted by Number
}

// Errors returns the subset of Changes that are TypeChanged — the only
// kind that makes the two schemas incompatible.
func (r Report) Errors() []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Kind == TypeChanged {
			out = append(out, c)
		}
	}
	return out
}

// Compatible reports whether data written against WriterID can be safely
// read by ReaderID, i.e. whether Errors is empty.
func (r Report) Compatible() bool {
	return len(r.Errors()) == 0
}

type entry struct {
	number int32
	name   string
	typ    *descriptor.Type // nil for a constant enum variant
}

// Compare walks writer and reader by field/variant number and classifies
// every number either defines. writer and reader must be the same
// RecordKind (both struct or both enum).
func Compare(writer, reader *descriptor.Record) (Report, error) {
	if writer.Kind != reader.Kind {
		return Report{}, fmt.Errorf("compat: cannot compare a %s record against a %s record", recordKindName(writer.Kind), recordKindName(reader.Kind))
	}

	var writerEntries, readerEntries map[int32]entry
	switch writer.Kind {
	case descriptor.StructRecord:
		writerEntries = fieldEntries(writer.Fields)
		readerEntries = fieldEntries(reader.Fields)
	case descriptor.EnumRecord:
		writerEntries = variantEntries(writer.Variants)
		readerEntries = variantEntries(reader.Variants)
	}

	writerRemoved := toSet(writer.RemovedNumbers)
	readerRemoved := toSet(reader.RemovedNumbers)

	numbers := map[int32]bool{}
	for n := range writerEntries {
		numbers[n] = true
	}
	for n := range readerEntries {
		numbers[n] = true
	}

	changes := make([]Change, 0, len(numbers))
	for n := range numbers {
		w, inWriter := writerEntries[n]
		r, inReader := readerEntries[n]
		switch {
		case inWriter && inReader:
			if ok, detail := typesCompatible(w.typ, r.typ); !ok {
				changes = append(changes, Change{Number: n, Name: r.name, Kind: TypeChanged, Detail: detail})
			} else {
				changes = append(changes, Change{Number: n, Name: r.name, Kind: Unchanged})
			}
		case inWriter && !inReader:
			c := Change{Number: n, Name: w.name, Kind: AddedByWriter}
			if readerRemoved[n] {
				c.Detail = "reader formally removed this number"
			}
			changes = append(changes, c)
		case !inWriter && inReader:
			c := Change{Number: n, Name: r.name, Kind: RemovedByReader}
			if writerRemoved[n] {
				c.Detail = "writer formally removed this number"
			}
			changes = append(changes, c)
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Number < changes[j].Number })

	return Report{WriterID: writer.RecordID, ReaderID: reader.RecordID, Changes: changes}, nil
}

func fieldEntries(fields []descriptor.Field) map[int32]entry {
	m := make(map[int32]entry, len(fields))
	for _, f := range fields {
		m[f.Number] = entry{number: f.Number, name: f.Name, typ: f.Type}
	}
	return m
}

func variantEntries(variants []descriptor.Variant) map[int32]entry {
	m := make(map[int32]entry, len(variants))
	for _, v := range variants {
		e := entry{number: v.Number, name: v.Name}
		if v.Kind == descriptor.WrapperVariant {
			e.typ = v.ValueType
		}
		m[v.Number] = e
	}
	return m
}

func toSet(numbers []int32) map[int32]bool {
	m := make(map[int32]bool, len(numbers))
	for _, n := range numbers {
		m[n] = true
	}
	return m
}

// typesCompatible reports whether a reader using type b can safely decode
// data a writer encoded as type a. Struct and enum types are compared by
// RecordID only, not structurally: a record referencing itself (directly
// or through a cycle) would otherwise recurse forever, and a matching ID
// already implies the two sides agree on that record's own Compare.
func typesCompatible(a, b *descriptor.Type) (bool, string) {
	if a == nil && b == nil {
		return true, ""
	}
	if a == nil || b == nil {
		return false, "constant variant vs wrapper variant"
	}
	if a.Kind != b.Kind {
		return false, fmt.Sprintf("%s vs %s", kindName(a.Kind), kindName(b.Kind))
	}
	switch a.Kind {
	case descriptor.KindPrimitive:
		if a.Primitive != b.Primitive {
			return false, fmt.Sprintf("%s vs %s", a.Primitive.Name(), b.Primitive.Name())
		}
		return true, ""
	case descriptor.KindOptional:
		return typesCompatible(a.Optional, b.Optional)
	case descriptor.KindArray:
		if a.KeyProperty != b.KeyProperty {
			return false, fmt.Sprintf("array key %q vs %q", a.KeyProperty, b.KeyProperty)
		}
		return typesCompatible(a.Item, b.Item)
	case descriptor.KindStruct, descriptor.KindEnum:
		if a.Record.RecordID != b.Record.RecordID {
			return false, fmt.Sprintf("record %q vs %q", a.Record.RecordID, b.Record.RecordID)
		}
		return true, ""
	default:
		return false, "unknown type kind"
	}
}

func kindName(k descriptor.Kind) string {
	switch k {
	case descriptor.KindPrimitive:
		return "primitive"
	case descriptor.KindOptional:
		return "optional"
	case descriptor.KindArray:
		return "array"
	case descriptor.KindStruct:
		return "struct"
	case descriptor.KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func recordKindName(k descriptor.RecordKind) string {
	if k == descriptor.EnumRecord {
		return "enum"
	}
	return "struct"
}
