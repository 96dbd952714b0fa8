// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package soia is the runtime library behind code generated from soia
// schema files: records (structs and enums) built from primitive, optional
// and list types.
//
// It supplies:
//
//   - a canonical binary encoding and two JSON encodings (dense and
//     readable) for every soia type;
//   - a schema-evolution discipline where removing a field or variant is
//     legal: older readers accept and may preserve newer tags they don't
//     recognize, and newer readers accept older payloads;
//   - a reflective type descriptor graph, with a self-describing JSON form,
//     letting callers traverse or transform a value without static
//     knowledge of its concrete type.
//
// Generated code never constructs these pieces by hand: it calls the
// constructors in this package (NewStructSerializer, NewEnumSerializer, the
// primitive constructors, NewOptionalSerializer, NewListSerializer) once at
// init time and keeps the resulting Serializer[T] for the lifetime of the
// program. A finalized Serializer is immutable and safe for concurrent use.
//
// Wire format
//
// Every encoded value starts with a single wire tag byte that selects how
// the rest of the value is read; see wire.go for the full tag table. A
// top-level payload produced by ToBytes is prefixed with the four bytes
// "soia"; FromBytes auto-detects which form it was given, parsing input
// without that prefix as JSON text. FromJSONCode accepts JSON text only.
package soia
