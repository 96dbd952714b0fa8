// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia

import (
	"errors"

	"github.com/solidcoredata/soia/descriptor"
)

// Sentinel error kinds. Callers should use errors.Is against these, not
// string-match on Error().
var (
	// ErrInvalidWire means an unexpected tag, a truncated buffer, or
	// non-UTF-8 bytes in a string context.
	ErrInvalidWire = errors.New("soia: invalid wire data")

	// ErrInvalidArgument means a JSON shape didn't match the variant or
	// field it was decoded against, e.g. a wrapper variant found where a
	// bare primitive number was expected.
	ErrInvalidArgument = errors.New("soia: invalid argument")

	// ErrTrailingBytes means the input had bytes left over after decoding
	// a complete top-level value.
	ErrTrailingBytes = errors.New("soia: trailing bytes after value")

	// ErrAlreadyFinalized means a builder method was called after
	// Finalize, or Finalize was called twice.
	ErrAlreadyFinalized = errors.New("soia: builder already finalized")

	// ErrUnknownPrimitive means descriptor JSON ingestion saw a
	// "kind":"primitive" entry naming a primitive this runtime doesn't
	// define. It is the same sentinel descriptor.ParseFromJSON returns.
	ErrUnknownPrimitive = descriptor.ErrUnknownPrimitive

	// ErrUnknownKind means descriptor JSON ingestion saw a "kind" string
	// this runtime doesn't define. It is the same sentinel
	// descriptor.ParseFromJSON returns.
	ErrUnknownKind = descriptor.ErrUnknownKind
)
