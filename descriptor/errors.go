// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package descriptor

import "errors"

var (
	// ErrUnknownPrimitive is returned (wrapped) by ParseFromJSON when a
	// type signature names a primitive kind this runtime doesn't define.
	ErrUnknownPrimitive = errors.New("descriptor: unknown primitive kind")

	// ErrUnknownKind is returned (wrapped) by ParseFromJSON when a type
	// signature or record uses an undefined "kind" string.
	ErrUnknownKind = errors.New("descriptor: unknown type-descriptor kind")
)
