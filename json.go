// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soia

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Flavor selects between the two JSON encodings every serializer supports.
type Flavor int

const (
	// Dense is the compact, number-keyed/positional encoding suitable for
	// persistence: struct fields by slot, enum variants by number.
	Dense Flavor = iota

	// Readable is the name-keyed, non-default-only encoding meant for
	// humans. It is NOT suitable for persistence: renaming a field or
	// variant is a legal schema change that would silently break a
	// readable-JSON payload written under the old name.
	Readable
)

// jsonValue is the tree shape used to build and consume JSON documents in
// this package: nil, bool, json.Number, string, []any, or map[string]any.
type jsonValue = any

// parseJSONValue parses JSON text into a jsonValue tree, preserving integer
// precision via json.Number instead of collapsing everything to float64.
func parseJSONValue(code []byte) (jsonValue, error) {
	dec := json.NewDecoder(bytes.NewReader(code))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// marshalJSONValue renders a jsonValue tree built by this package's
// serializers. It never fails for trees we construct ourselves.
func marshalJSONValue(v jsonValue) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("soia: internal JSON value could not be marshaled: %v", err))
	}
	return b
}

// isJSONNull reports whether v is JSON null (Go nil) or simply absent.
func isJSONNull(v jsonValue) bool {
	return v == nil
}
