// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/solidcoredata/soia"
	"github.com/solidcoredata/soia/example"
)

// encodeScene renders scene in one of the three wire formats soiatool
// exposes on the command line.
func encodeScene(scene example.Scene, format string) ([]byte, error) {
	switch format {
	case "binary":
		return example.SceneSerializer.ToBytes(scene), nil
	case "dense":
		return example.SceneSerializer.ToJSONCode(scene, soia.Dense), nil
	case "readable":
		return example.SceneSerializer.ToJSONCode(scene, soia.Readable), nil
	default:
		return nil, fmt.Errorf("unknown format %q, want binary, dense, or readable", format)
	}
}

// decodeScene is the inverse of encodeScene. FromBytes auto-detects binary
// vs. JSON by its leading magic, so "binary" and the two JSON flavors all
// funnel through it; keepUnrecognized is always on so a payload written by
// a newer schema still round-trips its unknown tail.
func decodeScene(buf []byte, format string) (example.Scene, error) {
	switch format {
	case "binary", "dense", "readable":
		return example.SceneSerializer.FromBytes(buf, true)
	default:
		return example.Scene{}, fmt.Errorf("unknown format %q, want binary, dense, or readable", format)
	}
}
