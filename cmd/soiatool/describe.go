// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/solidcoredata/soia/descriptor"
	"github.com/solidcoredata/soia/example"
)

func newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the self-describing JSON descriptor of the bundled example schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := descriptor.AsJSONCode(example.SceneSerializer.TypeDescriptor())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(code)
			return err
		},
	}
}
