// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/solidcoredata/soia/example"
)

func newEncodeCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Read Scene JSON from stdin and write it in the requested format",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			scene, err := example.SceneSerializer.FromJSONCode(input, true)
			if err != nil {
				return fmt.Errorf("decode input JSON: %w", err)
			}
			out, err := encodeScene(scene, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "binary", "output format: binary, dense, or readable")
	return cmd
}
