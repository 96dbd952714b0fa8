// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/solidcoredata/soia"
	"github.com/solidcoredata/soia/example"
)

func newDecodeCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Read a Scene payload from stdin and write it as dense JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			scene, err := decodeScene(input, format)
			if err != nil {
				return fmt.Errorf("decode input: %w", err)
			}
			out := example.SceneSerializer.ToJSONCode(scene, soia.Dense)
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "binary", "input format: binary, dense, or readable")
	return cmd
}
