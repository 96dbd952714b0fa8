// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command soiatool is a small consumer of the soia runtime: it encodes,
// decodes, and describes the bundled example schema, reports
// compatibility between two schema descriptors, and watches a directory
// for payload files as a demonstration of the runtime's graceful
// shutdown path. It is not a schema compiler.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "soiatool",
		Short:         "Encode, decode, describe, and compare soia schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newEncodeCommand(),
		newDecodeCommand(),
		newDescribeCommand(),
		newCompatCommand(),
		newWatchCommand(),
	)
	return root
}

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}
