// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solidcoredata/soia/compat"
	"github.com/solidcoredata/soia/descriptor"
)

func newCompatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compat <writer-descriptor.json> <reader-descriptor.json>",
		Short: "Report compatibility between two schema descriptors produced by \"describe\"",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			writer, err := loadRecord(args[0])
			if err != nil {
				return fmt.Errorf("writer: %w", err)
			}
			reader, err := loadRecord(args[1])
			if err != nil {
				return fmt.Errorf("reader: %w", err)
			}
			report, err := compat.Compare(writer, reader)
			if err != nil {
				return err
			}
			code, err := json.MarshalIndent(renderReport(report), "", "  ")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(code, '\n'))
			return err
		},
	}
}

// renderReport converts a compat.Report to a JSON-friendly shape: Kind is
// rendered as its string name rather than the bare int ChangeKind carries.
func renderReport(r compat.Report) map[string]any {
	changes := make([]map[string]any, len(r.Changes))
	for i, c := range r.Changes {
		entry := map[string]any{
			"number": c.Number,
			"name":   c.Name,
			"kind":   c.Kind.String(),
		}
		if c.Detail != "" {
			entry["detail"] = c.Detail
		}
		changes[i] = entry
	}
	return map[string]any{
		"writer_id":  r.WriterID,
		"reader_id":  r.ReaderID,
		"compatible": r.Compatible(),
		"changes":    changes,
	}
}

func loadRecord(path string) (*descriptor.Record, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	typ, err := descriptor.ParseFromJSONCode(code)
	if err != nil {
		return nil, err
	}
	if typ.Kind != descriptor.KindStruct && typ.Kind != descriptor.KindEnum {
		return nil, fmt.Errorf("%s: root type is not a struct or enum record", path)
	}
	return typ.Record, nil
}
