package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/spboyer/leadval/internal/validation"
)

func newValidateCommand(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.json>...",
		Short: "Schema-check expert rating or extraction validation files",
		Long: `Schema-check JSON files holding one record or an array of records.

The record kind (expert rating or extraction validation) is detected from
the first record. Exits 1 when any record is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, path := range args {
				res, err := validation.ValidateFile(path)
				if err != nil {
					return err
				}
				if res.Valid() {
					fmt.Fprintf(out, "✅ %s (%s)\n", path, res.Kind)
					continue
				}
				invalid++
				fmt.Fprintf(out, "❌ %s (%s)\n", path, res.Kind)
				locs := make([]string, 0, len(res.Errors))
				for loc := range res.Errors {
					locs = append(locs, loc)
				}
				sort.Strings(locs)
				for _, loc := range locs {
					for _, e := range res.Errors[loc] {
						fmt.Fprintf(out, "   record %s: %s\n", loc, e)
					}
				}
			}
			if invalid > 0 {
				return &CheckFailedError{Message: fmt.Sprintf("%d of %d file(s) failed validation", invalid, len(args))}
			}
			return nil
		},
	}
}
