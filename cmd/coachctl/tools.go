package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	rec "automation-coach/internal/recommendations"
)

func newToolsCmd(c *cli) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the active tool catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.output()
			if err != nil {
				return err
			}
			tools, err := c.activeTools(cmd)
			if err != nil {
				return err
			}
			if category != "" {
				cat, ok := rec.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown category %q", category)
				}
				filtered := tools[:0]
				for _, t := range tools {
					if t.Category == cat {
						filtered = append(filtered, t)
					}
				}
				tools = filtered
			}

			if format != outputTable {
				return write(cmd.OutOrStdout(), format, tools)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDIFFICULTY\tPRICING\tRATING\tPOPULARITY")
			for _, t := range tools {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f\t%d\n",
					t.ID, t.Name, t.Category, t.Difficulty, t.PricingType, t.Rating, t.Popularity)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list tools of this category")
	return cmd
}
