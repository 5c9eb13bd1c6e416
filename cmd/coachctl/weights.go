package main

import (
	"github.com/spf13/cobra"

	rec "automation-coach/internal/recommendations"
)

func newWeightsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "weights",
		Short: "Print the effective scoring weights",
		Long:  `Loads the weights file (if any) over the defaults, validates it and prints the result as YAML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			weights, err := rec.LoadWeights(c.v.GetString("weights"))
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), outputYAML, weights)
		},
	}
}
