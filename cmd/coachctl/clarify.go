package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"automation-coach/internal/clarification"
)

func newClarifyCmd(c *cli) *cobra.Command {
	var job, request string
	cmd := &cobra.Command{
		Use:   "clarify",
		Short: "Check whether a request needs clarification questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(job) == "" && strings.TrimSpace(request) == "" {
				return errors.New("--job or --request is required")
			}
			format, err := c.output()
			if err != nil {
				return err
			}
			res := clarification.AnalyzeForClarification(job, request)
			if format != outputTable {
				return write(cmd.OutOrStdout(), format, res)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "needs clarification: %t (score %d)\n", res.NeedsClarification, res.AmbiguityScore)
			for _, q := range res.Questions {
				fmt.Fprintf(w, "\n[%s] %s\n", q.ID, q.Question)
				for _, opt := range q.Options {
					fmt.Fprintf(w, "  - %s: %s\n", opt.ID, opt.Label)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&job, "job", "", "job description")
	cmd.Flags().StringVar(&request, "request", "", "automation request")
	return cmd
}
