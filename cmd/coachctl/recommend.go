package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	rec "automation-coach/internal/recommendations"
)

func newRecommendCmd(c *cli) *cobra.Command {
	var (
		job          string
		request      string
		hours        float64
		hintCategory string
		hintKeywords []string
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend tools for a task description",
		Example: `  coachctl recommend --job "주간 매출 보고서 작성" --request "엑셀 데이터 정리 자동화" --hours 4
  coachctl recommend --job "회의록 정리" --request "요약 자동화" -o table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(job) == "" && strings.TrimSpace(request) == "" {
				return errors.New("--job or --request is required")
			}
			format, err := c.output()
			if err != nil {
				return err
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}
			tools, err := c.activeTools(cmd)
			if err != nil {
				return err
			}

			var hint *rec.ClarificationHint
			if hintCategory != "" || len(hintKeywords) > 0 {
				hint = &rec.ClarificationHint{AdditionalKeywords: hintKeywords}
				if hintCategory != "" {
					cat, ok := rec.ParseCategory(hintCategory)
					if !ok {
						return fmt.Errorf("unknown category %q", hintCategory)
					}
					hint.CategoryHint = cat
				}
			}

			result := engine.Recommend(tools, job, request, hours, hint)
			if format == outputTable {
				return writeResultTable(cmd.OutOrStdout(), result)
			}
			return write(cmd.OutOrStdout(), format, result)
		},
	}
	cmd.Flags().StringVar(&job, "job", "", "job description")
	cmd.Flags().StringVar(&request, "request", "", "automation request")
	cmd.Flags().Float64Var(&hours, "hours", 0, "estimated hours per cycle (default 2)")
	cmd.Flags().StringVar(&hintCategory, "hint-category", "", "category picked during clarification")
	cmd.Flags().StringSliceVar(&hintKeywords, "hint-keywords", nil, "keywords added by clarification")
	return cmd
}

func writeResultTable(w io.Writer, r rec.Result) error {
	fmt.Fprintf(w, "category:   %s\n", r.Category)
	fmt.Fprintf(w, "keywords:   %s\n", strings.Join(r.Keywords, ", "))
	fmt.Fprintf(w, "automation: %s\n", r.AutomationLevel)
	fmt.Fprintf(w, "time:       %d%% saved (%.1fh -> %.1fh)\n\n",
		r.TimeSaving.Percentage, r.TimeSaving.SavedHours+r.TimeSaving.NewHours, r.TimeSaving.NewHours)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTOOL\tSCORE\tREASON")
	for i, t := range r.RecommendedTools {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%s\n", i+1, t.Tool.Name, t.Score, t.Reason)
	}
	return tw.Flush()
}
