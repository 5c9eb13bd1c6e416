package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"automation-coach/internal/llm"
	"automation-coach/internal/llm/gemini"
	"automation-coach/internal/llm/openai"
	"automation-coach/internal/shared/config"
)

// newPromptCmd renders the coaching prompt for a request and, with --call,
// sends it to a provider and validates the reply.
func newPromptCmd(c *cli) *cobra.Command {
	var (
		in       llm.PromptInput
		provider string
		outPath  string
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Render the coaching prompt and optionally try it against a provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in.JobDescription) == "" && strings.TrimSpace(in.AutomationRequest) == "" {
				return errors.New("--job or --request is required")
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}
			tools, err := c.activeTools(cmd)
			if err != nil {
				return err
			}
			in.Recommendation = engine.Recommend(tools, in.JobDescription, in.AutomationRequest, in.EstimatedHours, nil)

			prompt, err := llm.BuildCoachingPrompt(in)
			if err != nil {
				return err
			}
			if provider == "" {
				fmt.Fprintln(cmd.OutOrStdout(), prompt)
				fmt.Fprintf(cmd.ErrOrStderr(), "%s sha256:%s\n", llm.PromptVersion, llm.HashPrompt(prompt))
				return nil
			}

			client, err := providerClient(cmd, provider, config.Load())
			if err != nil {
				return err
			}
			raw, err := client.Complete(cmd.Context(), prompt)
			if err != nil {
				return fmt.Errorf("%s: %w", provider, err)
			}
			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(raw), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			doc, err := llm.DecodeCoaching(raw)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), outputJSON, doc)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.JobDescription, "job", "", "job description")
	f.StringVar(&in.AutomationRequest, "request", "", "automation request")
	f.Float64Var(&in.EstimatedHours, "hours", 0, "estimated hours per cycle")
	f.StringVar(&in.Name, "name", "", "requester name")
	f.StringVar(&in.Organization, "organization", "", "requester organization")
	f.StringVar(&in.Department, "department", "", "requester department")
	f.StringVar(&in.RepeatCycle, "cycle", "", "repeat cycle")
	f.StringVar(&in.CurrentTools, "current-tools", "", "tools already in use")
	f.StringVar(&in.CoachName, "coach", llm.DefaultCoachName, "coach name used in the prompt")
	f.StringVar(&provider, "call", "", "send the prompt to openai or gemini")
	f.StringVar(&outPath, "out", "", "write the raw provider reply to this file")
	return cmd
}

func providerClient(cmd *cobra.Command, provider string, cfg config.Config) (llm.Client, error) {
	switch provider {
	case llm.EngineOpenAI:
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.CoachingTimeout)
	case llm.EngineGemini:
		return gemini.NewClient(cmd.Context(), cfg.GeminiAPIKey, gemini.Options{Model: cfg.GeminiModel, Timeout: cfg.CoachingTimeout})
	}
	return nil, fmt.Errorf("unknown provider %q (want openai or gemini)", provider)
}
