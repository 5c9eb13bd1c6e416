package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"automation-coach/internal/catalog"
	rec "automation-coach/internal/recommendations"
)

const (
	outputJSON  = "json"
	outputYAML  = "yaml"
	outputTable = "table"
)

// cli resolves settings from flags, then COACHCTL_* env vars, then the
// optional config file.
type cli struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "coachctl",
		Short:         "Operate the AI automation coach",
		Long:          `coachctl runs tool recommendations and clarification analysis offline and regenerates coaching documents.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml)")
	flags.String("weights", "", "scoring weights file (yaml); defaults to ENGINE_WEIGHTS_FILE")
	flags.String("tools", "", "tool catalog file (yaml); defaults to the embedded seed")
	flags.StringP("output", "o", outputJSON, "output format: json, yaml or table")
	for _, name := range []string{"config", "weights", "tools", "output"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newRecommendCmd(c),
		newClarifyCmd(c),
		newToolsCmd(c),
		newWeightsCmd(c),
		newPromptCmd(c),
		newCoachCmd(),
	)
	return root
}

func (c *cli) load() error {
	c.v.SetEnvPrefix("COACHCTL")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	_ = c.v.BindEnv("weights", "COACHCTL_WEIGHTS", "ENGINE_WEIGHTS_FILE")

	path := c.v.GetString("config")
	if path == "" {
		return nil
	}
	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func (c *cli) engine() (*rec.Engine, error) {
	weights, err := rec.LoadWeights(c.v.GetString("weights"))
	if err != nil {
		return nil, err
	}
	return rec.New(weights), nil
}

// activeTools returns the active catalog in ListActive order.
func (c *cli) activeTools(cmd *cobra.Command) ([]rec.Tool, error) {
	var (
		tools []rec.Tool
		err   error
	)
	if path := c.v.GetString("tools"); path != "" {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read tools: %w", readErr)
		}
		tools, err = catalog.ParseTools(data)
	} else {
		tools, err = catalog.SeedTools()
	}
	if err != nil {
		return nil, err
	}
	return catalog.NewMemoryRepo(tools...).ListActive(cmd.Context())
}

func (c *cli) output() (string, error) {
	out := strings.ToLower(strings.TrimSpace(c.v.GetString("output")))
	switch out {
	case "", outputJSON:
		return outputJSON, nil
	case outputYAML, outputTable:
		return out, nil
	}
	return "", fmt.Errorf("unknown output format %q", out)
}

// write encodes v as JSON or YAML. Table output is rendered by the caller.
func write(w io.Writer, format string, v any) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
