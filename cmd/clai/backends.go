package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/llm"
)

// backendDescriptions holds presentation text for the built-in backends.
var backendDescriptions = map[string]string{
	"openai":       "OpenAI chat completions, strict json_schema verdicts",
	"azure_openai": "Azure OpenAI deployments, json_object verdicts",
	"mistral":      "Mistral chat completions, json_object verdicts",
	"anthropic":    "Anthropic messages, verdicts through a forced tool call",
}

// backendsCmd lists the supported backends.
var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List supported backends and configured instances",
	Long: `List every backend clai can talk to. When a config file is given with
--config or $` + config.EnvConfigPath + `, the instances configured for each backend
are listed too.`,
	Args: cobra.NoArgs,
	RunE: runBackends,
}

func runBackends(cmd *cobra.Command, _ []string) error {
	var file *config.File
	if configPath != "" {
		f, err := config.Load(configPath)
		if err != nil {
			return exitError(ExitFailure, "Failed to execute command. Reason: %s", err)
		}
		file = f
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	header := bold.Sprint("BACKEND") + "\t" + bold.Sprint("DESCRIPTION")
	if file != nil {
		header += "\t" + bold.Sprint("INSTANCES")
	}
	_, _ = fmt.Fprintln(tw, header)

	for _, name := range llm.Names() {
		desc := backendDescriptions[name]
		if desc == "" {
			desc = name
		}
		line := name + "\t" + desc
		if file != nil {
			instances := file.Instances(name)
			if len(instances) == 0 {
				line += "\t" + faint.Sprint("-")
			} else {
				line += "\t" + green.Sprint(strings.Join(instances, ", "))
			}
		}
		_, _ = fmt.Fprintln(tw, line)
	}

	return tw.Flush()
}
