package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"filesort/internal/category"
	"filesort/internal/config"
)

func newRulesCommand(ctx *commandContext) *cobra.Command {
	var labels []string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "rules [dir]",
		Short: "Show the routing rules in evaluation order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source := cfg.Organize.SourceDir
			if len(args) == 1 {
				source, err = config.ExpandPath(strings.TrimSpace(args[0]))
				if err != nil {
					return fmt.Errorf("resolve source directory: %w", err)
				}
			}
			selected := cfg.Organize.Labels
			if cmd.Flags().Changed("label") {
				selected = labels
			}
			table, err := category.Build(source, selected)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, table.Rules())
			}
			renderRules(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "Category label (repeatable; replaces configured labels)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the rules as JSON")
	return cmd
}
