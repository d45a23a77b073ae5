package main

import (
	"fmt"

	"github.com/oukeidos/kvlate/internal/language"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List supported languages",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Supported Languages:")
			for _, l := range language.Supported() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-20s [%s]\n", l.Name, l.Code)
			}
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
