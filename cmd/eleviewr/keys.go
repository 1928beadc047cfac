package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/interaction"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/keymap"
)

func newKeysCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the effective key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			printBindings(cmd, cfg.Bindings())
			return nil
		},
	}
}

func printBindings(cmd *cobra.Command, bindings keymap.Bindings) {
	out := cmd.OutOrStdout()
	for _, action := range interaction.Actions {
		keys := bindings.Keys(action)
		names := make([]string, 0, len(keys))
		for _, key := range keys {
			names = append(names, keymap.DisplayName(key))
		}
		fmt.Fprintf(out, "%-16s %s\n", action, strings.Join(names, ", "))
	}
}
