package cli

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/codalotl/diffrefine/internal/rules"
)

func newRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Work with rules files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Validate a rules file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rules.Load(args[0])
			if err != nil {
				return err
			}
			c, err := rs.Compile()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d substitution, %d refactoring strategies)\n", args[0], len(c.Substitutions), len(c.Refactorings))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "default",
		Short: "Print the built-in rules as TOML",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := toml.Marshal(rules.Default())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}
