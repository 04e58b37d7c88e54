package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/githubnext/stratcalc/internal/calc"
)

var operationDescriptions = map[calc.Kind]string{
	calc.KindSum:  "first + second",
	calc.KindSub:  "first - second",
	calc.KindMult: "first * second",
	calc.KindDiv:  "first / second, truncated toward zero",
}

// newOperationsCmd creates the command that lists the supported operations
func newOperationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the supported operation names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range calc.NewDefaultRegistry().Kinds() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-5s %s\n", kind, operationDescriptions[kind]); err != nil {
					return err
				}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
}
