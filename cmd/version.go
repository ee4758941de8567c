package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/deck/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{annotationNoApp: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "deck %s\n", version.Version)
			return err
		},
	}
}
