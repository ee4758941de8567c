package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDBCmd(ref *appRef) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Maintain the project database",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to the postgres database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ref.app.migrator == nil {
				return fmt.Errorf("%w (database.driver is %q)", errMigrationsUnsupported, ref.app.cfg.Database.Driver)
			}

			applied, err := ref.app.migrator.Migrate(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return err
		},
	})

	return cmd
}
