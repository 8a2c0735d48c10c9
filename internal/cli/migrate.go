package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estoque-api/internal/infrastructure/storage"
)

// NewMigrateCommand aplica el esquema (idempotente).
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplicar el esquema de base de datos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := storage.Open(cmd.Context(), rootOpts.cfg.DB)
			if err != nil {
				return err
			}
			defer backend.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "esquema aplicado (%s)\n", backend.Driver)
			return nil
		},
	}
}
