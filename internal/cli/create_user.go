package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/infrastructure/storage"
)

// NewCreateUserCommand registra un usuario activo (alta inicial sin pasar por la API).
func NewCreateUserCommand(rootOpts *RootOptions) *cobra.Command {
	var in dto.RegisterRequest

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Crear un usuario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := storage.Open(cmd.Context(), rootOpts.cfg.DB)
			if err != nil {
				return err
			}
			defer backend.Close()

			// sin JWT: el comando solo registra
			uc := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{})
			user, err := uc.RegisterUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuario %d creado (%s)\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "nombre")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (mínimo 6 caracteres)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
