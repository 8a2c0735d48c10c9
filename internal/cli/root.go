// Package cli comandos de administración (estoquectl): migraciones, auditoría del ledger y alta de usuarios.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	domaininv "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/storage"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// RootOptions flags globales. Vacíos = se usa la configuración de entorno.
type RootOptions struct {
	Driver     string
	SQLitePath string
	Verbose    bool

	cfg *config.Config
}

// NewRootCommand construye el comando raíz de estoquectl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "estoquectl",
		Short: "Administración de estoque-api",
		Long:  "Herramientas de administración: esquema de base de datos, auditoría del ledger de movimientos y usuarios.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true, // main imprime el error
	}

	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "driver de base de datos (postgres|sqlite)")
	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite-path", "", "ruta del archivo SQLite")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "logs detallados en stderr")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewCreateUserCommand(opts))

	return cmd
}

func (o *RootOptions) loadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.Driver != "" {
		cfg.DB.Driver = o.Driver
	}
	if o.SQLitePath != "" {
		cfg.DB.SQLitePath = o.SQLitePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

func (o *RootOptions) logger() *logger.Logger {
	if !o.Verbose {
		return logger.Nop()
	}
	return logger.New(logger.Config{Env: "development", Level: "debug", Output: os.Stderr})
}

// openEngine abre el backend configurado y arma el motor de inventario.
func (o *RootOptions) openEngine(ctx context.Context) (*storage.Backend, *inventory.Engine, error) {
	backend, err := storage.Open(ctx, o.cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	clock, err := domaininv.NewClock(o.cfg.Ledger.TimeZone)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	engine := inventory.NewEngine(backend.TxRunner, backend.Products, backend.Movements, backend.Users, clock, o.logger())
	return backend, engine, nil
}
