package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

// ErrInconsistentLedger el comando verify encontró productos cuyo ledger no cuadra.
var ErrInconsistentLedger = errors.New("ledger inconsistente")

// NewVerifyCommand audita el ledger de todos los productos (o de uno con --product).
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	var productID int64

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Auditar el ledger de movimientos",
		Long: `Recorre los movimientos de cada producto y comprueba que cada balance
se derive del anterior y que el último coincida con la cantidad actual.
Termina con error si algún producto es inconsistente.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend, engine, err := rootOpts.openEngine(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			var reports []inventory.LedgerReport
			if productID > 0 {
				r, err := engine.VerifyLedger(ctx, productID)
				if err != nil {
					return err
				}
				reports = []inventory.LedgerReport{*r}
			} else {
				reports, err = engine.VerifyAll(ctx)
				if err != nil {
					return err
				}
			}
			if err := inventory.WriteAuditReport(cmd.OutOrStdout(), reports); err != nil {
				return err
			}
			failed := 0
			for _, r := range reports {
				if !r.Consistent() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d producto(s)", ErrInconsistentLedger, failed)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&productID, "product", 0, "verificar solo este producto")
	return cmd
}
