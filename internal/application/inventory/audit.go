package inventory

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// auditPageSize tamaño de página al recorrer todos los productos.
const auditPageSize = 100

// LedgerReport resultado de verificar el ledger de un producto.
type LedgerReport struct {
	ProductID   int64
	ProductName string
	Quantity    int64
	Movements   int
	LastBalance int64
	Err         error // nil si el ledger es consistente
}

// Consistent indica si el ledger no tiene inconsistencias.
func (r LedgerReport) Consistent() bool { return r.Err == nil }

// VerifyLedger comprueba el ledger de un producto. Bloquea la fila durante la lectura para
// obtener una foto consistente de producto + movimientos.
func (e *Engine) VerifyLedger(ctx context.Context, productID int64) (*LedgerReport, error) {
	var report *LedgerReport
	err := e.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		movs, err := movementRepo.ListByProductAsc(ctx, productID)
		if err != nil {
			return err
		}
		report = buildReport(product, movs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !report.Consistent() {
		e.log.Error().Err(report.Err).Int64("product_id", productID).Msg("ledger inconsistente")
	}
	return report, nil
}

// VerifyAll verifica el ledger de todos los productos activos, en orden de id.
func (e *Engine) VerifyAll(ctx context.Context) ([]LedgerReport, error) {
	var reports []LedgerReport
	for offset := 0; ; offset += auditPageSize {
		page, err := e.productRepo.List(ctx, auditPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range page {
			r, err := e.VerifyLedger(ctx, p.ID)
			if err != nil {
				return nil, fmt.Errorf("verificar producto %d: %w", p.ID, err)
			}
			reports = append(reports, *r)
		}
		if len(page) < auditPageSize {
			return reports, nil
		}
	}
}

func buildReport(product *entity.Product, movs []*entity.Movement) *LedgerReport {
	r := &LedgerReport{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    product.Quantity,
		Movements:   len(movs),
		Err:         inventory.VerifyLedger(product, movs),
	}
	if len(movs) > 0 {
		r.LastBalance = movs[len(movs)-1].Balance
	}
	return r
}

// WriteAuditReport escribe el reporte de auditoría en formato tabular.
func WriteAuditReport(w io.Writer, reports []LedgerReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCTO\tCANTIDAD\tMOVIMIENTOS\tULTIMO BALANCE\tESTADO")
	failed := 0
	for _, r := range reports {
		status := "OK"
		if !r.Consistent() {
			status = "ERROR: " + r.Err.Error()
			failed++
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\n", r.ProductID, r.ProductName, r.Quantity, r.Movements, r.LastBalance, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d productos verificados, %d con inconsistencias\n", len(reports), failed)
	return err
}
