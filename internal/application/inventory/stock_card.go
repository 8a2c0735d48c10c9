package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// StockCard kardex de un producto: movimientos en orden cronológico con su balance.
type StockCard struct {
	Product   *entity.Product
	Movements []*entity.Movement // id ASC
}

// StockCardRenderer genera la representación gráfica (PDF) del kardex.
type StockCardRenderer interface {
	RenderStockCard(ctx context.Context, card *StockCard, formatDate func(*entity.Movement) string) ([]byte, error)
}

// StockCardUseCase arma el kardex y lo entrega al renderer.
type StockCardUseCase struct {
	engine   *Engine
	renderer StockCardRenderer
}

// NewStockCardUseCase construye el caso de uso.
func NewStockCardUseCase(engine *Engine, renderer StockCardRenderer) *StockCardUseCase {
	return &StockCardUseCase{engine: engine, renderer: renderer}
}

// DownloadStockCard devuelve (pdfBytes, filename, nil), o domain.ErrProductNotFound.
func (uc *StockCardUseCase) DownloadStockCard(ctx context.Context, productID int64) ([]byte, string, error) {
	var card *StockCard
	err := uc.engine.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
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
		card = &StockCard{Product: product, Movements: movs}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	clock := uc.engine.clock
	pdf, err := uc.renderer.RenderStockCard(ctx, card, func(m *entity.Movement) string {
		return clock.Normalize(m.Date).Format("02/01/2006 15:04")
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return pdf, fmt.Sprintf("kardex-produto-%d.pdf", productID), nil
}
