package usecase

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	domaininv "github.com/jhoicas/estoque-api/internal/domain/inventory"
)

// MovementUseCase registro y consulta del ledger de movimientos.
type MovementUseCase struct {
	engine *inventory.Engine
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(engine *inventory.Engine) *MovementUseCase {
	return &MovementUseCase{engine: engine}
}

// Record registra una entrada o saida explícita sobre el producto.
func (uc *MovementUseCase) Record(ctx context.Context, productID, userID int64, in dto.RecordMovementRequest) (*dto.ProductMovementResponse, error) {
	product, mov, err := uc.engine.RecordMovement(ctx, productID, in.Type, in.Quantity, userID)
	if err != nil {
		return nil, err
	}
	mr := toMovementResponse(uc.engine.Clock(), mov)
	return &dto.ProductMovementResponse{Product: *toProductResponse(product), Movement: &mr}, nil
}

// ListByProduct devuelve el ledger del producto, más reciente primero.
func (uc *MovementUseCase) ListByProduct(ctx context.Context, productID int64) (*dto.MovementListResponse, error) {
	movs, err := uc.engine.ListMovementsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.toList(movs), nil
}

// ListByUser devuelve los movimientos registrados por el usuario, más reciente primero.
func (uc *MovementUseCase) ListByUser(ctx context.Context, userID int64) (*dto.MovementListResponse, error) {
	movs, err := uc.engine.ListMovementsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.toList(movs), nil
}

// VerifyLedger comprueba la cadena de balances del producto.
func (uc *MovementUseCase) VerifyLedger(ctx context.Context, productID int64) (*dto.LedgerReportResponse, error) {
	r, err := uc.engine.VerifyLedger(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.LedgerReportResponse{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		Movements:   r.Movements,
		LastBalance: r.LastBalance,
		Consistent:  r.Consistent(),
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out, nil
}

func (uc *MovementUseCase) toList(movs []*entity.Movement) *dto.MovementListResponse {
	clock := uc.engine.Clock()
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, toMovementResponse(clock, m))
	}
	return &dto.MovementListResponse{Items: items}
}

func toMovementResponse(clock *domaininv.Clock, m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		UserID:        m.UserID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Balance:       m.Balance,
		Date:          clock.Format(m.Date),
	}
}
