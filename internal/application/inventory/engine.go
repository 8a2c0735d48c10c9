package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// Engine motor de conciliación de stock. Toda operación que cambia Product.Quantity
// pasa por appendMovement dentro de una transacción con la fila del producto bloqueada.
type Engine struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	userRepo     repository.UserRepository
	clock        *inventory.Clock
	log          *logger.Logger
}

// NewEngine construye el motor. Los repos sin tx se usan solo para lecturas.
func NewEngine(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	userRepo repository.UserRepository,
	clock *inventory.Clock,
	log *logger.Logger,
) *Engine {
	return &Engine{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		userRepo:     userRepo,
		clock:        clock,
		log:          log.Child("component", "inventory"),
	}
}

// NewProduct datos de alta de un producto. Quantity es el stock inicial (0 por defecto).
type NewProduct struct {
	Name         string
	Description  string
	Value        decimal.Decimal
	MinimumValue int64
	Quantity     int64
	Image        []byte
}

// ProductChanges cambios parciales; nil = sin cambio.
type ProductChanges struct {
	Name         *string
	Description  *string
	Value        *decimal.Decimal
	MinimumValue *int64
	Quantity     *int64
	Image        []byte
}

// Clock reloj de referencia del ledger (para formatear fechas en las respuestas).
func (e *Engine) Clock() *inventory.Clock { return e.clock }

// CreateProduct crea el producto y su movimiento inicial de entrada en la misma transacción.
// El movimiento se registra incluso con cantidad 0 para fijar balance[0].
func (e *Engine) CreateProduct(ctx context.Context, userID int64, in NewProduct) (*entity.Product, *entity.Movement, error) {
	if userID <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	in.Name = normalizeText(in.Name)
	in.Description = normalizeText(in.Description)
	if in.Name == "" || in.Description == "" || in.Value.IsNegative() || in.MinimumValue < 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return nil, nil, domain.ErrInvalidQuantity
	}

	now := e.clock.Now()
	txID := uuid.New().String()
	product := &entity.Product{
		Name:         in.Name,
		Description:  in.Description,
		Value:        in.Value,
		MinimumValue: in.MinimumValue,
		Image:        in.Image,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var mov *entity.Movement
	err := e.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		var err error
		mov, err = e.appendMovement(ctx, productRepo, movementRepo, product, entity.MovementTypeEntrada, in.Quantity, userID, now, txID)
		return err
	})
	if err != nil {
		e.log.Warn().Err(err).Str("name", in.Name).Msg("alta de producto rechazada")
		return nil, nil, err
	}
	e.log.Info().
		Int64("product_id", product.ID).
		Int64("movement_id", mov.ID).
		Int64("balance", mov.Balance).
		Msg("producto creado con movimiento inicial")
	return product, mov, nil
}

// RecordMovement registra una entrada o saida explícita. Una saida que deja el stock negativo
// devuelve ErrInvalidQuantity sin escribir nada.
func (e *Engine) RecordMovement(ctx context.Context, productID int64, movType string, quantity, userID int64) (*entity.Product, *entity.Movement, error) {
	if !entity.ValidMovementType(movType) {
		return nil, nil, domain.ErrInvalidMovementType
	}
	if quantity <= 0 {
		return nil, nil, domain.ErrInvalidQuantity
	}
	if productID <= 0 || userID <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}

	now := e.clock.Now()
	txID := uuid.New().String()
	var product *entity.Product
	var mov *entity.Movement
	err := e.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		var err error
		product, err = productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		mov, err = e.appendMovement(ctx, productRepo, movementRepo, product, movType, quantity, userID, now, txID)
		return err
	})
	if err != nil {
		e.log.Warn().Err(err).
			Int64("product_id", productID).
			Str("type", movType).
			Int64("quantity", quantity).
			Msg("movimiento rechazado")
		return nil, nil, err
	}
	e.log.Info().
		Int64("product_id", productID).
		Int64("movement_id", mov.ID).
		Str("type", movType).
		Int64("balance", mov.Balance).
		Msg("movimiento registrado")
	return product, mov, nil
}

// UpdateProduct actualiza campos del producto. Si cambia Quantity se deriva un movimiento implícito
// (saida si baja, entrada si sube) que se registra en la misma transacción.
// El movimiento devuelto es nil cuando la cantidad no cambia.
func (e *Engine) UpdateProduct(ctx context.Context, productID, userID int64, ch ProductChanges) (*entity.Product, *entity.Movement, error) {
	if productID <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if ch.Name != nil {
		n := normalizeText(*ch.Name)
		if n == "" {
			return nil, nil, domain.ErrInvalidInput
		}
		ch.Name = &n
	}
	if ch.Description != nil {
		d := normalizeText(*ch.Description)
		if d == "" {
			return nil, nil, domain.ErrInvalidInput
		}
		ch.Description = &d
	}
	if (ch.Value != nil && ch.Value.IsNegative()) || (ch.MinimumValue != nil && *ch.MinimumValue < 0) {
		return nil, nil, domain.ErrInvalidInput
	}
	if ch.Quantity != nil {
		if *ch.Quantity < 0 {
			return nil, nil, domain.ErrInvalidQuantity
		}
		if userID <= 0 {
			return nil, nil, domain.ErrInvalidInput
		}
	}

	now := e.clock.Now()
	txID := uuid.New().String()
	var product *entity.Product
	var mov *entity.Movement
	err := e.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		var err error
		product, err = productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if ch.Name != nil {
			product.Name = *ch.Name
		}
		if ch.Description != nil {
			product.Description = *ch.Description
		}
		if ch.Value != nil {
			product.Value = *ch.Value
		}
		if ch.MinimumValue != nil {
			product.MinimumValue = *ch.MinimumValue
		}
		if ch.Image != nil {
			product.Image = ch.Image
		}
		product.UpdatedAt = now
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		if ch.Quantity == nil {
			return nil
		}
		movType, qty, changed := inventory.DeriveAdjustment(product.Quantity, *ch.Quantity)
		if !changed {
			return nil
		}
		mov, err = e.appendMovement(ctx, productRepo, movementRepo, product, movType, qty, userID, now, txID)
		return err
	})
	if err != nil {
		e.log.Warn().Err(err).Int64("product_id", productID).Msg("actualización de producto rechazada")
		return nil, nil, err
	}
	ev := e.log.Info().Int64("product_id", productID)
	if mov != nil {
		ev = ev.Int64("movement_id", mov.ID).Str("type", mov.Type).Int64("balance", mov.Balance)
	}
	ev.Msg("producto actualizado")
	return product, mov, nil
}

// appendMovement calcula el balance, alinea Product.Quantity y agrega el movimiento al ledger.
// Debe llamarse con la fila del producto bloqueada (o recién insertada) dentro de la tx.
func (e *Engine) appendMovement(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	product *entity.Product,
	movType string,
	quantity, userID int64,
	now time.Time, txID string,
) (*entity.Movement, error) {
	balance, err := inventory.ApplyMovement(product.Quantity, movType, quantity)
	if err != nil {
		return nil, err
	}
	if balance != product.Quantity {
		if err := productRepo.UpdateQuantity(ctx, product.ID, balance); err != nil {
			return nil, err
		}
		product.Quantity = balance
	}
	mov := &entity.Movement{
		TransactionID: txID,
		ProductID:     product.ID,
		UserID:        userID,
		Type:          movType,
		Quantity:      quantity,
		Balance:       balance,
		Date:          now,
	}
	if err := movementRepo.Append(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ListMovementsByProduct devuelve el ledger del producto (más reciente primero).
// Los productos con borrado lógico conservan su historial.
func (e *Engine) ListMovementsByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	ok, err := e.productRepo.Exists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return e.movementRepo.ListByProduct(ctx, productID)
}

// ListMovementsByUser devuelve los movimientos registrados por el usuario (más reciente primero).
func (e *Engine) ListMovementsByUser(ctx context.Context, userID int64) ([]*entity.Movement, error) {
	user, err := e.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return e.movementRepo.ListByUser(ctx, userID)
}

// normalizeText recorta espacios y normaliza a NFC para que nombres visualmente iguales colisionen.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
