package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
)

func TestApplyMovement_EntradaSuma(t *testing.T) {
	balance, err := inventory.ApplyMovement(5, entity.MovementTypeEntrada, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(8), balance)
}

func TestApplyMovement_SaidaResta(t *testing.T) {
	balance, err := inventory.ApplyMovement(5, entity.MovementTypeSaida, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), balance)
}

func TestApplyMovement_SaidaHastaCero(t *testing.T) {
	balance, err := inventory.ApplyMovement(5, entity.MovementTypeSaida, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestApplyMovement_SaidaDejaNegativo_Rechaza(t *testing.T) {
	_, err := inventory.ApplyMovement(5, entity.MovementTypeSaida, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestApplyMovement_TipoDesconocido(t *testing.T) {
	_, err := inventory.ApplyMovement(5, "ajuste", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

func TestApplyMovement_CantidadNegativa(t *testing.T) {
	_, err := inventory.ApplyMovement(5, entity.MovementTypeEntrada, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestDeriveAdjustment(t *testing.T) {
	cases := []struct {
		name     string
		old, new int64
		wantType string
		wantQty  int64
		changed  bool
	}{
		{"baja de 10 a 7", 10, 7, entity.MovementTypeSaida, 3, true},
		{"sube de 7 a 10", 7, 10, entity.MovementTypeEntrada, 3, true},
		{"desde cero", 0, 4, entity.MovementTypeEntrada, 4, true},
		{"sin cambio", 6, 6, "", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			movType, qty, changed := inventory.DeriveAdjustment(tc.old, tc.new)
			assert.Equal(t, tc.changed, changed)
			assert.Equal(t, tc.wantType, movType)
			assert.Equal(t, tc.wantQty, qty)
		})
	}
}

func TestVerifyLedger_Consistente(t *testing.T) {
	product := &entity.Product{ID: 1, Quantity: 7}
	movs := []*entity.Movement{
		{ID: 1, Type: entity.MovementTypeEntrada, Quantity: 5, Balance: 5},
		{ID: 4, Type: entity.MovementTypeEntrada, Quantity: 5, Balance: 10},
		{ID: 9, Type: entity.MovementTypeSaida, Quantity: 3, Balance: 7},
	}
	assert.NoError(t, inventory.VerifyLedger(product, movs))
}

func TestVerifyLedger_BalanceRoto(t *testing.T) {
	product := &entity.Product{ID: 1, Quantity: 1}
	movs := []*entity.Movement{
		{ID: 1, Type: entity.MovementTypeEntrada, Quantity: 2, Balance: 2},
		{ID: 2, Type: entity.MovementTypeSaida, Quantity: 1, Balance: 1},
		{ID: 3, Type: entity.MovementTypeSaida, Quantity: 1, Balance: 1},
	}
	err := inventory.VerifyLedger(product, movs)
	var le *inventory.LedgerError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, int64(3), le.MovementID)
	assert.Equal(t, int64(0), le.Expected)
	assert.Equal(t, int64(1), le.Actual)
}

func TestVerifyLedger_CantidadDesalineada(t *testing.T) {
	product := &entity.Product{ID: 2, Quantity: 9}
	movs := []*entity.Movement{
		{ID: 1, Type: entity.MovementTypeEntrada, Quantity: 5, Balance: 5},
	}
	err := inventory.VerifyLedger(product, movs)
	var le *inventory.LedgerError
	require.ErrorAs(t, err, &le)
	assert.Zero(t, le.MovementID)
	assert.Equal(t, int64(5), le.Expected)
	assert.Equal(t, int64(9), le.Actual)
}

func TestVerifyLedger_SinMovimientoInicial(t *testing.T) {
	err := inventory.VerifyLedger(&entity.Product{ID: 3}, nil)
	assert.Error(t, err)
}

func TestVerifyLedger_InicialDebeSerEntrada(t *testing.T) {
	product := &entity.Product{ID: 4, Quantity: 0}
	movs := []*entity.Movement{{ID: 1, Type: entity.MovementTypeSaida, Quantity: 0, Balance: 0}}
	assert.Error(t, inventory.VerifyLedger(product, movs))
}

func TestClock_FormatoSaoPaulo(t *testing.T) {
	clock, err := inventory.NewClock("")
	require.NoError(t, err)

	instant := time.Date(2024, 5, 1, 13, 30, 0, 123456789, time.UTC)
	// Sao Paulo no tiene horario de verano desde 2019: UTC-3 fijo.
	assert.Equal(t, "2024-05-01T10:30:00.123-03:00", clock.Format(instant))
}

func TestClock_NowTruncaMilisegundos(t *testing.T) {
	loc, err := time.LoadLocation(inventory.DefaultTimeZone)
	require.NoError(t, err)
	clock := inventory.NewFixedClock(loc, time.Date(2024, 1, 2, 3, 4, 5, 6789999, time.UTC))

	now := clock.Now()
	assert.Equal(t, 6*int(time.Millisecond), now.Nanosecond())
	assert.Equal(t, loc, now.Location())
}

func TestNewClock_ZonaInvalida(t *testing.T) {
	_, err := inventory.NewClock("Marte/Olympus")
	assert.Error(t, err)
}
