package dto

// RecordMovementRequest body para POST /api/products/:id/movements.
type RecordMovementRequest struct {
	Type     string `json:"type" validate:"required,oneof=entrada saida"`
	Quantity int64  `json:"quantity" validate:"required,min=1"`
}

// MovementResponse salida de un movimiento del ledger. Date en la zona de referencia, precisión de ms.
type MovementResponse struct {
	ID            int64  `json:"id"`
	TransactionID string `json:"transaction_id"`
	ProductID     int64  `json:"product_id"`
	UserID        int64  `json:"user_id"`
	Type          string `json:"type"`
	Quantity      int64  `json:"quantity"`
	Balance       int64  `json:"balance"`
	Date          string `json:"date"`
}

// MovementListResponse lista de movimientos, más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
}

// LedgerReportResponse resultado de GET /api/products/:id/ledger/verify.
type LedgerReportResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Movements   int    `json:"movements"`
	LastBalance int64  `json:"last_balance"`
	Consistent  bool   `json:"consistent"`
	Error       string `json:"error,omitempty"`
}
