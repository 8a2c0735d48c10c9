package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	domaininv "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// newTestAPI arma el router completo sobre SQLite en un directorio temporal.
func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock, err := domaininv.NewClock(domaininv.DefaultTimeZone)
	require.NoError(t, err)

	productRepo := sqlite.NewProductRepository(store)
	userRepo := sqlite.NewUserRepository(store)
	engine := inventory.NewEngine(
		sqlite.NewTxRunner(store),
		productRepo,
		sqlite.NewMovementRepository(store),
		userRepo,
		clock,
		logger.Nop(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	}).WithBcryptCost(bcrypt.MinCost)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(engine, productRepo),
		MovementUC:  usecase.NewMovementUseCase(engine),
		StockCardUC: inventory.NewStockCardUseCase(engine, pdf.NewStockCardGenerator()),
		AuthUC:      authUC,
		JWTSecret:   testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// registerAndLogin registra un usuario y devuelve (token, userID).
func registerAndLogin(t *testing.T, app *fiber.App, email string) (string, int64) {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Ana", Email: email, Password: "secreto1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decode[dto.UserResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secreto1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)
	return login.Token, user.ID
}

func createProduct(t *testing.T, app *fiber.App, token, name string, qty, minimum int64) dto.ProductMovementResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": name, "description": name + " desc", "value": "12.50", "minimum_value": minimum, "quantity": qty,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductMovementResponse](t, resp)
}

func TestAuth_RegistroYLogin(t *testing.T) {
	app := newTestAPI(t)
	token, userID := registerAndLogin(t, app, "ana@example.com")
	assert.NotEmpty(t, token)
	assert.Positive(t, userID)

	// email duplicado
	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Otra", Email: "ANA@example.com", Password: "secreto1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "email", errBody.Field)

	// password incorrecto
	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@example.com", Password: "otra-cosa"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestProducts_SinToken_Retorna401(t *testing.T) {
	app := newTestAPI(t)
	resp := call(t, app, http.MethodGet, "/api/products", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProducts_CrearConMovimientoInicial(t *testing.T) {
	app := newTestAPI(t)
	token, userID := registerAndLogin(t, app, "ana@example.com")

	out := createProduct(t, app, token, "Caneta", 5, 2)
	assert.Equal(t, "Caneta", out.Product.Name)
	assert.Equal(t, int64(5), out.Product.Quantity)
	assert.Equal(t, "12.5", out.Product.Value.String())
	require.NotNil(t, out.Movement)
	assert.Equal(t, "entrada", out.Movement.Type)
	assert.Equal(t, int64(5), out.Movement.Balance)
	assert.Equal(t, userID, out.Movement.UserID)
	assert.NotEmpty(t, out.Movement.TransactionID)

	resp := call(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", out.Product.ID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, out.Product.ID, got.ID)
}

func TestProducts_NombreDuplicado_Retorna409ConCampo(t *testing.T) {
	app := newTestAPI(t)
	token, _ := registerAndLogin(t, app, "ana@example.com")
	createProduct(t, app, token, "Caneta", 1, 0)

	resp := call(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Caneta", "description": "otra", "value": "1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "CONFLICT", errBody.Code)
	assert.Equal(t, "name", errBody.Field)
}

func TestProducts_CamposRequeridos_Retorna400(t *testing.T) {
	app := newTestAPI(t)
	token, _ := registerAndLogin(t, app, "ana@example.com")

	resp := call(t, app, http.MethodPost, "/api/products", token, map[string]any{"name": "  ", "description": "x"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProducts_MultipartConImagen(t *testing.T) {
	app := newTestAPI(t)
	token, _ := registerAndLogin(t, app, "ana@example.com")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Lapis"))
	require.NoError(t, w.WriteField("description", "Lapis HB"))
	require.NoError(t, w.WriteField("value", "3.20"))
	require.NoError(t, w.WriteField("quantity", "4"))
	fw, err := w.CreateFormFile("image", "lapis.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	out := decode[dto.ProductMovementResponse](t, resp)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, out.Product.Image)
	assert.Equal(t, int64(4), out.Product.Quantity)
}

func TestMovements_SaidaSinStock_Retorna422(t *testing.T) {
	app := newTestAPI(t)
	token, _ := registerAndLogin(t, app, "ana@example.com")
	p := createProduct(t, app, token, "Caneta", 2, 0)
	path := fmt.Sprintf("/api/products/%d/movements", p.Product.ID)

	resp := call(t, app, http.MethodPost, path, token, dto.RecordMovementRequest{Type: "saida", Quantity: 3})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_QUANTITY", errBody.Code)

	resp = call(t, app, http.MethodPost, path, token, dto.RecordMovementRequest{Type: "ajuste", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, path, token, dto.RecordMovementRequest{Type: "saida", Quantity: 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.ProductMovementResponse](t, resp)
	assert.Equal(t, int64(0), out.Product.Quantity)
	assert.Equal(t, int64(0), out.Movement.Balance)

	resp = call(t, app, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.MovementListResponse](t, resp)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "saida", list.Items[0].Type, "más reciente primero")
}

func TestProducts_LowStockNoSeConfundeConID(t *testing.T) {
	app := newTestAPI(t)
	token, _ := registerAndLogin(t, app, "ana@example.com")
	createProduct(t, app, token, "Caneta", 1, 5)
	createProduct(t, app, token, "Borracha", 10, 5)

	resp := call(t, app, http.MethodGet, "/api/products/low-stock", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.ProductResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "Caneta", list[0].Name)
	assert.True(t, list[0].LowStock)
}

func TestProducts_UpdateCantidadGeneraAjuste(t *testing.T) {
	app := newTestAPI(t)
	token, _ := registerAndLogin(t, app, "ana@example.com")
	p := createProduct(t, app, token, "Caneta", 10, 0)

	resp := call(t, app, http.MethodPut, fmt.Sprintf("/api/products/%d", p.Product.ID), token, map[string]any{"quantity": 7})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ProductMovementResponse](t, resp)
	require.NotNil(t, out.Movement)
	assert.Equal(t, "saida", out.Movement.Type)
	assert.Equal(t, int64(3), out.Movement.Quantity)
	assert.Equal(t, int64(7), out.Movement.Balance)
}

func TestProducts_BorradoLogico(t *testing.T) {
	app := newTestAPI(t)
	token, _ := registerAndLogin(t, app, "ana@example.com")
	p := createProduct(t, app, token, "Caneta", 3, 0)
	path := fmt.Sprintf("/api/products/%d", p.Product.ID)

	resp := call(t, app, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// el ledger sigue disponible
	resp = call(t, app, http.MethodGet, path+"/movements", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.MovementListResponse](t, resp)
	assert.Len(t, list.Items, 1)
}

func TestLedger_VerificarConsistente(t *testing.T) {
	app := newTestAPI(t)
	token, _ := registerAndLogin(t, app, "ana@example.com")
	p := createProduct(t, app, token, "Caneta", 3, 0)

	resp := call(t, app, http.MethodPost, fmt.Sprintf("/api/products/%d/movements", p.Product.ID), token,
		dto.RecordMovementRequest{Type: "entrada", Quantity: 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d/ledger/verify", p.Product.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[dto.LedgerReportResponse](t, resp)
	assert.True(t, report.Consistent)
	assert.Equal(t, 2, report.Movements)
	assert.Equal(t, int64(7), report.LastBalance)
	assert.Equal(t, int64(7), report.Quantity)
}

func TestStockCard_DevuelvePDF(t *testing.T) {
	app := newTestAPI(t)
	token, _ := registerAndLogin(t, app, "ana@example.com")
	p := createProduct(t, app, token, "Caneta", 3, 0)

	resp := call(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d/movements/report", p.Product.ID), token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), fmt.Sprintf("kardex-produto-%d.pdf", p.Product.ID))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp2 := call(t, app, http.MethodGet, "/api/products/999/movements/report", token, nil)
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
	resp2.Body.Close()
}

func TestMovements_PorUsuario(t *testing.T) {
	app := newTestAPI(t)
	tokenAna, anaID := registerAndLogin(t, app, "ana@example.com")
	tokenBia, _ := registerAndLogin(t, app, "bia@example.com")
	createProduct(t, app, tokenAna, "Caneta", 3, 0)
	createProduct(t, app, tokenBia, "Borracha", 1, 0)

	resp := call(t, app, http.MethodGet, "/api/me/movements", tokenAna, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	mine := decode[dto.MovementListResponse](t, resp)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, anaID, mine.Items[0].UserID)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/movements", anaID), tokenBia, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	byUser := decode[dto.MovementListResponse](t, resp)
	assert.Len(t, byUser.Items, 1)

	resp = call(t, app, http.MethodGet, "/api/users/9999/movements", tokenAna, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestParamID_Invalido_Retorna400(t *testing.T) {
	app := newTestAPI(t)
	token, _ := registerAndLogin(t, app, "ana@example.com")
	resp := call(t, app, http.MethodGet, "/api/products/abc", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
