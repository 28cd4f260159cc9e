package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-farmacia/internal/application/dto"
	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
	"github.com/jhoicas/kardex-farmacia/internal/application/presentation"
	"github.com/jhoicas/kardex-farmacia/internal/application/usecase"
	"github.com/jhoicas/kardex-farmacia/internal/infrastructure/excel"
	"github.com/jhoicas/kardex-farmacia/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-farmacia/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/kardex-farmacia/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/kardex-farmacia/pkg/jwt"
)

// newAPI arma la API completa sobre almacenamiento en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewMovementStore()
	products := memory.NewProductRepository()
	profiles := memory.NewPresentationRepository()
	cache := memory.NewBalanceCache()

	ledger := inventory.NewLedger(memory.NewTxRunner(store), products, store, cache, nil,
		inventory.LedgerConfig{StorageTimeout: time.Second, MaxRetries: 2, RetryBackoff: time.Millisecond})
	projector := inventory.NewProjector(ledger, products, cache, time.Minute, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(products, profiles, nil, nil),
		Ledger:        ledger,
		Projector:     projector,
		Adjustments:   inventory.NewAdjustmentUseCase(ledger, nil),
		Conversions:   inventory.NewConversionUseCase(ledger, nil),
		Purchases:     inventory.NewPurchaseUseCase(ledger, nil),
		Sales:         inventory.NewSaleUseCase(ledger, ledger, nil),
		Reports:       inventory.NewReportUseCase(projector, products),
		Presentations: presentation.NewUseCase(nil, products, profiles, memory.NewJobLock(), nil),
		Exporters:     []inventory.KardexExporter{excel.NewKardexExcelExporter(), pdf.NewKardexPDFGenerator("test")},
		ExpiryWindow:  90 * 24 * time.Hour,
		JWTSecret:     testJWTSecret,
	})
	return app
}

func mustDec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func call(t *testing.T, app *fiber.App, role, method, path string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createProduct(t *testing.T, app *fiber.App, sku, name string) string {
	t.Helper()
	resp := call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/products", map[string]interface{}{
		"sku": sku, "name": name, "min_stock": "10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)
	return p.ID
}

func balanceOf(t *testing.T, app *fiber.App, id string) string {
	t.Helper()
	resp := call(t, app, pkgjwt.RoleVendedor, http.MethodGet, "/api/inventory/products/"+id+"/balance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var b dto.BalanceResponse
	decode(t, resp, &b)
	return b.Balance.String()
}

func TestAPI_FlujoCompraVentaAnulacion(t *testing.T) {
	app := newAPI(t)
	id := createProduct(t, app, "ACE-500", "Acetaminofén 500mg x 100 tabletas")

	resp := call(t, app, pkgjwt.RoleBodeguero, http.MethodPost, "/api/purchases/receipts", map[string]interface{}{
		"order_ref": "OC-1",
		"lines":     []map[string]interface{}{{"product_id": id, "received": "100", "rejected": "5"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var written []dto.MovementResponse
	decode(t, resp, &written)
	require.Len(t, written, 2)
	assert.Equal(t, "PURCHASE_IN", written[0].Kind)
	assert.Equal(t, "RETURN_FROM_PURCHASE", written[1].Kind)
	assert.Equal(t, "95", balanceOf(t, app, id))

	resp = call(t, app, pkgjwt.RoleVendedor, http.MethodPost, "/api/sales", map[string]interface{}{
		"sale_ref": "V-1",
		"lines":    []map[string]interface{}{{"product_id": id, "quantity": "30"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, "65", balanceOf(t, app, id))

	resp = call(t, app, pkgjwt.RoleVendedor, http.MethodPost, "/api/sales/V-1/void", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, "95", balanceOf(t, app, id))

	// Segunda anulación: conflicto.
	resp = call(t, app, pkgjwt.RoleVendedor, http.MethodPost, "/api/sales/V-1/void", dto.VoidSaleRequest{Reason: "otra vez"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_StockInsuficiente409(t *testing.T) {
	app := newAPI(t)
	id := createProduct(t, app, "AMX", "Amoxicilina 500 mg cápsulas x 50")

	resp := call(t, app, pkgjwt.RoleBodeguero, http.MethodPost, "/api/inventory/movements", dto.AppendMovementRequest{
		ProductID: id, Kind: "sale_out", Quantity: mustDec("1"),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	assert.False(t, e.Retryable)
	assert.Equal(t, "0", balanceOf(t, app, id))
}

func TestAPI_ErroresDeValidacion(t *testing.T) {
	app := newAPI(t)
	id := createProduct(t, app, "X", "Suero oral 500 ml")

	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{"cantidad cero", dto.AppendMovementRequest{ProductID: id, Kind: "PURCHASE_IN", Quantity: mustDec("0")}, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"cantidad con cinco decimales", dto.AppendMovementRequest{ProductID: id, Kind: "PURCHASE_IN", Quantity: mustDec("0.00001")}, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"tipo desconocido", dto.AppendMovementRequest{ProductID: id, Kind: "REGALO", Quantity: mustDec("1")}, http.StatusBadRequest, "UNKNOWN_MOVEMENT_KIND"},
		{"producto inexistente", dto.AppendMovementRequest{ProductID: "nope", Kind: "PURCHASE_IN", Quantity: mustDec("1")}, http.StatusNotFound, "UNKNOWN_PRODUCT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/inventory/movements", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			var e dto.ErrorResponse
			decode(t, resp, &e)
			assert.Equal(t, tt.code, e.Code)
		})
	}

	resp := call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/inventory/adjustments", dto.AdjustmentRequest{
		ProductID: id, Direction: "in", Quantity: mustDec("3"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "NOTE_REQUIRED", e.Code)
}

func TestAPI_RolesPorRuta(t *testing.T) {
	app := newAPI(t)
	id := createProduct(t, app, "X", "Jarabe para la tos 120 ml")

	resp := call(t, app, pkgjwt.RoleVendedor, http.MethodPost, "/api/inventory/adjustments", dto.AdjustmentRequest{
		ProductID: id, Direction: "in", Quantity: mustDec("3"), Note: "conteo",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, pkgjwt.RoleBodeguero, http.MethodPost, "/api/sales", dto.SaleRequest{SaleRef: "V-1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, "", http.MethodGet, "/api/reports/low-stock", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_KardexJSONYArchivos(t *testing.T) {
	app := newAPI(t)
	id := createProduct(t, app, "LOR-10", "Loratadina 10mg x 10 tabletas")

	for _, q := range []string{"20", "5"} {
		resp := call(t, app, pkgjwt.RoleBodeguero, http.MethodPost, "/api/inventory/movements", dto.AppendMovementRequest{
			ProductID: id, Kind: "PURCHASE_IN", Quantity: mustDec(q), Reference: "OC-" + q,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := call(t, app, pkgjwt.RoleVendedor, http.MethodGet, "/api/inventory/products/"+id+"/kardex", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var k dto.KardexResponse
	decode(t, resp, &k)
	require.Len(t, k.Entries, 2)
	assert.Equal(t, "0", k.OpeningBalance.String())
	assert.Equal(t, "25", k.ClosingBalance.String())
	assert.True(t, k.Entries[0].BalanceAfter.Equal(k.Entries[1].BalanceBefore))

	resp = call(t, app, pkgjwt.RoleVendedor, http.MethodGet, "/api/inventory/products/"+id+"/kardex?format=pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "kardex-LOR-10.pdf")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = call(t, app, pkgjwt.RoleVendedor, http.MethodGet, "/api/inventory/products/"+id+"/kardex?format=xlsx", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, pkgjwt.RoleVendedor, http.MethodGet, "/api/inventory/products/"+id+"/kardex?format=csv", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, pkgjwt.RoleVendedor, http.MethodGet, "/api/inventory/products/"+id+"/movements?from=ayer", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ReportesYPresentaciones(t *testing.T) {
	app := newAPI(t)
	id := createProduct(t, app, "IBU", "Ibuprofeno suspensión 120 ml")

	resp := call(t, app, pkgjwt.RoleVendedor, http.MethodGet, "/api/reports/low-stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var low struct {
		Total int                   `json:"total"`
		Items []dto.LowStockItemDTO `json:"items"`
	}
	decode(t, resp, &low)
	require.Equal(t, 1, low.Total)
	assert.Equal(t, id, low.Items[0].ProductID)
	assert.Equal(t, "15", low.Items[0].SuggestedOrderQty.String())

	resp = call(t, app, pkgjwt.RoleVendedor, http.MethodGet, "/api/reports/near-expiry?days=-3", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, pkgjwt.RoleVendedor, http.MethodGet, "/api/presentations/preview?name=Jarabe%20infantil%20120", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pv dto.PresentationResponse
	decode(t, resp, &pv)
	assert.Equal(t, "Syrup", pv.Kind)
	assert.Equal(t, 120, pv.UnitsPerPackage)

	resp = call(t, app, pkgjwt.RoleVendedor, http.MethodGet, "/api/presentations/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, pkgjwt.RoleVendedor, http.MethodPost, "/api/presentations/reclassify", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, pkgjwt.RoleAdmin, http.MethodPost, "/api/presentations/reclassify?dry_run=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sum dto.ClassificationSummaryResponse
	decode(t, resp, &sum)
	assert.Equal(t, 1, sum.Scanned)
	assert.True(t, sum.DryRun)
}
