package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trackit-api/internal/application/audit"
	"github.com/jhoicas/Trackit-api/internal/application/auth"
	"github.com/jhoicas/Trackit-api/internal/application/dto"
	"github.com/jhoicas/Trackit-api/internal/application/inventory"
	"github.com/jhoicas/Trackit-api/internal/application/usecase"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Trackit-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Trackit-api/internal/interfaces/http"
	"github.com/jhoicas/Trackit-api/pkg/logger"
)

// newAPI arma la API completa sobre el almacén en memoria con auditoría inline.
func newAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	mem := memory.New()
	store := mem.Repositories()
	log := logger.Nop()
	publisher := audit.NewInlinePublisher(audit.NewWriter(store.Actions))

	authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	query := inventory.NewMovementQueryUseCase(store)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(store.Users),
		CompanyUC:      usecase.NewCompanyUseCase(store.Companies, store.Users, authUC, publisher, log),
		WarehouseUC:    usecase.NewWarehouseUseCase(store.Warehouses),
		CustomerUC:     usecase.NewCustomerUseCase(store.Customers),
		SupplierUC:     usecase.NewSupplierUseCase(store.Suppliers),
		OrderUC:        usecase.NewOrderUseCase(store, publisher, log),
		ActionUC:       usecase.NewActionUseCase(store.Actions),
		Ledger:         inventory.NewLedgerUseCase(store, publisher, log),
		MovementQuery:  query,
		MovementReport: inventory.NewMovementReportUseCase(query, store.Companies, infrapdf.NewMarotoPDFGenerator()),
		JWTSecret:      testJWTSecret,
	})
	return app, mem
}

// call lanza una petición JSON y decodifica la respuesta en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: email, Password: "cokgizli1", Name: "Ayşe", Surname: "Yılmaz",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var login dto.LoginResponse
	status = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "cokgizli1"}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestAPI_FlujoCompleto(t *testing.T) {
	app, mem := newAPI(t)

	token := registerAndLogin(t, app, "admin@depo.com")

	// Sin firma no se accede a los recursos de inventario.
	var apiErr dto.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/warehouses", token, nil, &apiErr)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "NO_COMPANY", apiErr.Code)

	var membership dto.MembershipResponse
	status = call(t, app, http.MethodPost, "/api/companies", token, dto.CreateCompanyRequest{Name: "Anadolu Lojistik"}, &membership)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, entity.RoleAdmin, membership.Role)
	admin := membership.Token

	var main, annex dto.WarehouseResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/warehouses", admin, dto.CreateWarehouseRequest{Name: "Merkez", Address: "İstanbul"}, &main))
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/warehouses", admin, dto.CreateWarehouseRequest{Name: "Ek Depo"}, &annex))

	var customer, supplier dto.PartyResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/customers", admin, dto.PartyRequest{Name: "Kaya Market"}, &customer))
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/suppliers", admin, dto.PartyRequest{Name: "Demir Tedarik"}, &supplier))

	var item dto.StockItemResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/stocks", admin, dto.CreateStockItemRequest{
		WarehouseID: main.ID, ProductName: "Çimento", Unit: "çuval",
	}, &item))
	assert.True(t, item.Quantity.IsZero())

	var mov dto.MovementResponse
	status = call(t, app, http.MethodPost, "/api/inventory/entries", admin, dto.EntryRequest{
		StockItemID: item.ID, Quantity: decimal.NewFromInt(10), SupplierID: supplier.ID,
	}, &mov)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, mov.ResultingQuantity.Equal(decimal.NewFromInt(10)))

	status = call(t, app, http.MethodPost, "/api/inventory/exits", admin, dto.ExitRequest{
		StockItemID: item.ID, Quantity: decimal.NewFromInt(15), CustomerID: customer.ID,
	}, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", apiErr.Code)

	var order dto.OrderResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/orders", admin, dto.CreateOrderRequest{
		CustomerID: customer.ID, Description: "20 çuval çimento",
	}, &order))
	assert.Equal(t, entity.OrderApproved, order.Status)

	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/inventory/exits", admin, dto.ExitRequest{
		StockItemID: item.ID, Quantity: decimal.NewFromInt(4), CustomerID: customer.ID, OrderID: order.ID,
	}, &mov))
	exitID := mov.ID

	var orders dto.ListResponse[dto.OrderResponse]
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/orders?status=Completed", admin, nil, &orders))
	require.Len(t, orders.Items, 1)
	assert.Equal(t, order.ID, orders.Items[0].ID)

	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/inventory/transfers", admin, dto.TransferRequest{
		StockItemID: item.ID, Quantity: decimal.NewFromInt(3), SourceWarehouseID: main.ID, DestinationWarehouseID: annex.ID,
	}, &mov))
	assert.True(t, mov.ResultingQuantity.Equal(decimal.NewFromInt(3)))

	var stock dto.ListResponse[dto.StockItemResponse]
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/stocks?warehouse_id="+annex.ID, admin, nil, &stock))
	require.Len(t, stock.Items, 1)
	assert.True(t, stock.Items[0].Quantity.Equal(decimal.NewFromInt(3)))

	var movements dto.ListResponse[dto.MovementResponse]
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/inventory/movements", admin, nil, &movements))
	assert.Equal(t, 3, movements.Total)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/inventory/movements?kind=exit", admin, nil, &movements))
	require.Len(t, movements.Items, 1)
	assert.Equal(t, "Kaya Market", movements.Items[0].CounterpartyName)

	status = call(t, app, http.MethodGet, "/api/inventory/movements?from=19-10-2026", admin, nil, &apiErr)
	assert.Equal(t, http.StatusBadRequest, status)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/movements/report", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	pdf, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	// Un segundo usuario se une con el código vigente.
	var company dto.CompanyResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/companies/me", admin, nil, &company))
	require.Len(t, company.InviteCode, 8)

	clerkLogin := registerAndLogin(t, app, "gorevli@depo.com")
	var summary dto.CompanySummary
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/invites/verify", clerkLogin, dto.VerifyInviteRequest{Code: company.InviteCode}, &summary))
	assert.Equal(t, "Anadolu Lojistik", summary.Name)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/invites/join", clerkLogin, dto.JoinCompanyRequest{
		Code: company.InviteCode, Role: entity.RoleWarehouseSupervisor,
	}, &membership))
	assert.Equal(t, entity.RoleWarehouseSupervisor, membership.Role)
	assert.Equal(t, entity.JobTitleWarehouseSupervisor, membership.JobTitle)
	supervisor := membership.Token

	// El código usado deja de ser válido.
	status = call(t, app, http.MethodPost, "/api/invites/verify", supervisor, dto.VerifyInviteRequest{Code: company.InviteCode}, &apiErr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_INVITE_CODE", apiErr.Code)

	var members dto.ListResponse[dto.UserResponse]
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/companies/me/members", supervisor, nil, &members))
	assert.Equal(t, 2, members.Total)

	// Solo el admin elimina movimientos, sin revertir cantidades.
	status = call(t, app, http.MethodDelete, "/api/inventory/movements/"+exitID, supervisor, nil, &apiErr)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, http.StatusNoContent, call(t, app, http.MethodDelete, "/api/inventory/movements/"+exitID, admin, nil, nil))
	assert.Equal(t, 2, mem.Count("Stok_Hareketleri"))

	var actions dto.ListResponse[dto.ActionResponse]
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/actions?type="+entity.ActionMovementDeleted, admin, nil, &actions))
	require.Len(t, actions.Items, 1)
	assert.Equal(t, exitID, actions.Items[0].RelatedDocumentID)
}

func TestAPI_ErroresDeEntrada(t *testing.T) {
	app, _ := newAPI(t)

	var apiErr dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "no-es-email", Password: "corta"}, &apiErr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", apiErr.Code)

	token := registerAndLogin(t, app, "dup@depo.com")
	status = call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "DUP@depo.com", Password: "cokgizli1", Name: "Mehmet",
	}, &apiErr)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", apiErr.Code)

	status = call(t, app, http.MethodPost, "/api/invites/join", token, dto.JoinCompanyRequest{Code: "00000000"}, &apiErr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_INVITE_CODE", apiErr.Code)

	status = call(t, app, http.MethodGet, "/api/auth/me", "", nil, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, status)
}
