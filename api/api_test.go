package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Arihaan/ZKShop/api"
	"github.com/Arihaan/ZKShop/database/dbtest"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/plt"
	"github.com/Arihaan/ZKShop/plt/plttest"
	"github.com/Arihaan/ZKShop/services"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/Arihaan/ZKShop/structs/tables"
	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	t       *testing.T
	handler http.Handler
	node    *plttest.Node
	token   string
	headers map[string]string
}

func testConfig() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{AppName: "ZKShop", Environment: "test", MaxBodyBytes: 1 << 20},
		Cors: &structs.CorsConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
		Database: &structs.DatabaseConfig{Driver: "sqlite"},
		Ledger: &structs.LedgerConfig{
			DefaultTokenID:      "EUDemo",
			Memo:                "ZKShop purchase",
			PollInterval:        time.Millisecond,
			FinalizationTimeout: time.Second,
		},
		Wallet:    &structs.WalletConfig{},
		Shop:      &structs.ShopConfig{Owner: "central", Name: "ZKShop"},
		Cache:     &structs.CacheConfig{CartTTL: time.Hour},
		RateLimit: &structs.RateLimitConfig{GeneralLimit: 100, GeneralWindow: time.Minute, LedgerLimit: 100, LedgerWindow: time.Minute},
		Auth:      &structs.AuthConfig{AdminTokenExpiry: time.Hour},
	}
}

func newTestApp(t *testing.T, tweak ...func(cfg *structs.Config)) *testApp {
	t.Helper()
	cfg := testConfig()
	for _, fn := range tweak {
		fn(cfg)
	}

	logger := gecho.NewDefaultLogger()
	node := plttest.NewNode()
	sm := services.NewServiceManager(logger, cfg, dbtest.NewShop(t, cfg.Shop.Owner), node)
	t.Cleanup(func() { _ = sm.Close() })

	app := &testApp{t: t, handler: api.App(cfg, logger, sm), node: node}
	if cfg.Auth.AdminSecret != "" {
		token, err := lib.GenerateAdminToken("tests", cfg.Auth.AdminSecret, time.Hour)
		require.NoError(t, err)
		app.token = token
	}
	return app
}

func (a *testApp) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	for k, v := range a.headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *testApp) createProduct(body string) int64 {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/products", body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]int64](a.t, rec)["id"]
}

func TestLiveness(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestLedgerHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/health/ledger", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"decimals"`)

	app = newTestApp(t, func(cfg *structs.Config) {
		cfg.Ledger.DefaultTokenID = "NOPE"
	})
	rec = app.do(http.MethodGet, "/health/ledger", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token_id"`)
}

func TestOversizedBodyIsRejected(t *testing.T) {
	app := newTestApp(t, func(cfg *structs.Config) {
		cfg.Server.MaxBodyBytes = 64
	})

	body := fmt.Sprintf(`{"title":%q,"pricePence":100}`, string(bytes.Repeat([]byte("x"), 128)))
	rec := app.do(http.MethodPost, "/products", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"request body too large"}`, rec.Body.String())

	rec = app.do(http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductEndToEnd(t *testing.T) {
	app := newTestApp(t)
	id := app.createProduct(`{"title":"Widget","pricePence":500}`)

	rec := app.do(http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]tables.Product](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, int64(500), list[0].PricePence)
	assert.Equal(t, "central", list[0].Seller)
	assert.Contains(t, rec.Body.String(), `"price_pence":500`)

	rec = app.do(http.MethodPut, fmt.Sprintf("/products/%d", id), `{"pricePence":750}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(750), decode[tables.Product](t, rec).PricePence)

	rec = app.do(http.MethodDelete, fmt.Sprintf("/products/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":true}`, rec.Body.String())

	rec = app.do(http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "not found")

	rec = app.do(http.MethodGet, "/products", nil)
	assert.Empty(t, decode[[]tables.Product](t, rec))
}

func TestCreateProductRejectsInvalidBodies(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"negative price", `{"title":"Widget","pricePence":-1}`},
		{"missing title", `{"pricePence":100}`},
		{"missing price", `{"title":"Widget"}`},
		{"fractional price", `{"title":"Widget","pricePence":1.5}`},
		{"empty body", ``},
		{"read-only column", `{"id":1,"title":"Widget","pricePence":100}`},
		{"seller column", `{"title":"Widget","pricePence":100,"seller":"someone"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/products", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestUpdateProductWithColumnNames(t *testing.T) {
	app := newTestApp(t)
	id := app.createProduct(`{"title":"Wine","description":"Red","pricePence":1200,"requireAge18":true}`)

	rec := app.do(http.MethodPut, fmt.Sprintf("/products/%d", id), `{"price_pence":500}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[tables.Product](t, rec)
	assert.Equal(t, int64(500), got.PricePence)
	assert.Equal(t, "Wine", got.Title)
	assert.Equal(t, "Red", got.Description)
	assert.True(t, got.RequireAge18)
	assert.False(t, got.RequireUK)

	rec = app.do(http.MethodPut, "/products/999", `{"price_pence":500}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPut, "/products/abc", `{"price_pence":500}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMissingProduct(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodDelete, "/products/4242", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":false}`, rec.Body.String())
}

func TestOrders(t *testing.T) {
	app := newTestApp(t)
	buyer := plttest.Address(1).String()

	rec := app.do(http.MethodPost, "/orders", map[string]any{"productId": 7, "buyer": buyer, "amountPence": 500})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[structs.OrderStatusResponse](t, rec)
	assert.Equal(t, "pending", created.Status)

	rec = app.do(http.MethodPost, "/orders", map[string]any{"productId": 7, "amountPence": 500})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	path := fmt.Sprintf("/orders/%d/mark-paid", created.ID)
	for range 2 {
		rec = app.do(http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "paid", decode[structs.OrderStatusResponse](t, rec).Status)
	}

	rec = app.do(http.MethodPost, "/orders/999/mark-paid", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]tables.Order](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, tables.OrderStatusPaid, orders[0].Status)
}

func TestListOrdersNewestFirst(t *testing.T) {
	app := newTestApp(t)

	var ids []int64
	for _, productID := range []int{3, 1, 2} {
		rec := app.do(http.MethodPost, "/orders", map[string]any{"productId": productID, "buyer": "b", "amountPence": 100})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		ids = append(ids, decode[structs.OrderStatusResponse](t, rec).ID)
	}

	rec := app.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	orders := decode[[]tables.Order](t, rec)
	require.Len(t, orders, 3)
	for i, o := range orders {
		assert.Equal(t, ids[len(ids)-1-i], o.ID)
		assert.False(t, o.CreatedAt.IsZero())
	}
	assert.Equal(t, []int64{2, 1, 3}, []int64{orders[0].ProductID, orders[1].ProductID, orders[2].ProductID})
}

func TestConfirmOrder(t *testing.T) {
	buyer, owner := plttest.Address(1), plttest.Address(2)
	app := newTestApp(t, func(cfg *structs.Config) {
		cfg.Shop.Owner = owner.String()
	})
	paidHash := fmt.Sprintf("%064x", 1)
	rejectedHash := fmt.Sprintf("%064x", 2)
	unrelatedHash := fmt.Sprintf("%064x", 3)
	app.node.Script(paidHash,
		plttest.Pending(plt.StatusCommitted),
		plttest.Paid("EUDemo", buyer, owner, plt.TokenAmount{Value: 100, Decimals: 2}),
	)
	app.node.Script(rejectedHash, plttest.Finalized(false, "InsufficientFunds"))
	app.node.Script(unrelatedHash, plttest.Paid("EUDemo", plttest.Address(7), plttest.Address(8), plt.TokenAmount{Value: 100, Decimals: 2}))

	newOrder := func() int64 {
		rec := app.do(http.MethodPost, "/orders", map[string]any{"productId": 1, "buyer": buyer.String(), "amountPence": 100})
		require.Equal(t, http.StatusCreated, rec.Code)
		return decode[structs.OrderStatusResponse](t, rec).ID
	}

	id := newOrder()
	rec := app.do(http.MethodPost, fmt.Sprintf("/orders/%d/confirm", id), map[string]string{"txHash": paidHash})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	confirmed := decode[structs.OrderStatusResponse](t, rec)
	assert.Equal(t, "paid", confirmed.Status)
	assert.Equal(t, paidHash, confirmed.TxHash)

	id = newOrder()
	rec = app.do(http.MethodPost, fmt.Sprintf("/orders/%d/confirm", id), map[string]string{"txHash": rejectedHash})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// a finalized transfer between other accounts pays for nothing
	rec = app.do(http.MethodPost, fmt.Sprintf("/orders/%d/confirm", id), map[string]string{"txHash": unrelatedHash})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// the paid transfer already covers the first order
	rec = app.do(http.MethodPost, fmt.Sprintf("/orders/%d/confirm", id), map[string]string{"txHash": paidHash})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPost, fmt.Sprintf("/orders/%d/confirm", id), map[string]string{"txHash": "nothex"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]tables.Order](t, rec)
	require.Len(t, orders, 2)
	assert.Equal(t, id, orders[0].ID)
	assert.Equal(t, tables.OrderStatusPending, orders[0].Status)
	assert.Equal(t, tables.OrderStatusPaid, orders[1].Status)
}

func TestBalance(t *testing.T) {
	app := newTestApp(t)
	holder := plttest.Address(3)
	app.node.Balances[holder] = map[string]string{"EUDemo": "1050"}

	rec := app.do(http.MethodGet, "/plt/balance/EUDemo/"+holder.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"balance":"10.5"}`, rec.Body.String())

	rec = app.do(http.MethodGet, "/plt/balance/EUDemo/"+plttest.Address(4).String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"balance":"0"}`, rec.Body.String())

	rec = app.do(http.MethodGet, "/plt/balance/EUDemo/not-an-address", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionStatus(t *testing.T) {
	app := newTestApp(t)
	hash := fmt.Sprintf("%064x", 9)
	app.node.Script(hash, plttest.Finalized(true, ""))

	rec := app.do(http.MethodGet, "/plt/transactions/"+hash, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decode[structs.TxOutcomeView](t, rec)
	assert.Equal(t, plt.StatusFinalized, view.Status)
	assert.True(t, view.Success)

	rec = app.do(http.MethodGet, "/plt/transactions/"+fmt.Sprintf("%064x", 10), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodGet, "/plt/transactions/xyz", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func purchaseBody(amount string) string {
	body := fmt.Sprintf(`{"productId":1,"buyer":%q,"recipient":%q,"tokenId":"EUDemo"`,
		plttest.Address(1).String(), plttest.Address(2).String())
	if amount != "" {
		body += `,"amountDecimal":` + amount
	}
	return body + "}"
}

func TestPurchaseRejectsMissingOrNonNumericAmount(t *testing.T) {
	app := newTestApp(t)

	for _, amount := range []string{"", `"5"`, "true", "null", `{"v":5}`} {
		t.Run("amount "+amount, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/purchase", purchaseBody(amount))
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
	assert.Zero(t, app.node.Calls())
}

func TestPurchasePreparesTransfer(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/purchase", purchaseBody("5"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	want, err := plt.Operations{{Recipient: plttest.Address(2), Amount: plt.TokenAmount{Value: 500, Decimals: 2}}}.Hex()
	require.NoError(t, err)
	got := decode[structs.PurchaseResponse](t, rec)
	assert.Equal(t, "EUDemo", got.Payload.TokenID)
	assert.Equal(t, want, got.Payload.Operations)
	assert.Empty(t, app.node.Sent())
}

func TestPurchasePreparationFailuresAreServerErrors(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/purchase", purchaseBody("0.001"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "invalid token amount")

	body := fmt.Sprintf(`{"productId":1,"buyer":%q,"recipient":"nowhere","tokenId":"EUDemo","amountDecimal":1}`,
		plttest.Address(1).String())
	rec = app.do(http.MethodPost, "/purchase", body)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProofEndpoints(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/proof/statement/uk", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"statement":[{"type":"AttributeInSet","attributeTag":"nationality","set":["GB","uk"]}]}`,
		rec.Body.String())

	rec = app.do(http.MethodGet, "/proof/statement/age18", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"attributeTag":"dob"`)
	assert.Contains(t, rec.Body.String(), `"lower":"18000101"`)

	rec = app.do(http.MethodGet, "/proof/challenge", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Regexp(t, `^[0-9a-f]{64}$`, decode[structs.ChallengeResponse](t, rec).Challenge)

	rec = app.do(http.MethodPost, "/proof/verify", `{"statement":[],"presentation":{"proof":"x"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"verified":true}`, rec.Body.String())

	rec = app.do(http.MethodPost, "/proof/verify", `{"statement":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartEndpoints(t *testing.T) {
	app := newTestApp(t)
	wine := app.createProduct(`{"title":"Wine","pricePence":1200,"requireAge18":true}`)
	bread := app.createProduct(`{"title":"Bread","pricePence":250}`)

	rec := app.do(http.MethodPost, "/cart", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	session := decode[structs.CartSessionResponse](t, rec).Session

	base := "/cart/" + session
	for _, id := range []int64{wine, bread, wine} {
		rec = app.do(http.MethodPost, base+"/items", map[string]int64{"productId": id})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = app.do(http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[structs.CartView](t, rec)
	assert.Equal(t, session, view.Session)
	assert.Equal(t, 3, view.Count)
	assert.Equal(t, int64(2650), view.TotalPence)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, 2, view.Lines[0].Quantity)

	rec = app.do(http.MethodDelete, fmt.Sprintf("%s/items/%d", base, wine), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1450), decode[structs.CartView](t, rec).TotalPence)

	rec = app.do(http.MethodDelete, fmt.Sprintf("%s/items/%d?all=true", base, bread), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[structs.CartView](t, rec).Count)

	rec = app.do(http.MethodPost, base+"/items", map[string]int64{"productId": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodGet, "/cart/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	app := newTestApp(t, func(cfg *structs.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.GeneralLimit = 2
	})

	for range 2 {
		rec := app.do(http.MethodGet, "/products", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := app.do(http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded, try again later"}`, rec.Body.String())

	rec = app.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `zkshop_ratelimit_rejected_total{bucket="general"}`)

	// ledger calls count against their own bucket
	rec = app.do(http.MethodGet, "/plt/balance/EUDemo/"+plttest.Address(1).String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitIgnoresForwardedHeaders(t *testing.T) {
	app := newTestApp(t, func(cfg *structs.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.GeneralLimit = 2
	})

	for i := range 3 {
		app.headers = map[string]string{
			"X-Forwarded-For": fmt.Sprintf("10.0.0.%d", i),
			"X-Real-IP":       fmt.Sprintf("10.1.0.%d", i),
		}
		rec := app.do(http.MethodGet, "/products", nil)
		if i < 2 {
			require.Equal(t, http.StatusOK, rec.Code)
		} else {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		}
	}
}

func TestRateLimitBehindTrustedProxy(t *testing.T) {
	app := newTestApp(t, func(cfg *structs.Config) {
		cfg.Server.TrustProxy = true
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.GeneralLimit = 1
	})

	for _, ip := range []string{"203.0.113.1", "203.0.113.2"} {
		app.headers = map[string]string{"X-Forwarded-For": ip}
		rec := app.do(http.MethodGet, "/products", nil)
		require.Equal(t, http.StatusOK, rec.Code, ip)
	}

	rec := app.do(http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestAdminGuard(t *testing.T) {
	app := newTestApp(t, func(cfg *structs.Config) {
		cfg.Auth.AdminSecret = "s3cret"
	})
	token := app.token

	app.token = ""
	rec := app.do(http.MethodPost, "/products", `{"title":"Widget","pricePence":500}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodPost, "/orders/1/mark-paid", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	forged, err := lib.GenerateAdminToken("tests", "other", time.Hour)
	require.NoError(t, err)
	app.token = forged
	rec = app.do(http.MethodPost, "/products", `{"title":"Widget","pricePence":500}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	app.token = token
	app.createProduct(`{"title":"Widget","pricePence":500}`)
}

func TestServiceWalletTransfer(t *testing.T) {
	shop := plttest.Address(5)
	app := newTestApp(t, func(cfg *structs.Config) {
		cfg.Wallet.ExportPath = plttest.WriteWallet(t, shop)
	})

	rec := app.do(http.MethodPost, "/plt/transfer",
		fmt.Sprintf(`{"tokenId":"EUDemo","recipient":%q,"amountDecimal":2.5}`, plttest.Address(6).String()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[structs.TransferResult](t, rec)
	require.Len(t, app.node.Sent(), 1)
	assert.Equal(t, app.node.Sent()[0].Hash(), result.TxHash)
	require.NotNil(t, result.Outcome)
	assert.True(t, result.Outcome.Success)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, rec.Body.String())
}
