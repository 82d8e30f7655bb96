package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafepos/app/models"
	"github.com/shashiranjanraj/cafepos/internal/kernel"
	"github.com/shashiranjanraj/cafepos/internal/testdb"
	"github.com/shashiranjanraj/cafepos/pkg/storage"
	"github.com/shashiranjanraj/cafepos/pkg/ws"
)

type testApp struct {
	t         *testing.T
	handler   http.Handler
	db        *gorm.DB
	hub       *ws.Hub
	publicDir string
}

func newApp(t *testing.T) *testApp {
	t.Helper()

	db := testdb.Open(t)
	dir := t.TempDir()

	publicDir := filepath.Join(dir, "public")
	disk, err := storage.NewLocal(publicDir, "/public")
	require.NoError(t, err)

	webRoot := filepath.Join(dir, "web")
	require.NoError(t, os.MkdirAll(webRoot, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "login.html"), []byte("<h1>login</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "admin.html"), []byte("<h1>admin</h1>"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := ws.NewHub()
	go hub.Run(ctx)

	k := kernel.NewHTTPKernel(kernel.Deps{
		DB:        db,
		Disk:      disk,
		CacheTTL:  time.Minute,
		Hub:       hub,
		WebRoot:   webRoot,
		PublicDir: publicDir,
		Location:  time.UTC,
	})

	return &testApp{t: t, handler: k.Handler(), db: db, hub: hub, publicDir: publicDir}
}

func (a *testApp) do(method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) doJSON(method, path, body, token string) *httptest.ResponseRecorder {
	return a.do(method, path, strings.NewReader(body), token)
}

func (a *testApp) login() string {
	a.t.Helper()
	rec := a.doJSON(http.MethodPost, "/login", `{"username":"Admin","password":"1722"}`, "")
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(a.t, body.Success)
	return body.Token
}

func (a *testApp) count(table string) int64 {
	a.t.Helper()
	var n int64
	require.NoError(a.t, a.db.Table(table).Count(&n).Error)
	return n
}

func TestLoginThenListOrders(t *testing.T) {
	app := newApp(t)

	token := app.login()
	assert.True(t, strings.HasPrefix(token, "TOKEN_"))

	rec := app.do(http.MethodGet, "/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

	rec = app.do(http.MethodGet, "/orders", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestLoginIssuesFreshTokens(t *testing.T) {
	app := newApp(t)

	first := app.login()
	second := app.login()
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/orders", nil, first).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/orders", nil, second).Code)
}

func TestLoginWrongCredentials(t *testing.T) {
	app := newApp(t)
	token := app.login()

	for _, body := range []string{
		`{"username":"Admin","password":"nope"}`,
		`{"username":1722,"password":"1722"}`,
		`{"username":"Admin","password":1722}`,
		`{"username":null,"password":["1722"]}`,
		`{}`,
	} {
		rec := app.doJSON(http.MethodPost, "/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, body)
		assert.JSONEq(t, `{"success":false}`, rec.Body.String(), body)
	}

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/orders", nil, token).Code,
		"a failed login leaves the current token valid")
}

func TestProtectedRoutesRejectMissingOrUnknownToken(t *testing.T) {
	app := newApp(t)

	routes := []struct{ method, path, body string }{
		{http.MethodPost, "/categories", `{"name":"Coffee"}`},
		{http.MethodDelete, "/categories/1", ""},
		{http.MethodPost, "/products", ""},
		{http.MethodDelete, "/products/1", ""},
		{http.MethodGet, "/orders", ""},
		{http.MethodDelete, "/orders/1", ""},
		{http.MethodGet, "/daily-sales", ""},
		{http.MethodGet, "/orders/feed", ""},
	}

	for _, rt := range routes {
		for _, token := range []string{"", "TOKEN_forged"} {
			rec := app.doJSON(rt.method, rt.path, rt.body, token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s token=%q", rt.method, rt.path, token)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		}
	}

	assert.Zero(t, app.count("categories"), "rejected requests never reach a handler")
}

func TestPlaceOrderWithoutToken(t *testing.T) {
	app := newApp(t)

	rec := app.doJSON(http.MethodPost, "/orders", `{"items":[{"name":"Latte","qty":2}],"total":90}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"id":1}`, rec.Body.String())

	rec = app.do(http.MethodGet, "/orders", nil, app.login())
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []struct {
		ID        int             `json:"id"`
		Items     json.RawMessage `json:"items"`
		Total     float64         `json:"total"`
		Status    string          `json:"status"`
		CreatedAt string          `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, 1, orders[0].ID)
	assert.JSONEq(t, `[{"name":"Latte","qty":2}]`, string(orders[0].Items))
	assert.Equal(t, 90.0, orders[0].Total)
	assert.Equal(t, "pending", orders[0].Status)
	assert.NotEmpty(t, orders[0].CreatedAt)
}

func TestOrderTotalCoercion(t *testing.T) {
	app := newApp(t)

	for body, want := range map[string]float64{
		`{"items":[],"total":"45.5"}`: 45.5,
		`{"items":[],"total":"abc"}`:  0,
		`{"items":[]}`:                0,
	} {
		rec := app.doJSON(http.MethodPost, "/orders", body, "")
		require.Equal(t, http.StatusOK, rec.Code, body)

		var created struct{ ID uint }
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		var order models.Order
		require.NoError(t, app.db.First(&order, created.ID).Error)
		assert.Equal(t, want, order.Total, body)
	}
}

func TestOrderWithoutItemsListsNull(t *testing.T) {
	app := newApp(t)

	require.Equal(t, http.StatusOK, app.doJSON(http.MethodPost, "/orders", `{"total":5}`, "").Code)

	rec := app.do(http.MethodGet, "/orders", nil, app.login())
	var orders []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "null", string(orders[0]["items"]))
}

func TestOrderItemsAreKeptVerbatim(t *testing.T) {
	app := newApp(t)

	bodies := []string{
		`["Latte"]`,
		`"Latte x2"`,
		`[1,2]`,
		`[["a"]]`,
	}
	for _, items := range bodies {
		rec := app.doJSON(http.MethodPost, "/orders", `{"items":`+items+`,"total":5}`, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := app.do(http.MethodGet, "/orders", nil, app.login())
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, len(bodies))
	for i, items := range bodies {
		// newest first
		assert.JSONEq(t, items, string(orders[len(bodies)-1-i]["items"]))
	}
}

func TestMalformedBodyIs500(t *testing.T) {
	app := newApp(t)
	token := app.login()

	for _, rt := range []struct{ method, path, token string }{
		{http.MethodPost, "/orders", ""},
		{http.MethodPost, "/login", ""},
		{http.MethodPost, "/categories", token},
	} {
		rec := app.doJSON(rt.method, rt.path, `{"items":`, rt.token)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, rt.path)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rt.path)
		assert.NotEmpty(t, body["error"], rt.path)
	}

	rec := app.doJSON(http.MethodPost, "/products", `{"name":"Latte"}`, token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "a product form must be multipart")
}

func TestDeleteWithNonNumericIDIsNoOp(t *testing.T) {
	app := newApp(t)
	token := app.login()

	require.Equal(t, http.StatusOK, app.doJSON(http.MethodPost, "/categories", `{"name":"Coffee"}`, token).Code)
	require.Equal(t, http.StatusOK, app.doJSON(http.MethodPost, "/orders", `{"items":[],"total":1}`, "").Code)
	require.Equal(t, http.StatusOK, app.postProduct(token, map[string]string{"name": "Latte"}, "", nil).Code)

	for _, path := range []string{"/categories/abc", "/products/abc", "/orders/abc", "/orders/1.5"} {
		rec := app.do(http.MethodDelete, path, nil, token)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String(), path)
	}

	assert.EqualValues(t, 1, app.count("categories"))
	assert.EqualValues(t, 1, app.count("products"))
	assert.EqualValues(t, 1, app.count("orders"))
}

func TestDeleteOrder(t *testing.T) {
	app := newApp(t)
	token := app.login()

	require.Equal(t, http.StatusOK, app.doJSON(http.MethodPost, "/orders", `{"items":[],"total":1}`, "").Code)

	rec := app.do(http.MethodDelete, "/orders/1", nil, token)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Zero(t, app.count("orders"))

	rec = app.do(http.MethodDelete, "/orders/1", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code, "deleting a missing row still succeeds")
}

func (a *testApp) postProduct(token string, fields map[string]string, filename string, image []byte) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(a.t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(a.t, err)
		_, err = fw.Write(image)
		require.NoError(a.t, err)
	}
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

type listedProduct struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CategoryID   *int64  `json:"category_id"`
	Icon         string  `json:"icon"`
	HasSweetness bool    `json:"has_sweetness"`
	CategoryName *string `json:"category_name"`
}

func (a *testApp) products() []listedProduct {
	a.t.Helper()
	rec := a.do(http.MethodGet, "/products", nil, "")
	require.Equal(a.t, http.StatusOK, rec.Code)

	var list []listedProduct
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}

func TestCatalogLifecycle(t *testing.T) {
	app := newApp(t)
	token := app.login()

	rec := app.doJSON(http.MethodPost, "/categories", `{"name":"Coffee"}`, token)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	rec = app.doJSON(http.MethodPost, "/categories", `{"name":"Tea"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/categories", nil, "")
	assert.JSONEq(t, `[{"id":1,"name":"Coffee"},{"id":2,"name":"Tea"}]`, rec.Body.String())

	rec = app.postProduct(token, map[string]string{
		"name": "Latte", "price": "45", "category_id": "1", "has_sweetness": "true",
	}, "", nil)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	require.Equal(t, http.StatusOK, app.postProduct(token, map[string]string{
		"name": "Green Tea", "price": "-5", "category_id": "2", "has_sweetness": "yes",
	}, "", nil).Code)
	require.Equal(t, http.StatusOK, app.postProduct(token, map[string]string{
		"name": "Orphan", "price": "x", "category_id": "99",
	}, "", nil).Code)

	list := app.products()
	require.Len(t, list, 3)

	assert.Equal(t, "Latte", list[0].Name)
	assert.Equal(t, 45.0, list[0].Price)
	assert.Equal(t, "☕", list[0].Icon)
	assert.True(t, list[0].HasSweetness)
	require.NotNil(t, list[0].CategoryName)
	assert.Equal(t, "Coffee", *list[0].CategoryName)

	assert.Equal(t, 0.0, list[1].Price, "negative price is stored as 0")
	assert.False(t, list[1].HasSweetness)

	assert.Equal(t, 0.0, list[2].Price)
	require.NotNil(t, list[2].CategoryID)
	assert.EqualValues(t, 99, *list[2].CategoryID)
	assert.Nil(t, list[2].CategoryName, "dangling category_id lists a null name")

	rec = app.do(http.MethodDelete, "/categories/1", nil, token)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	list = app.products()
	require.Len(t, list, 2)
	assert.Equal(t, "Green Tea", list[0].Name)
	assert.Equal(t, "Orphan", list[1].Name)

	rec = app.do(http.MethodDelete, "/products/3", nil, token)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Len(t, app.products(), 1)
}

func TestProductImageUpload(t *testing.T) {
	app := newApp(t)
	token := app.login()

	rec := app.postProduct(token, map[string]string{"name": "Mocha", "price": "50"}, "mocha.png", []byte("fake-png"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	list := app.products()
	require.Len(t, list, 1)
	assert.Regexp(t, `^/public/\d+_mocha\.png$`, list[0].Icon)
	assert.FileExists(t, filepath.Join(app.publicDir, strings.TrimPrefix(list[0].Icon, "/public/")))

	rec = app.do(http.MethodGet, list[0].Icon, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fake-png", rec.Body.String())
}

func TestDailySales(t *testing.T) {
	app := newApp(t)

	for _, o := range []struct {
		at    time.Time
		total float64
	}{
		{time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC), 90},
		{time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC), 10.5},
		{time.Date(2026, 10, 4, 12, 0, 0, 0, time.UTC), 45},
	} {
		require.NoError(t, app.db.Create(&models.Order{Items: models.Items(`[]`), Total: o.total, Status: "pending", CreatedAt: o.at}).Error)
	}

	rec := app.do(http.MethodGet, "/daily-sales", nil, app.login())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"sale_date":"2026-10-04","total":45},
		{"sale_date":"2026-10-01","total":100.5}
	]`, rec.Body.String())
}

func TestPreflight(t *testing.T) {
	app := newApp(t)

	for _, path := range []string{"/orders", "/categories/1", "/does-not-exist"} {
		rec := app.do(http.MethodOptions, path, nil, "")
		assert.Equal(t, http.StatusNoContent, rec.Code, path)
		assert.Empty(t, rec.Body.String(), path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestCORSHeadersOnEveryResponse(t *testing.T) {
	app := newApp(t)

	for _, rec := range []*httptest.ResponseRecorder{
		app.do(http.MethodGet, "/categories", nil, ""),
		app.do(http.MethodGet, "/orders", nil, ""),
		app.do(http.MethodGet, "/nowhere", nil, ""),
	} {
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestUnmatchedRoutes(t *testing.T) {
	app := newApp(t)

	for _, rt := range []struct{ method, path string }{
		{http.MethodGet, "/nowhere"},
		{http.MethodPost, "/nowhere"},
		{http.MethodPut, "/orders"},
		{http.MethodPost, "/daily-sales"},
		{http.MethodGet, "/../../etc/passwd"},
		{http.MethodGet, "/public/missing.png"},
	} {
		rec := app.do(rt.method, rt.path, nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, rt.method+" "+rt.path)
		assert.Equal(t, "Not Found", rec.Body.String(), rt.method+" "+rt.path)
	}
}

func TestPages(t *testing.T) {
	app := newApp(t)

	for _, path := range []string{"/", "/login"} {
		rec := app.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "<h1>login</h1>", rec.Body.String(), path)
	}

	rec := app.do(http.MethodGet, "/admin.html", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>admin</h1>", rec.Body.String())

	rec = app.do(http.MethodHead, "/admin.html", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = app.do(http.MethodHead, "/missing.html", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newApp(t)
	app.do(http.MethodGet, "/categories", nil, "")

	rec := app.do(http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pos_http_requests_total")
}

func TestOrderFeed(t *testing.T) {
	app := newApp(t)
	token := app.login()

	srv := httptest.NewServer(app.handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/orders/feed?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return app.hub.ClientCount() == 1 }, 3*time.Second, 10*time.Millisecond)

	require.Equal(t, http.StatusOK, app.doJSON(http.MethodPost, "/orders", `{"items":[{"name":"Latte"}],"total":45}`, "").Code)

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var order map[string]interface{}
	require.NoError(t, json.Unmarshal(msg, &order))
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, 45.0, order["total"])
	assert.Equal(t, []interface{}{map[string]interface{}{"name": "Latte"}}, order["items"])
}

func TestOrderFeedRejectsBadToken(t *testing.T) {
	app := newApp(t)
	srv := httptest.NewServer(app.handler)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/orders/feed?token=TOKEN_forged", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
