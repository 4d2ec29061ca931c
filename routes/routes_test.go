package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"onlinestore/db"
	"onlinestore/models"
	"onlinestore/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	app := fiber.New()
	SetupRoutes(app, store.New(gdb), t.TempDir())
	return app, gdb
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func seedUser(t *testing.T, gdb *gorm.DB, id uint, login, role string) {
	t.Helper()
	user := models.User{ID: id, Login: login, Password: "secret", Role: role}
	require.NoError(t, gdb.Create(&user).Error)
}

func seedProduct(t *testing.T, gdb *gorm.DB, id uint, name, price string, categoryIDs ...uint) {
	t.Helper()
	product := models.Product{ID: id, Name: name, Price: decimal.RequireFromString(price)}
	require.NoError(t, gdb.Create(&product).Error)
	for _, categoryID := range categoryIDs {
		link := models.ProductCategory{ProductID: id, CategoryID: categoryID}
		require.NoError(t, gdb.Create(&link).Error)
	}
}

func seedCategory(t *testing.T, gdb *gorm.DB, id uint, name string) {
	t.Helper()
	category := models.Category{ID: id, Name: name}
	require.NoError(t, gdb.Create(&category).Error)
}

func TestLogin(t *testing.T) {
	app, gdb := newTestApp(t)
	seedUser(t, gdb, 1, "admin", models.RoleAdmin)

	testCases := []struct {
		name         string
		body         string
		expectedCode int
	}{
		{"Success", `{"login":"admin","password":"secret"}`, http.StatusOK},
		{"Wrong password", `{"login":"admin","password":"nope"}`, http.StatusUnauthorized},
		{"Unknown user", `{"login":"ghost","password":"secret"}`, http.StatusUnauthorized},
		{"Missing password", `{"login":"admin"}`, http.StatusBadRequest},
		{"Invalid JSON", `{invalid`, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, "POST", "/login", tc.body)
			assert.Equal(t, tc.expectedCode, resp.StatusCode)

			if tc.expectedCode == http.StatusOK {
				var body map[string]any
				decodeBody(t, resp, &body)
				assert.EqualValues(t, 1, body["user_id"])
				assert.Equal(t, models.RoleAdmin, body["user_role"])
			}
		})
	}
}

func TestGetCategories(t *testing.T) {
	app, gdb := newTestApp(t)
	seedCategory(t, gdb, 1, "Lighting")
	seedProduct(t, gdb, 10, "Lamp", "19.99", 1)

	resp := doRequest(t, app, "GET", "/categories", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []map[string]any
	decodeBody(t, resp, &body)
	require.Len(t, body, 1)
	assert.EqualValues(t, 1, body[0]["category_id"])
	assert.Equal(t, "Lighting", body[0]["category_name"])
	assert.EqualValues(t, 1, body[0]["number_of_products"])
}

func TestCreateCategory(t *testing.T) {
	app, gdb := newTestApp(t)

	resp := doRequest(t, app, "POST", "/categories", `{"category_name":"Lighting"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 1, mustCount(t, gdb, &models.Category{}))

	resp = doRequest(t, app, "POST", "/categories", `{"category_name":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteCategory(t *testing.T) {
	app, gdb := newTestApp(t)
	seedCategory(t, gdb, 5, "Doomed")
	seedCategory(t, gdb, 6, "Safe")
	seedProduct(t, gdb, 10, "exclusive", "10.00", 5)
	seedProduct(t, gdb, 11, "shared", "20.00", 5, 6)

	resp := doRequest(t, app, "DELETE", "/categories/5", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.EqualValues(t, 0, mustCount(t, gdb, &models.Category{}, "id = ?", 5))
	assert.EqualValues(t, 0, mustCount(t, gdb, &models.Product{}, "id = ?", 10))
	assert.EqualValues(t, 1, mustCount(t, gdb, &models.Product{}, "id = ?", 11))

	resp = doRequest(t, app, "DELETE", "/categories/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetProducts(t *testing.T) {
	app, gdb := newTestApp(t)
	seedCategory(t, gdb, 1, "Lighting")
	seedProduct(t, gdb, 10, "Lamp", "19.99", 1)

	resp := doRequest(t, app, "GET", "/products?category_id=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []map[string]any
	decodeBody(t, resp, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "Lamp", body[0]["product_name"])
	assert.EqualValues(t, 19.99, body[0]["product_price"])

	resp = doRequest(t, app, "GET", "/products", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateProduct(t *testing.T) {
	app, gdb := newTestApp(t)
	seedCategory(t, gdb, 1, "Lighting")

	resp := doRequest(t, app, "POST", "/products",
		`{"product_name":"Lamp","product_price":19.99,"product_description":"A lamp","category_ids":[1]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "Lamp", body["product_name"])
	assert.EqualValues(t, 1, mustCount(t, gdb, &models.ProductCategory{}))

	resp = doRequest(t, app, "POST", "/products", `{"product_price":19.99}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/products", `{"product_name":"Free","product_price":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteProduct(t *testing.T) {
	app, gdb := newTestApp(t)
	seedProduct(t, gdb, 10, "Lamp", "19.99")

	resp := doRequest(t, app, "DELETE", "/products/10", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.EqualValues(t, 0, mustCount(t, gdb, &models.Product{}))

	resp = doRequest(t, app, "DELETE", "/products/10", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateProductField(t *testing.T) {
	app, gdb := newTestApp(t)
	seedProduct(t, gdb, 10, "Lamp", "19.99")

	resp := doRequest(t, app, "PATCH", "/products/10", `{"product_name":"Floor Lamp"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var product models.Product
	require.NoError(t, gdb.First(&product, 10).Error)
	assert.Equal(t, "Floor Lamp", product.Name)

	resp = doRequest(t, app, "PATCH", "/products/10", `{"product_name":"A","product_price":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "PATCH", "/products/10", `{"id":99}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChangeProductCategoryLink(t *testing.T) {
	app, gdb := newTestApp(t)
	seedCategory(t, gdb, 1, "Lighting")
	seedCategory(t, gdb, 2, "Furniture")
	seedProduct(t, gdb, 10, "Lamp", "19.99", 1)

	resp := doRequest(t, app, "PATCH", "/products/10/category_link",
		`{"old_category_id":1,"new_category_id":2}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, mustCount(t, gdb, &models.ProductCategory{}, "category_id = ?", 2))

	resp = doRequest(t, app, "PATCH", "/products/10/category_link", `{"old_category_id":2}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "PATCH", "/products/10/category_link",
		`{"old_category_id":2,"new_category_id":99}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func mustCount(t *testing.T, gdb *gorm.DB, model any, where ...any) int64 {
	t.Helper()
	var count int64
	tx := gdb.Model(model)
	if len(where) > 0 {
		tx = tx.Where(where[0], where[1:]...)
	}
	require.NoError(t, tx.Count(&count).Error)
	return count
}
