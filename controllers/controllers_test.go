package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/middleware"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/query"
	"github.com/HSouheill/coffee_backend/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeLogin struct {
	resp *models.LoginResponse
	err  error
	seen []string
}

func (f *fakeLogin) Login(ctx context.Context, identifier, password string) (*models.LoginResponse, error) {
	f.seen = append(f.seen, identifier)
	return f.resp, f.err
}

type fakeAccounts struct {
	deleted []string
}

func (f *fakeAccounts) List(ctx context.Context) ([]models.Admin, error) { return nil, nil }
func (f *fakeAccounts) Create(ctx context.Context, in models.CreateAdminRequest) (*models.Admin, error) {
	return &models.Admin{Username: in.Username}, nil
}
func (f *fakeAccounts) Update(ctx context.Context, id string, in models.UpdateAdminRequest) (*models.Admin, error) {
	return nil, nil
}
func (f *fakeAccounts) Delete(ctx context.Context, actor primitive.ObjectID, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeMenu struct {
	items    []models.MenuItem
	page     *models.Pagination
	params   query.ListParams
	category string
	lang     models.Language
	bulk     *models.BulkResult
	err      error
}

func (f *fakeMenu) List(ctx context.Context, p query.ListParams) ([]models.MenuItem, *models.Pagination, error) {
	f.params = p
	return f.items, f.page, f.err
}
func (f *fakeMenu) Get(ctx context.Context, id string) (*models.MenuItem, error) { return nil, f.err }
func (f *fakeMenu) Create(ctx context.Context, in *models.MenuItemInput) (*models.MenuItem, error) {
	return nil, f.err
}
func (f *fakeMenu) Update(ctx context.Context, id string, u *models.MenuItemUpdate) (*models.MenuItem, error) {
	return nil, f.err
}
func (f *fakeMenu) Delete(ctx context.Context, id string) error { return f.err }
func (f *fakeMenu) Bulk(ctx context.Context, req models.BulkRequest) (*models.BulkResult, error) {
	return f.bulk, f.err
}
func (f *fakeMenu) Stats(ctx context.Context) (*models.MenuStats, error) { return nil, f.err }
func (f *fakeMenu) Categories(ctx context.Context) ([]string, error)   { return nil, f.err }

func (f *fakeMenu) PublicList(ctx context.Context, category string, lang models.Language) ([]models.MenuItem, error) {
	f.category, f.lang = category, lang
	return f.items, f.err
}
func (f *fakeMenu) PublicGet(ctx context.Context, id string) (*models.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.items[0], nil
}
func (f *fakeMenu) PublicCategories(ctx context.Context, lang models.Language) ([]string, error) {
	return []string{"Coffee"}, f.err
}
func (f *fakeMenu) Discounted(ctx context.Context) ([]models.MenuItem, error) { return f.items, f.err }
func (f *fakeMenu) Featured(ctx context.Context) ([]models.MenuItem, error)   { return f.items, f.err }

type fakeSearch struct {
	params query.SearchParams
}

func (f *fakeSearch) Search(ctx context.Context, p query.SearchParams) ([]models.MenuItem, error) {
	f.params = p
	return []models.MenuItem{}, nil
}
func (f *fakeSearch) Advanced(ctx context.Context, p query.SearchParams) ([]models.MenuItem, error) {
	f.params = p
	return []models.MenuItem{}, nil
}
func (f *fakeSearch) Suggestions(ctx context.Context, q string, lang models.Language) ([]string, error) {
	return []string{"Latte"}, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = services.NewCustomValidator()
	return e
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginErr   error
		wantStatus int
		wantMsg    string
	}{
		{"success", `{"username":"admin","password":"secret1"}`, nil, http.StatusOK, "Login successful"},
		{"missing password", `{"username":"admin"}`, nil, http.StatusBadRequest, "Username and password are required"},
		{"malformed body", `{"username":`, nil, http.StatusBadRequest, "Invalid request body"},
		{"bad credentials", `{"username":"admin","password":"nope"}`,
			apperrors.New(apperrors.ErrInvalidCredentials, "Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{"locked", `{"username":"admin","password":"nope"}`,
			apperrors.New(apperrors.ErrAccountLocked, "Account is temporarily locked due to too many failed attempts"),
			http.StatusLocked, "Account is temporarily locked due to too many failed attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			login := &fakeLogin{resp: &models.LoginResponse{Token: "tok"}, err: tt.loginErr}
			ac := NewAuthController(login, nil)

			e := newEcho()
			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			require.NoError(t, ac.Login(e.NewContext(req, rec)))
			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.EqualValues(t, tt.wantStatus, body["status"])
			if tt.wantStatus == http.StatusOK {
				data := body["data"].(map[string]interface{})
				assert.Equal(t, "tok", data["token"])
			}
		})
	}
}

func TestDeleteAdmin(t *testing.T) {
	accounts := &fakeAccounts{}
	ac := NewAdminController(accounts)
	e := newEcho()

	t.Run("requires a signed-in account", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
		c.SetParamNames("id")
		c.SetParamValues("abc")

		require.NoError(t, ac.DeleteAdmin(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, accounts.deleted)
	})

	t.Run("deletes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
		c.Set(middleware.ContextKeyAdmin, &models.Admin{ID: primitive.NewObjectID()})
		c.SetParamNames("id")
		c.SetParamValues("abc")

		require.NoError(t, ac.DeleteAdmin(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"abc"}, accounts.deleted)
	})
}

func TestGetMenuItemsIncludesPagination(t *testing.T) {
	menu := &fakeMenu{
		items: []models.MenuItem{{Price: 3}},
		page:  &models.Pagination{Page: 2, Limit: 5, Total: 6, Pages: 2},
	}
	mc := NewMenuController(menu)

	e := newEcho()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/menu?page=2&limit=5&sortBy=price&sortOrder=asc", nil)
	require.NoError(t, mc.GetMenuItems(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, menu.params.Page)
	assert.EqualValues(t, 5, menu.params.Limit)
	assert.Equal(t, "price", menu.params.SortBy)

	body := decode(t, rec)
	page := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 6, page["total"])
	assert.EqualValues(t, 2, page["pages"])
	assert.Len(t, body["data"], 1)
}

func TestBulkMenuItemsMessage(t *testing.T) {
	menu := &fakeMenu{bulk: &models.BulkResult{Action: "delete", DeletedCount: 2}}
	mc := NewMenuController(menu)

	e := newEcho()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/menu/bulk", strings.NewReader(`{"action":"delete","ids":["a","b"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	require.NoError(t, mc.BulkMenuItems(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Bulk delete completed successfully", body["message"])
}

func TestAdminErrorHidesInternals(t *testing.T) {
	mc := NewMenuController(&fakeMenu{err: errors.New("connection reset")})

	e := newEcho()
	rec := httptest.NewRecorder()
	require.NoError(t, mc.GetMenuStats(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", decode(t, rec)["message"])
}

func TestPublicMenuRoutes(t *testing.T) {
	menu := &fakeMenu{items: []models.MenuItem{{Name: models.LocalizedText{EN: "Latte", AR: "لاتيه"}}}}
	pc := NewPublicController(menu, nil)

	e := newEcho()
	e.GET("/api/menu/category/:category", pc.GetMenuByCategory)
	e.GET("/api/menu/:id", pc.GetMenuItem)

	t.Run("arabic category", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/menu/category/%D9%82%D9%87%D9%88%D8%A9?language=ar", nil)
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "قهوة", menu.category)
		assert.Equal(t, models.LanguageAR, menu.lang)

		var items []models.MenuItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		assert.Len(t, items, 1)
	})

	t.Run("category is decoded exactly once", func(t *testing.T) {
		cases := map[string]string{
			"/api/menu/category/100%2525":   "100%25",
			"/api/menu/category/Hot%2FCold": "Hot/Cold",
		}
		for target, want := range cases {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusOK, rec.Code, target)
			assert.Equal(t, want, menu.category, target)
		}
	})

	t.Run("missing item uses the bare error shape", func(t *testing.T) {
		menu.err = apperrors.NotFound("Menu item")
		defer func() { menu.err = nil }()

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/menu/64b7f0c2a1b2c3d4e5f60718", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Menu item not found"}`, rec.Body.String())
	})
}

func TestSearchController(t *testing.T) {
	search := &fakeSearch{}
	sc := NewSearchController(search)
	e := newEcho()

	t.Run("parses price bounds", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/search?q=coffee&minPrice=10&maxPrice=20", nil)
		require.NoError(t, sc.Search(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "coffee", search.params.Text)
		require.NotNil(t, search.params.MinPrice)
		assert.Equal(t, 10.0, *search.params.MinPrice)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("rejects a non-numeric price", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/search/advanced?minPrice=cheap", nil)
		require.NoError(t, sc.AdvancedSearch(e.NewContext(req, rec)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"minPrice must be a number"}`, rec.Body.String())
	})

	t.Run("suggestions", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/search/suggestions?q=la", nil)
		require.NoError(t, sc.Suggestions(e.NewContext(req, rec)))
		assert.JSONEq(t, `["Latte"]`, rec.Body.String())
	})
}

func TestHealth(t *testing.T) {
	e := newEcho()

	rec := httptest.NewRecorder()
	hc := NewHealthController(func(ctx context.Context) error { return nil })
	require.NoError(t, hc.Health(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/health", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", decode(t, rec)["status"])

	core, logs := observer.New(zap.ErrorLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	rec = httptest.NewRecorder()
	hc = NewHealthController(func(ctx context.Context) error { return errors.New("down") })
	require.NoError(t, hc.Health(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/health", nil), rec)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "DEGRADED", decode(t, rec)["status"])
	assert.Equal(t, 1, logs.FilterMessage("Health check ping failed").Len())
}
