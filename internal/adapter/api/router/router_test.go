package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"rewear/internal/adapter/api"
	"rewear/internal/adapter/api/handler"
	"rewear/internal/adapter/api/middleware"
	"rewear/internal/adapter/repository"
	"rewear/internal/infrastructure/auth"
	"rewear/internal/infrastructure/database"
	"rewear/internal/infrastructure/events"
	"rewear/internal/infrastructure/metrics"
	"rewear/internal/infrastructure/security"
	"rewear/internal/usecase"
	"rewear/pkg/response"
)

const adminEmail = "admin@rewear.io"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Warnings []string `json:"warnings"`
}

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewGormUserRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	swapRepo := repository.NewGormSwapRequestRepository(db)

	bus := events.NewBus()
	m := metrics.New("rewear-test")
	require.NoError(t, m.Subscribe(bus))

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	productUseCase := usecase.NewProductUseCase(productRepo, userRepo, swapRepo, bus)
	userUseCase := usecase.NewUserUseCase(userRepo, productRepo, swapRepo, productUseCase)
	swapUseCase := usecase.NewSwapUseCase(swapRepo, productRepo, userRepo, userUseCase, bus)
	authUseCase := usecase.NewAuthUseCase(userRepo, security.NewPasswordHasher(bcrypt.MinCost), tokens, []string{adminEmail})

	handler.Setup(
		authUseCase,
		userUseCase,
		productUseCase,
		swapUseCase,
		usecase.NewQueryUseCase(productRepo),
		usecase.NewAdminUseCase(userRepo, productRepo, swapRepo),
	)
	handler.SetupHealthHandler(func(ctx context.Context) error { return sqlDB.PingContext(ctx) })

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.HTTPErrorHandler
	Setup(e, middleware.NewAuthMiddleware(tokens), middleware.NewAdminMiddleware(), nil, m.Handler())

	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path string, body interface{}, token string) (int, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func decode(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func (s *testServer) register(name, email string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"address":  "Ahmedabad",
		"email":    email,
		"password": "secret-pass",
	}, "")
	require.Equal(s.t, http.StatusCreated, code)

	var data struct {
		UserID string `json:"userId"`
	}
	decode(s.t, env, &data)
	require.NotEmpty(s.t, data.UserID)
	return data.UserID
}

func (s *testServer) login(email string) (token string, adminToken *string) {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": "secret-pass",
	}, "")
	require.Equal(s.t, http.StatusOK, code)

	var data struct {
		Token            string  `json:"token"`
		AdminAccessToken *string `json:"adminAccessToken"`
	}
	decode(s.t, env, &data)
	return data.Token, data.AdminAccessToken
}

type productBody struct {
	ID       string `json:"id"`
	Name     string `json:"productName"`
	Status   string `json:"status"`
	Likes    int64  `json:"likes"`
	Category string `json:"category"`
}

func (s *testServer) addProduct(owner, name, category, description string) productBody {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/products/add", map[string]interface{}{
		"productName": name,
		"category":    category,
		"description": description,
		"heroImage":   "http://img/hero.png",
		"images":      []string{"http://img/1.png"},
		"address":     "Navrangpura, Ahmedabad",
		"user":        owner,
	}, "")
	require.Equal(s.t, http.StatusCreated, code, env.Error)

	var p productBody
	decode(s.t, env, &p)
	return p
}

func (s *testServer) getProduct(id string) productBody {
	s.t.Helper()
	code, env := s.do(http.MethodGet, "/api/products/"+id, nil, "")
	require.Equal(s.t, http.StatusOK, code)

	var p productBody
	decode(s.t, env, &p)
	return p
}

func (s *testServer) createSwap(productID, requester string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/swaps/create", map[string]string{
		"product":     productID,
		"requestedBy": requester,
		"mode":        "Swap",
		"swapImage":   "http://img",
	}, "")
	require.Equal(s.t, http.StatusCreated, code)

	var data struct {
		RequestID string `json:"requestId"`
	}
	decode(s.t, env, &data)
	require.NotEmpty(s.t, data.RequestID)
	return data.RequestID
}

func (s *testServer) like(id string, times int) {
	s.t.Helper()
	for i := 0; i < times; i++ {
		code, _ := s.do(http.MethodPost, "/api/products/like/"+id, nil, "")
		require.Equal(s.t, http.StatusOK, code)
	}
}

func TestRegisterRejectsDuplicateEmailInAnyCase(t *testing.T) {
	s := newTestServer(t)
	s.register("A", "a@x.com")

	code, env := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Other A",
		"email":    "A@X.com",
		"password": "secret-pass",
	}, "")

	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "Email already registered", env.Error.Message)
}

func TestLoginAndDetails(t *testing.T) {
	s := newTestServer(t)
	userID := s.register("A", "a@x.com")

	token, adminToken := s.login("a@x.com")
	assert.NotEmpty(t, token)
	assert.Nil(t, adminToken)

	code, env := s.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	code, env = s.do(http.MethodPost, "/api/auth/details", map[string]string{"userId": userID}, "")
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), "password")

	code, _ = s.do(http.MethodPost, "/api/auth/details", map[string]string{"userId": "missing"}, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodGet, "/api/users/profile", nil, token)
	require.Equal(t, http.StatusOK, code)
	var profile struct {
		ID string `json:"id"`
	}
	decode(t, env, &profile)
	assert.Equal(t, userID, profile.ID)
}

func TestSwapLifecycle(t *testing.T) {
	s := newTestServer(t)
	ownerID := s.register("Owner A", "a@x.com")
	requesterID := s.register("Buyer B", "b@x.com")

	product := s.addProduct(ownerID, "Running Shoes", "Footwear", "Lightly used")
	assert.Equal(t, "Available", product.Status)
	assert.Equal(t, int64(0), product.Likes)

	code, env := s.do(http.MethodPost, "/api/swaps/create", map[string]string{
		"product":     product.ID,
		"requestedBy": requesterID,
		"mode":        "Swap",
	}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Swap image is required for Swap mode", env.Error.Message)

	requestID := s.createSwap(product.ID, requesterID)

	updated := s.getProduct(product.ID)
	assert.Equal(t, "In Negotiation", updated.Status)
	assert.Equal(t, int64(1), updated.Likes)

	code, env = s.do(http.MethodGet, "/api/swaps/product/"+product.ID, nil, "")
	require.Equal(t, http.StatusOK, code)
	var rows []struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		Requester struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"requester"`
	}
	decode(t, env, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, requestID, rows[0].ID)
	assert.Equal(t, "Pending", rows[0].Status)
	assert.Equal(t, "Buyer B", rows[0].Requester.Name)
	assert.Equal(t, "b@x.com", rows[0].Requester.Email)

	code, _ = s.do(http.MethodPatch, "/api/swaps/update-status/"+requestID, map[string]string{"status": "Accepted"}, "")
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPatch, "/api/swaps/update-status/"+requestID, map[string]string{"status": "Completed"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, env.Warnings)
	assert.Equal(t, "Sold", s.getProduct(product.ID).Status)

	for _, id := range []string{ownerID, requesterID} {
		code, env = s.do(http.MethodPost, "/api/auth/details", map[string]string{"userId": id}, "")
		require.Equal(t, http.StatusOK, code)
		var user struct {
			Points          int64 `json:"points"`
			SuccessfulSwaps int64 `json:"successfulSwaps"`
		}
		decode(t, env, &user)
		assert.Equal(t, int64(10), user.Points)
		assert.Equal(t, int64(1), user.SuccessfulSwaps)
	}

	code, env = s.do(http.MethodPatch, "/api/swaps/update-status/"+requestID, map[string]string{"status": "Pending"}, "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)

	code, env = s.do(http.MethodPost, "/api/swaps/create", map[string]string{
		"product":     product.ID,
		"requestedBy": requesterID,
		"mode":        "Coins",
	}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Product is no longer available", env.Error.Message)

	code, env = s.do(http.MethodGet, "/api/swaps/user/"+requesterID, nil, "")
	require.Equal(t, http.StatusOK, code)
	var mine []struct {
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
	}
	decode(t, env, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, product.ID, mine[0].Product.ID)
}

func TestRejectedLeavesProductStatus(t *testing.T) {
	s := newTestServer(t)
	ownerID := s.register("Owner A", "a@x.com")
	requesterID := s.register("Buyer B", "b@x.com")
	product := s.addProduct(ownerID, "Kurta Set", "Ethnic Wear", "Cotton")
	requestID := s.createSwap(product.ID, requesterID)

	code, _ := s.do(http.MethodPatch, "/api/swaps/update-status/"+requestID, map[string]string{"status": "Rejected"}, "")
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, "In Negotiation", s.getProduct(product.ID).Status)

	code, env := s.do(http.MethodPatch, "/api/swaps/update-status/"+requestID, map[string]string{"status": "Bogus"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, _ = s.do(http.MethodPatch, "/api/swaps/update-status/missing", map[string]string{"status": "Accepted"}, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSearchAndTopLiked(t *testing.T) {
	s := newTestServer(t)
	ownerID := s.register("Owner A", "a@x.com")

	low := s.addProduct(ownerID, "Blue Kurta", "Ethnic Wear", "Cotton")
	high := s.addProduct(ownerID, "Festive wear", "Men's Ethnic Wear", "A silk KURTA for weddings")
	s.addProduct(ownerID, "Denim Jacket", "Western Wear", "Faded")
	sold := s.addProduct(ownerID, "Old Kurta", "Ethnic Wear", "Worn")

	s.like(low.ID, 3)
	s.like(high.ID, 10)
	s.like(sold.ID, 1)
	code, _ := s.do(http.MethodPatch, "/api/products/status/"+sold.ID, map[string]string{"status": "Sold"}, "")
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(http.MethodGet, "/api/products/search?name=kurta", nil, "")
	require.Equal(t, http.StatusOK, code)
	var found []productBody
	decode(t, env, &found)
	require.Len(t, found, 2)
	assert.Equal(t, high.ID, found[0].ID)
	assert.Equal(t, low.ID, found[1].ID)

	code, env = s.do(http.MethodGet, "/api/products/top-liked", nil, "")
	require.Equal(t, http.StatusOK, code)
	var top []productBody
	decode(t, env, &top)
	require.Len(t, top, 4)
	assert.Equal(t, []int64{10, 3, 1, 0}, []int64{top[0].Likes, top[1].Likes, top[2].Likes, top[3].Likes})

	code, env = s.do(http.MethodGet, "/api/products/top-liked?limit=2", nil, "")
	require.Equal(t, http.StatusOK, code)
	decode(t, env, &top)
	assert.Len(t, top, 2)

	code, env = s.do(http.MethodPost, "/api/assistant/search", map[string]string{"message": "kurta"}, "")
	require.Equal(t, http.StatusOK, code)
	var reply struct {
		Reply    string        `json:"reply"`
		Products []productBody `json:"products"`
	}
	decode(t, env, &reply)
	assert.Equal(t, "Found 2 amazing products for you! Here are the top recommendations:", reply.Reply)

	code, env = s.do(http.MethodGet, "/api/products/nearby/navrangpura", nil, "")
	require.Equal(t, http.StatusOK, code)
	var nearby []productBody
	decode(t, env, &nearby)
	assert.Len(t, nearby, 4)
}

func TestDeleteProductTwice(t *testing.T) {
	s := newTestServer(t)
	ownerID := s.register("Owner A", "a@x.com")
	requesterID := s.register("Buyer B", "b@x.com")
	product := s.addProduct(ownerID, "Track Pants", "Sportswear", "Stretchy")
	s.createSwap(product.ID, requesterID)

	code, _ := s.do(http.MethodPost, "/api/users/"+requesterID+"/likes/"+product.ID, nil, "")
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodDelete, "/api/products/delete/"+product.ID, nil, "")
	assert.Equal(t, http.StatusOK, code)

	code, env := s.do(http.MethodDelete, "/api/products/delete/"+product.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	code, env = s.do(http.MethodGet, "/api/swaps/user/"+requesterID, nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(env.Data))

	code, env = s.do(http.MethodPost, "/api/auth/details", map[string]string{"userId": requesterID}, "")
	require.Equal(t, http.StatusOK, code)
	var user struct {
		LikedItems []string `json:"likedItems"`
	}
	decode(t, env, &user)
	assert.Empty(t, user.LikedItems)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	s.register("Admin", adminEmail)
	userID := s.register("Owner A", "a@x.com")
	s.addProduct(userID, "Blazer", "Office Wear", "Navy")

	userToken, _ := s.login("a@x.com")
	_, adminToken := s.login(adminEmail)
	require.NotNil(t, adminToken)

	code, _ := s.do(http.MethodGet, "/api/admin/stats", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := s.do(http.MethodGet, "/api/admin/stats", nil, userToken)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	code, env = s.do(http.MethodGet, "/api/admin/stats", nil, *adminToken)
	require.Equal(t, http.StatusOK, code)
	var stats usecase.Stats
	decode(t, env, &stats)
	assert.Equal(t, usecase.Stats{Users: 2, Products: 1, SwapRequests: 0}, stats)

	code, env = s.do(http.MethodGet, "/api/admin/users?page=1&limit=1", nil, *adminToken)
	require.Equal(t, http.StatusOK, code)
	var page response.PaginatedResponse
	decode(t, env, &page)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages)

	code, _ = s.do(http.MethodDelete, "/api/admin/user/"+userID, nil, *adminToken)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/admin/stats", nil, *adminToken)
	require.Equal(t, http.StatusOK, code)
	decode(t, env, &stats)
	assert.Equal(t, usecase.Stats{Users: 1, Products: 0, SwapRequests: 0}, stats)
}

func TestUserLedgerRoutes(t *testing.T) {
	s := newTestServer(t)
	userID := s.register("A", "a@x.com")

	code, env := s.do(http.MethodPatch, "/api/users/"+userID+"/profile", map[string]string{"bio": strings.Repeat("x", 501)}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = s.do(http.MethodPatch, "/api/users/"+userID+"/profile", map[string]string{"bio": "Thrift lover"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Thrift lover")

	code, env = s.do(http.MethodPost, "/api/users/"+userID+"/earnings", map[string]float64{"amount": 12.5}, "")
	require.Equal(t, http.StatusOK, code)
	var user struct {
		Earnings float64 `json:"earnings"`
		Spent    float64 `json:"spent"`
	}
	decode(t, env, &user)
	assert.Equal(t, 12.5, user.Earnings)

	code, _ = s.do(http.MethodPost, "/api/users/"+userID+"/spent", map[string]float64{"amount": -1}, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestOpsEndpoints(t *testing.T) {
	s := newTestServer(t)
	ownerID := s.register("Owner A", "a@x.com")
	requesterID := s.register("Buyer B", "b@x.com")
	product := s.addProduct(ownerID, "Saree", "Ethnic Wear", "Silk")
	s.createSwap(product.ID, requesterID)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rewear_swap_requests_created_total 1")
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/nothing-here", nil, "")

	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
