package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/auth"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/port/http/handler"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	mux     *chi.Mux
	auth    *MockAuthService
	orders  *MockOrderService
	catalog *MockCatalogService
	tokens  *auth.JWTService
	users   userRoles
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.NewNop()
	s := &testServer{
		auth:    new(MockAuthService),
		orders:  new(MockOrderService),
		catalog: new(MockCatalogService),
		tokens:  auth.NewJWTService("test-secret", time.Hour),
		users:   userRoles{},
	}
	s.mux = New(Deps{
		Auth:           handler.NewAuthHandler(s.auth, log),
		Orders:         handler.NewOrderHandler(s.orders, log),
		Catalog:        handler.NewCatalogHandler(s.catalog, log),
		Tokens:         s.tokens,
		Users:          s.users,
		Metrics:        metrics.New("test"),
		Log:            log,
		RequestTimeout: 5 * time.Second,
	})
	return s
}

func (s *testServer) token(t *testing.T, userID string, role entity.Role) string {
	t.Helper()
	token, err := s.tokens.Issue(userID, role)
	require.NoError(t, err)
	s.users[userID] = role
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func validRegistration() map[string]string {
	return map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret1",
		"phone":    "555-0100",
		"address":  "1 Main St",
		"answer":   "blue",
	}
}

func TestRegister_RequiredFieldsInOrder(t *testing.T) {
	cases := []struct {
		drop    string
		message string
	}{
		{"name", "Name is Required"},
		{"email", "Email is Required"},
		{"password", "Password is Required"},
		{"phone", "Phone no is Required"},
		{"address", "Address is Required"},
		{"answer", "Answer is Required"},
	}
	for _, tc := range cases {
		t.Run(tc.drop, func(t *testing.T) {
			s := newTestServer(t)
			body := validRegistration()
			delete(body, tc.drop)

			rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, jsonBody(t, rec)["message"])
			s.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_EmptyBodyReportsName(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is Required", jsonBody(t, rec)["message"])
}

func TestRegister_InvalidEmail(t *testing.T) {
	s := newTestServer(t)
	body := validRegistration()
	body["email"] = "not-an-email"

	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid Email", jsonBody(t, rec)["message"])
	s.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	s := newTestServer(t)
	s.auth.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrAlreadyRegistered).Once()

	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", validRegistration())

	assert.Equal(t, http.StatusOK, rec.Code)
	body := jsonBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Already Register please login", body["message"])
}

func TestRegister_Success(t *testing.T) {
	s := newTestServer(t)
	s.auth.On("Register", mock.Anything, service.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "secret1", Phone: "555-0100", Address: "1 Main St", Answer: "blue",
	}).Return(&entity.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Password: "hash", Answer: "blue"}, nil).Once()

	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", validRegistration())

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := jsonBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User Register Successfully", body["message"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "u1", user["_id"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "answer")
	s.auth.AssertExpectations(t)
}

func TestRegister_StoreError(t *testing.T) {
	s := newTestServer(t)
	s.auth.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("mongo down")).Once()

	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", validRegistration())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Errro in Registeration", jsonBody(t, rec)["message"])
}

func TestLogin(t *testing.T) {
	cases := []struct {
		name    string
		body    map[string]string
		err     error
		code    int
		message string
	}{
		{"missing password", map[string]string{"email": "a@b.co"}, nil, http.StatusNotFound, "Invalid email or password"},
		{"unknown email", map[string]string{"email": "a@b.co", "password": "x"}, service.ErrEmailNotRegistered, http.StatusNotFound, "Email is not registerd"},
		{"wrong password", map[string]string{"email": "a@b.co", "password": "x"}, service.ErrInvalidPassword, http.StatusBadRequest, "Invalid Password"},
		{"store failure", map[string]string{"email": "a@b.co", "password": "x"}, errors.New("boom"), http.StatusInternalServerError, "Error in login"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)
			if tc.err != nil {
				s.auth.On("Login", mock.Anything, tc.body["email"], tc.body["password"]).Return(nil, tc.err).Once()
			}

			rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", tc.body)

			assert.Equal(t, tc.code, rec.Code)
			body := jsonBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestLogin_Success(t *testing.T) {
	s := newTestServer(t)
	profile := entity.UserProfile{ID: "u1", Name: "Alice", Email: "a@b.co", Phone: "1", Address: "x", Role: entity.RoleAdmin}
	s.auth.On("Login", mock.Anything, "a@b.co", "secret1").Return(&service.LoginResult{Token: "tok", User: profile}, nil).Once()

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "a@b.co", "password": "secret1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := jsonBody(t, rec)
	assert.Equal(t, "login successfully", body["message"])
	assert.Equal(t, "tok", body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, float64(1), user["role"])
	assert.NotContains(t, user, "password")
}

func TestForgotPassword(t *testing.T) {
	t.Run("required fields", func(t *testing.T) {
		s := newTestServer(t)
		for _, tc := range []struct {
			body    map[string]string
			message string
		}{
			{map[string]string{}, "Email is required"},
			{map[string]string{"email": "a@b.co"}, "answer is required"},
			{map[string]string{"email": "a@b.co", "answer": "blue"}, "New Password is required"},
		} {
			rec := s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, jsonBody(t, rec)["message"])
		}
	})

	t.Run("wrong answer", func(t *testing.T) {
		s := newTestServer(t)
		s.auth.On("ForgotPassword", mock.Anything, "a@b.co", "red", "newpass").Return(service.ErrWrongEmailOrAnswer).Once()

		rec := s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{"email": "a@b.co", "answer": "red", "newPassword": "newpass"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Wrong Email Or Answer", jsonBody(t, rec)["message"])
	})

	t.Run("success", func(t *testing.T) {
		s := newTestServer(t)
		s.auth.On("ForgotPassword", mock.Anything, "a@b.co", "blue", "newpass").Return(nil).Once()

		rec := s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{"email": "a@b.co", "answer": "blue", "newPassword": "newpass"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Password Reset Successfully", jsonBody(t, rec)["message"])
	})
}

func TestPasswordOverBcryptLimit(t *testing.T) {
	long := strings.Repeat("p", auth.MaxPasswordBytes+1)

	t.Run("register", func(t *testing.T) {
		s := newTestServer(t)
		body := validRegistration()
		body["password"] = long
		s.auth.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterInput) bool { return in.Password == long })).
			Return(nil, service.ErrPasswordTooLong).Once()

		rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Password must be at most 72 bytes long", jsonBody(t, rec)["message"])
	})

	t.Run("forgot password", func(t *testing.T) {
		s := newTestServer(t)
		s.auth.On("ForgotPassword", mock.Anything, "a@b.co", "blue", long).Return(service.ErrPasswordTooLong).Once()

		rec := s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{"email": "a@b.co", "answer": "blue", "newPassword": long})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Password must be at most 72 bytes long", jsonBody(t, rec)["message"])
	})

	t.Run("profile", func(t *testing.T) {
		s := newTestServer(t)
		s.auth.On("UpdateProfile", mock.Anything, "u1", service.ProfileInput{Password: long}).Return(nil, service.ErrPasswordTooLong).Once()

		rec := s.do(t, http.MethodPut, "/api/v1/auth/profile", s.token(t, "u1", entity.RoleUser), map[string]string{"password": long})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Password must be at most 72 bytes long", jsonBody(t, rec)["error"])
	})
}

func TestRegister_BlankFieldsAreMissing(t *testing.T) {
	s := newTestServer(t)
	body := validRegistration()
	body["name"] = "   "

	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is Required", jsonBody(t, rec)["message"])
	s.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_TrimsFields(t *testing.T) {
	s := newTestServer(t)
	body := validRegistration()
	body["name"] = "  Alice "
	body["email"] = " alice@example.com"
	s.auth.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterInput) bool {
		return in.Name == "Alice" && in.Email == "alice@example.com" && in.Password == "secret1"
	})).Return(&entity.User{ID: "u1", Name: "Alice"}, nil).Once()

	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	s.auth.AssertExpectations(t)
}

func TestTestRoute_RequiresAdmin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/auth/test", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/auth/test", s.token(t, "u1", entity.RoleUser), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UnAuthorized Access", jsonBody(t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/api/v1/auth/test", "Bearer "+s.token(t, "a1", entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Protected Routes", rec.Body.String())
}

func TestAdminRoutes_DemotedAdminIsRefused(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "a1", entity.RoleAdmin)
	s.users["a1"] = entity.RoleUser

	rec := s.do(t, http.MethodGet, "/api/v1/auth/all-orders", token, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UnAuthorized Access", jsonBody(t, rec)["message"])
	s.orders.AssertNotCalled(t, "ListAllOrders", mock.Anything)
}

func TestAuthChecks(t *testing.T) {
	s := newTestServer(t)
	userToken := s.token(t, "u1", entity.RoleUser)

	rec := s.do(t, http.MethodGet, "/api/v1/auth/user-auth", userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, jsonBody(t, rec)["ok"])

	rec = s.do(t, http.MethodGet, "/api/v1/auth/admin-auth", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	t.Run("success uses caller from token", func(t *testing.T) {
		s := newTestServer(t)
		s.auth.On("UpdateProfile", mock.Anything, "u1", service.ProfileInput{Name: "Alicia", Phone: "555"}).
			Return(&entity.User{ID: "u1", Name: "Alicia", Phone: "555", Password: "hash"}, nil).Once()

		rec := s.do(t, http.MethodPut, "/api/v1/auth/profile", s.token(t, "u1", entity.RoleUser), map[string]string{"name": "Alicia", "phone": "555"})

		assert.Equal(t, http.StatusOK, rec.Code)
		body := jsonBody(t, rec)
		assert.Equal(t, "Profile Updated SUccessfully", body["message"])
		assert.Equal(t, "Alicia", body["updatedUser"].(map[string]interface{})["name"])
		assert.NotContains(t, body["updatedUser"], "password")
	})

	t.Run("short password", func(t *testing.T) {
		s := newTestServer(t)
		s.auth.On("UpdateProfile", mock.Anything, "u1", service.ProfileInput{Password: "abc"}).Return(nil, service.ErrPasswordTooShort).Once()

		rec := s.do(t, http.MethodPut, "/api/v1/auth/profile", s.token(t, "u1", entity.RoleUser), map[string]string{"password": "abc"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Passsword is required and 6 character long", jsonBody(t, rec)["error"])
	})

	t.Run("user not found", func(t *testing.T) {
		s := newTestServer(t)
		s.auth.On("UpdateProfile", mock.Anything, "gone", mock.Anything).Return(nil, service.ErrUserNotFound).Once()

		rec := s.do(t, http.MethodPut, "/api/v1/auth/profile", s.token(t, "gone", entity.RoleUser), map[string]string{"name": "x"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User Not Found", jsonBody(t, rec)["message"])
	})

	t.Run("store failure", func(t *testing.T) {
		s := newTestServer(t)
		s.auth.On("UpdateProfile", mock.Anything, "u1", mock.Anything).Return(nil, errors.New("write conflict")).Once()

		rec := s.do(t, http.MethodPut, "/api/v1/auth/profile", s.token(t, "u1", entity.RoleUser), map[string]string{"name": "x"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Error WHile Update profile", jsonBody(t, rec)["message"])
	})
}

func TestOrders(t *testing.T) {
	t.Run("my orders returns bare array", func(t *testing.T) {
		s := newTestServer(t)
		s.orders.On("ListBuyerOrders", mock.Anything, "u1").
			Return([]entity.OrderDetails{{ID: "o1", Buyer: entity.Buyer{ID: "u1", Name: "Alice"}, Status: entity.StatusNotProcess}}, nil).Once()

		rec := s.do(t, http.MethodGet, "/api/v1/auth/orders", s.token(t, "u1", entity.RoleUser), nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var orders []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		require.Len(t, orders, 1)
		assert.Equal(t, "Not Process", orders[0]["status"])
	})

	t.Run("my orders empty is []", func(t *testing.T) {
		s := newTestServer(t)
		s.orders.On("ListBuyerOrders", mock.Anything, "u1").Return(nil, nil).Once()

		rec := s.do(t, http.MethodGet, "/api/v1/auth/orders", s.token(t, "u1", entity.RoleUser), nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("all orders requires admin", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(t, http.MethodGet, "/api/v1/auth/all-orders", s.token(t, "u1", entity.RoleUser), nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		s.orders.AssertNotCalled(t, "ListAllOrders", mock.Anything)
	})

	t.Run("all orders store failure", func(t *testing.T) {
		s := newTestServer(t)
		s.orders.On("ListAllOrders", mock.Anything).Return(nil, errors.New("cursor")).Once()

		rec := s.do(t, http.MethodGet, "/api/v1/auth/all-orders", s.token(t, "a1", entity.RoleAdmin), nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Error WHile Geting Orders", jsonBody(t, rec)["message"])
	})
}

func TestOrderStatus(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid status", service.ErrInvalidOrderStatus, http.StatusBadRequest, "Invalid Order Status"},
		{"unknown order", service.ErrOrderNotFound, http.StatusNotFound, "Order Not Found"},
		{"store failure", errors.New("boom"), http.StatusInternalServerError, "Error While Updateing Order"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)
			s.orders.On("UpdateStatus", mock.Anything, "o1", entity.OrderStatus("Lost")).Return(nil, tc.err).Once()

			rec := s.do(t, http.MethodPut, "/api/v1/auth/order-status/o1", s.token(t, "a1", entity.RoleAdmin), map[string]string{"status": "Lost"})

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.message, jsonBody(t, rec)["message"])
		})
	}

	t.Run("success", func(t *testing.T) {
		s := newTestServer(t)
		s.orders.On("UpdateStatus", mock.Anything, "o1", entity.StatusShipped).
			Return(&entity.Order{ID: "o1", Status: entity.StatusShipped}, nil).Once()

		rec := s.do(t, http.MethodPut, "/api/v1/auth/order-status/o1", s.token(t, "a1", entity.RoleAdmin), map[string]string{"status": "Shipped"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Shipped", jsonBody(t, rec)["status"])
	})
}

func TestCategories(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		s := newTestServer(t)
		s.catalog.On("ListCategories", mock.Anything).Return([]entity.Category{{ID: "c1", Name: "Books", Slug: "books"}}, nil).Once()

		rec := s.do(t, http.MethodGet, "/api/v1/category/get-category", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := jsonBody(t, rec)
		assert.Equal(t, "All Categories List", body["message"])
		assert.Len(t, body["category"], 1)
	})

	t.Run("create requires name", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(t, http.MethodPost, "/api/v1/category/create-category", s.token(t, "a1", entity.RoleAdmin), map[string]string{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Name is required", jsonBody(t, rec)["message"])
	})

	t.Run("create duplicate", func(t *testing.T) {
		s := newTestServer(t)
		s.catalog.On("CreateCategory", mock.Anything, "Books").Return(nil, service.ErrCategoryExists).Once()

		rec := s.do(t, http.MethodPost, "/api/v1/category/create-category", s.token(t, "a1", entity.RoleAdmin), map[string]string{"name": "Books"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Category Already Exisits", jsonBody(t, rec)["message"])
	})

	t.Run("create", func(t *testing.T) {
		s := newTestServer(t)
		s.catalog.On("CreateCategory", mock.Anything, "Books").Return(&entity.Category{ID: "c1", Name: "Books", Slug: "books"}, nil).Once()

		rec := s.do(t, http.MethodPost, "/api/v1/category/create-category", s.token(t, "a1", entity.RoleAdmin), map[string]string{"name": "Books"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "new category created", jsonBody(t, rec)["message"])
	})
}

func multipartProduct(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", "cover.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func (s *testServer) postProduct(t *testing.T, fields map[string]string, photo []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartProduct(t, fields, photo)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/product/create-product", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", s.token(t, "a1", entity.RoleAdmin))
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func productFields() map[string]string {
	return map[string]string{
		"name":        "Go Book",
		"description": "learn go",
		"price":       "29.5",
		"quantity":    "3",
		"category":    "c1",
		"shipping":    "1",
	}
}

func TestCreateProduct_MissingField(t *testing.T) {
	s := newTestServer(t)
	fields := productFields()
	delete(fields, "description")

	rec := s.postProduct(t, fields, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Description is Required", jsonBody(t, rec)["error"])
}

func TestCreateProduct_PhotoTooLarge(t *testing.T) {
	s := newTestServer(t)

	rec := s.postProduct(t, productFields(), bytes.Repeat([]byte{1}, 1000001))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "photo is Required and should be less then 1mb", jsonBody(t, rec)["error"])
	s.catalog.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProduct_Success(t *testing.T) {
	s := newTestServer(t)
	photo := []byte("\x89PNG\r\n\x1a\n")
	want := service.ProductInput{Name: "Go Book", Description: "learn go", Price: 29.5, Category: "c1", Quantity: 3, Shipping: true}
	s.catalog.On("CreateProduct", mock.Anything, want, mock.MatchedBy(func(p *service.PhotoUpload) bool {
		return p != nil && p.FileName == "cover.png" && bytes.Equal(p.Data, photo)
	})).Return(&entity.Product{ID: "p1", Name: "Go Book", Slug: "go-book"}, nil).Once()

	rec := s.postProduct(t, productFields(), photo)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := jsonBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Product Created Successfully", body["message"])
	assert.Equal(t, "go-book", body["products"].(map[string]interface{})["slug"])
	s.catalog.AssertExpectations(t)
}

func TestCreateProduct_RequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartProduct(t, productFields(), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/product/create-product", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", s.token(t, "u1", entity.RoleUser))
	rec := httptest.NewRecorder()

	s.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListProducts(t *testing.T) {
	s := newTestServer(t)
	s.catalog.On("ListProducts", mock.Anything).Return([]entity.Product{{ID: "p1"}, {ID: "p2"}}, nil).Once()

	rec := s.do(t, http.MethodGet, "/api/v1/product/get-product", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := jsonBody(t, rec)
	assert.Equal(t, float64(2), body["countTotal"])
	assert.Equal(t, "ALlProducts ", body["message"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_http_requests_total"))
}
