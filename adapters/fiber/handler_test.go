package fiber

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/cy6erlion/kong-kontrollers/core"
)

// mockAuthHandler implements core.AuthHandler with canned responses.
type mockAuthHandler struct {
	createCalled bool
	createInput  core.AccountCreationInput
	createResult *core.PublicAccount
	createErr    error

	loginCalled bool
	loginInput  core.AccountLoginInput
	loginResult *core.LoginResult
	loginErr    error

	publicResult *core.PublicAccount
	publicErr    error

	verifyUsername string
	verifyErr      error

	isAdminResult bool
	isAdminErr    error
}

var _ core.AuthHandler = (*mockAuthHandler)(nil)

func (m *mockAuthHandler) CreateAccount(input core.AccountCreationInput) (*core.PublicAccount, error) {
	m.createCalled = true
	m.createInput = input
	return m.createResult, m.createErr
}

func (m *mockAuthHandler) Login(input core.AccountLoginInput) (*core.LoginResult, error) {
	m.loginCalled = true
	m.loginInput = input
	return m.loginResult, m.loginErr
}

func (m *mockAuthHandler) PublicByUsername(username string) (*core.PublicAccount, error) {
	return m.publicResult, m.publicErr
}

func (m *mockAuthHandler) VerifyPassport(token string) (string, error) {
	return m.verifyUsername, m.verifyErr
}

func (m *mockAuthHandler) IsAdmin(username string) (bool, error) {
	return m.isAdminResult, m.isAdminErr
}

func newTestAdapter(t *testing.T, mock *mockAuthHandler) (*fiber.App, *Adapter) {
	t.Helper()

	app := fiber.New()
	adapter := New(app)
	if err := adapter.RegisterRoutes(mock, "/api", "kpassport"); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return app, adapter
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
	return body
}

func TestCreateAccountRoute(t *testing.T) {
	// Arrange
	mock := &mockAuthHandler{createResult: &core.PublicAccount{Username: "alice"}}
	app, _ := newTestAdapter(t, mock)

	// Act
	resp, err := app.Test(jsonRequest("POST", "/api/accounts", map[string]string{
		"username": "alice",
		"password": "Str0ngPass!",
	}))

	// Assert
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if !mock.createCalled {
		t.Fatal("CreateAccount was not called")
	}
	if mock.createInput.Username != "alice" {
		t.Errorf("bound username = %q", mock.createInput.Username)
	}

	body := decodeBody(t, resp)
	if body["username"] != "alice" {
		t.Errorf("response body = %v", body)
	}
}

func TestCreateAccountRoute_InvalidBody(t *testing.T) {
	mock := &mockAuthHandler{}
	app, _ := newTestAdapter(t, mock)

	req := httptest.NewRequest("POST", "/api/accounts", bytes.NewBufferString("{not json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if mock.createCalled {
		t.Error("CreateAccount called with an unparseable body")
	}
}

func TestCreateAccountRoute_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation failure",
			err:        core.ErrInvalidUsername,
			wantStatus: http.StatusBadRequest,
			wantBody:   core.ErrInvalidUsername.Error(),
		},
		{
			name:       "duplicate account",
			err:        core.ErrDuplicateAccount,
			wantStatus: http.StatusBadRequest,
			wantBody:   core.ErrDuplicateAccount.Error(),
		},
		{
			name:       "store failure stays opaque",
			err:        errors.New("pq: connection refused on 10.0.0.7"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mock := &mockAuthHandler{createErr: test.err}
			app, _ := newTestAdapter(t, mock)

			resp, err := app.Test(jsonRequest("POST", "/api/accounts", map[string]string{
				"username": "alice",
				"password": "Str0ngPass!",
			}))
			if err != nil {
				t.Fatalf("Test() error = %v", err)
			}
			if resp.StatusCode != test.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, test.wantStatus)
			}
			body := decodeBody(t, resp)
			if body["error"] != test.wantBody {
				t.Errorf("error body = %q, want %q", body["error"], test.wantBody)
			}
		})
	}
}

func TestLoginRoute(t *testing.T) {
	// Arrange
	mock := &mockAuthHandler{
		loginResult: &core.LoginResult{
			Message:     "Login successful",
			AccountType: core.AccountTypeStandard,
			Passport: &core.Passport{
				Token: "signed-token",
				Cookie: http.Cookie{
					Name:     "kpassport",
					Value:    "signed-token",
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteStrictMode,
				},
			},
		},
	}
	app, _ := newTestAdapter(t, mock)

	// Act
	resp, err := app.Test(jsonRequest("POST", "/api/login", map[string]string{
		"username": "alice",
		"password": "Str0ngPass!",
	}))

	// Assert
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !mock.loginCalled {
		t.Fatal("Login was not called")
	}

	var passportCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "kpassport" {
			passportCookie = cookie
		}
	}
	if passportCookie == nil {
		t.Fatal("login response set no passport cookie")
	}
	if passportCookie.Value != "signed-token" {
		t.Errorf("cookie value = %q", passportCookie.Value)
	}
	if !passportCookie.HttpOnly {
		t.Error("passport cookie is not HttpOnly")
	}
	if passportCookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("cookie SameSite = %v, want the issuer's strict mode", passportCookie.SameSite)
	}

	// The token travels only in the cookie, never in the body.
	body := decodeBody(t, resp)
	if body["message"] != "Login successful" {
		t.Errorf("message = %v", body["message"])
	}
	if _, leaked := body["token"]; leaked {
		t.Error("login body leaks the passport token")
	}
}

// The issuer is the single source of cookie policy; whatever attributes it
// chose must survive the trip through the handler unchanged.
func TestLoginRoute_CookiePolicyFromIssuer(t *testing.T) {
	mock := &mockAuthHandler{
		loginResult: &core.LoginResult{
			Message: "Login successful",
			Passport: &core.Passport{
				Token: "signed-token",
				Cookie: http.Cookie{
					Name:     "session",
					Value:    "signed-token",
					Path:     "/app",
					Secure:   true,
					SameSite: http.SameSiteLaxMode,
				},
			},
		},
	}
	app, _ := newTestAdapter(t, mock)

	resp, err := app.Test(jsonRequest("POST", "/api/login", map[string]string{
		"username": "alice",
		"password": "Str0ngPass!",
	}))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no cookie set under the issuer's name")
	}
	if cookie.Path != "/app" {
		t.Errorf("cookie Path = %q, want the issuer's /app", cookie.Path)
	}
	if !cookie.Secure {
		t.Error("issuer's Secure attribute was dropped")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie SameSite = %v, want the issuer's lax mode", cookie.SameSite)
	}
}

func TestLoginRoute_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid shape", err: core.ErrInvalidPassword, wantStatus: http.StatusBadRequest},
		{name: "unknown username", err: core.ErrAccountNotFound, wantStatus: http.StatusNotFound},
		{name: "wrong password", err: core.ErrWrongPassword, wantStatus: http.StatusUnauthorized},
		{name: "store failure", err: core.ErrQueryFailed, wantStatus: http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mock := &mockAuthHandler{loginErr: test.err}
			app, _ := newTestAdapter(t, mock)

			resp, err := app.Test(jsonRequest("POST", "/api/login", map[string]string{
				"username": "alice",
				"password": "Str0ngPass!",
			}))
			if err != nil {
				t.Fatalf("Test() error = %v", err)
			}
			if resp.StatusCode != test.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, test.wantStatus)
			}
			if len(resp.Cookies()) != 0 {
				t.Error("failed login set a cookie")
			}
		})
	}
}

func TestPublicAccountRoute(t *testing.T) {
	mock := &mockAuthHandler{publicResult: &core.PublicAccount{Username: "alice"}}
	app, _ := newTestAdapter(t, mock)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/accounts/alice", nil))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["username"] != "alice" {
		t.Errorf("body = %v", body)
	}
}

func TestPublicAccountRoute_NotFound(t *testing.T) {
	mock := &mockAuthHandler{publicErr: core.ErrAccountNotFound}
	app, _ := newTestAdapter(t, mock)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/accounts/nobody", nil))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
