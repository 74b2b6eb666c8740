package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/server/http/middleware"
	"github.com/polkiloo/gobank/internal/server/http/views"
	testhelpers "github.com/polkiloo/gobank/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func performForm(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.SetHTMLTemplate(views.Templates())
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if form != nil {
		reader = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, reader)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func sessionCookie(t *testing.T, resp *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	for _, cookie := range result.Cookies() {
		if cookie.Name == "gobank_session" {
			return cookie
		}
	}
	return nil
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegisterRedirectsToBank(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, email, password string) (string, error) {
		if email != "alice@example.com" || password != "pw1" {
			t.Fatalf("unexpected credentials passed to facade: %q %q", email, password)
		}
		return "session-token", nil
	}}, testLogger())

	form := url.Values{"username": {"alice@example.com"}, "password": {"pw1"}}
	resp := performForm(t, http.MethodPost, "/register", handler.Register, nil, form)
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/bank" {
		t.Fatalf("expected redirect to /bank, got %q", loc)
	}
	cookie := sessionCookie(t, resp)
	if cookie == nil || cookie.Value != "session-token" {
		t.Fatalf("expected session cookie with token, got %+v", cookie)
	}
}

func TestAuthHandlerRegisterDuplicateRedirectsBack(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrAlreadyExists
	}}, testLogger())

	form := url.Values{"username": {"alice@example.com"}, "password": {"pw1"}}
	resp := performForm(t, http.MethodPost, "/register", handler.Register, nil, form)
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/register" {
		t.Fatalf("expected redirect back to /register, got %q", loc)
	}
	if cookie := sessionCookie(t, resp); cookie != nil {
		t.Fatalf("no session must be established on failure, got %+v", cookie)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	tests := []struct {
		name     string
		facade   testhelpers.AuthFacadeStub
		location string
		wantAuth bool
	}{
		{
			name:     "success",
			facade:   testhelpers.AuthFacadeStub{},
			location: "/bank",
			wantAuth: true,
		},
		{
			name: "invalid credentials",
			facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
				return "", domainErrors.ErrInvalidCredentials
			}},
			location: "/login",
		},
		{
			name: "storage failure",
			facade: testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
				return "", context.DeadlineExceeded
			}},
			location: "/login",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAuthHandler(tc.facade, testLogger())
			form := url.Values{"username": {"u@example.com"}, "password": {"pw"}}
			resp := performForm(t, http.MethodPost, "/login", handler.Login, nil, form)
			if resp.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", resp.Code)
			}
			if loc := resp.Header().Get("Location"); loc != tc.location {
				t.Fatalf("expected redirect to %q, got %q", tc.location, loc)
			}
			cookie := sessionCookie(t, resp)
			if tc.wantAuth && (cookie == nil || cookie.Value == "") {
				t.Fatal("expected session cookie on success")
			}
			if !tc.wantAuth && cookie != nil {
				t.Fatalf("no session must be established on failure, got %+v", cookie)
			}
		})
	}
}

func TestAuthHandlerLogoutClearsSession(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{}, testLogger())
	resp := performForm(t, http.MethodGet, "/logout", handler.Logout, asUser(1), nil)
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	cookie := sessionCookie(t, resp)
	if cookie == nil {
		t.Fatal("expected expiring session cookie in logout response")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected session cookie to be cleared, got value=%q maxage=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestBankHandlerLandingRendersBalance(t *testing.T) {
	handler := NewBankHandler(testhelpers.AccountFacadeStub{AccountFn: func(ctx context.Context, userID int64) (*model.User, error) {
		return &model.User{ID: userID, Email: "alice@example.com", AccountNumber: "acc-7", Balance: 60}, nil
	}}, testLogger())

	resp := performForm(t, http.MethodGet, "/bank", handler.Landing, asUser(7), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "acc-7") || !strings.Contains(body, "60.00") {
		t.Fatalf("expected account number and balance in body, got %q", body)
	}
}

func TestBankHandlerLandingStaleSession(t *testing.T) {
	handler := NewBankHandler(testhelpers.AccountFacadeStub{AccountFn: func(context.Context, int64) (*model.User, error) {
		return nil, domainErrors.ErrNotFound
	}}, testLogger())

	resp := performForm(t, http.MethodGet, "/bank", handler.Landing, asUser(7), nil)
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	cookie := sessionCookie(t, resp)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Fatal("expected stale session cookie to be cleared")
	}
}

func TestBankHandlerDeposit(t *testing.T) {
	var gotUser int64
	var gotAmount float64
	handler := NewBankHandler(testhelpers.AccountFacadeStub{DepositFn: func(ctx context.Context, userID int64, amount float64) error {
		gotUser, gotAmount = userID, amount
		return nil
	}}, testLogger())

	form := url.Values{"moneyAdd": {"100"}}
	resp := performForm(t, http.MethodPost, "/addMoney", handler.Deposit, asUser(3), form)
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/bank" {
		t.Fatalf("expected redirect to /bank, got %q", loc)
	}
	if gotUser != 3 || gotAmount != 100 {
		t.Fatalf("unexpected deposit call: user=%d amount=%v", gotUser, gotAmount)
	}
}

func TestBankHandlerTransfer(t *testing.T) {
	errs := []error{nil, domainErrors.ErrNotFound, domainErrors.ErrInsufficientBalance, domainErrors.ErrInvalidAmount}
	for _, wantErr := range errs {
		handler := NewBankHandler(testhelpers.AccountFacadeStub{TransferFn: func(ctx context.Context, fromID int64, toAccount string, amount float64) error {
			if fromID != 3 || toAccount != "acc-9" || amount != 40 {
				t.Fatalf("unexpected transfer call: %d %q %v", fromID, toAccount, amount)
			}
			return wantErr
		}}, testLogger())

		form := url.Values{"accNumber": {"acc-9"}, "moneySend": {"40"}}
		resp := performForm(t, http.MethodPost, "/sendMoney", handler.Transfer, asUser(3), form)
		if resp.Code != http.StatusSeeOther {
			t.Fatalf("err=%v: expected 303, got %d", wantErr, resp.Code)
		}
		// Every outcome, including failure, lands back on the balance page.
		if loc := resp.Header().Get("Location"); loc != "/bank" {
			t.Fatalf("err=%v: expected redirect to /bank, got %q", wantErr, loc)
		}
	}
}

func TestGoogleHandlerBegin(t *testing.T) {
	handler := NewGoogleHandler(testhelpers.FederatedFacadeStub{}, testLogger())
	resp := performForm(t, http.MethodGet, "/auth/google", handler.Begin, nil, nil)
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}

	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Fatal("expected state in provider URL")
	}

	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "gobank_oauth_state" && cookie.Value == state {
			found = true
		}
	}
	if !found {
		t.Fatal("expected state cookie matching provider URL")
	}
}

func TestGoogleHandlerCallback(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		cookie   string
		complete func(context.Context, string) (string, error)
		location string
		wantAuth bool
	}{
		{
			name:     "success",
			query:    "state=abc&code=xyz",
			cookie:   "abc",
			location: "/bank",
			wantAuth: true,
		},
		{
			name:     "state mismatch",
			query:    "state=evil&code=xyz",
			cookie:   "abc",
			location: "/login",
		},
		{
			name:     "missing state cookie",
			query:    "state=abc&code=xyz",
			location: "/login",
		},
		{
			name:     "provider denied",
			query:    "state=abc&error=access_denied",
			cookie:   "abc",
			location: "/login",
		},
		{
			name:   "exchange failure",
			query:  "state=abc&code=xyz",
			cookie: "abc",
			complete: func(context.Context, string) (string, error) {
				return "", domainErrors.ErrFederatedAuth
			},
			location: "/login",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewGoogleHandler(testhelpers.FederatedFacadeStub{CompleteFn: tc.complete}, testLogger())

			router := gin.New()
			router.GET("/auth/google/callback", handler.Callback)
			req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?"+tc.query, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "gobank_oauth_state", Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != tc.location {
				t.Fatalf("expected redirect to %q, got %q", tc.location, loc)
			}
			cookie := sessionCookie(t, w)
			if tc.wantAuth && (cookie == nil || cookie.Value == "") {
				t.Fatal("expected session cookie on success")
			}
			if !tc.wantAuth && cookie != nil && cookie.Value != "" {
				t.Fatalf("no session must be established on failure, got %+v", cookie)
			}
		})
	}
}
