package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esabling477/sura-trading/internal/account"
	"github.com/esabling477/sura-trading/internal/auth"
	"github.com/esabling477/sura-trading/internal/config"
	"github.com/esabling477/sura-trading/internal/market"
	"github.com/esabling477/sura-trading/internal/portfolio"
	"github.com/esabling477/sura-trading/internal/store"
	"github.com/esabling477/sura-trading/pkg/logger"
	"github.com/esabling477/sura-trading/pkg/response"
)

func init() {
	logger.Init("test", "error", false)
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg, err := config.Load("nonexistent-test-config")
	require.NoError(t, err)
	cfg.Market.RefreshDelay = 5 * time.Millisecond

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	quotes := market.NewStore(cfg.Market.RefreshDelay, nil)
	hub := market.NewHub(quotes, cfg.Market.StreamInterval)

	jwtMgr := auth.NewJWTManager(&auth.Config{
		Secret:          cfg.Auth.JWTSecret,
		AccessTokenTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}).WithSessionStore(auth.NewLocalSessionStore(st))

	authSvc := auth.NewService(st, jwtMgr, cfg.Auth.MinPasswordLength)
	portfolioSvc := portfolio.NewService(st, quotes)
	accountSvc := account.NewService(st)

	app := fiber.New(fiber.Config{ErrorHandler: response.ErrorHandler})
	New(cfg, authSvc, portfolioSvc, accountSvc, quotes, hub).RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/v1/auth/login", "", LoginRequest{
		Email:    "trader@example.com",
		Password: "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session SessionResponse
	decodeData(t, resp, &session)
	return session.Tokens.AccessToken
}

func TestLoginAndMe(t *testing.T) {
	app := newTestApp(t)

	token := login(t, app)
	resp := doJSON(t, app, "GET", "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user auth.User
	decodeData(t, resp, &user)
	assert.Equal(t, "trader@example.com", user.Email)
	assert.Equal(t, "trader", user.Name)
}

func TestLogin_BadPassword(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/auth/login", "", LoginRequest{
		Email:    "trader@example.com",
		Password: "short",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_MismatchedConfirmation(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/auth/register", "", RegisterRequest{
		Name:            "Jane",
		Email:           "jane@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRefreshAndLogout(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/auth/login", "", LoginRequest{
		Email: "trader@example.com", Password: "secret1",
	})
	var session SessionResponse
	decodeData(t, resp, &session)

	resp = doJSON(t, app, "POST", "/api/v1/auth/refresh", "", RefreshRequest{RefreshToken: session.Tokens.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var next auth.TokenPair
	decodeData(t, resp, &next)
	assert.NotEqual(t, session.Tokens.RefreshToken, next.RefreshToken)

	resp = doJSON(t, app, "POST", "/api/v1/auth/logout", "", RefreshRequest{RefreshToken: next.RefreshToken})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The revoked session no longer refreshes.
	resp = doJSON(t, app, "POST", "/api/v1/auth/refresh", "", RefreshRequest{RefreshToken: next.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/v1/me", "/api/v1/portfolio", "/api/v1/account/wallet"} {
		resp := doJSON(t, app, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestListQuotes(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/v1/quotes", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Quotes []QuoteResponse `json:"quotes"`
	}
	decodeData(t, resp, &data)
	require.Len(t, data.Quotes, 20)
	assert.Equal(t, "BTC", data.Quotes[0].Symbol)
	assert.NotEmpty(t, data.Quotes[0].PriceDisplay)
}

func TestGetQuote(t *testing.T) {
	app := newTestApp(t)

	// Case-insensitive lookup.
	resp := doJSON(t, app, "GET", "/api/v1/quotes/btc", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quote QuoteResponse
	decodeData(t, resp, &quote)
	assert.Equal(t, "bitcoin", quote.AssetID)

	// Pair symbols arrive URL-escaped.
	resp = doJSON(t, app, "GET", "/api/v1/quotes/EUR%2FUSD", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/quotes/NOPE", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestRefresh(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/quotes/refresh", "", nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var data struct {
		ScheduledInMs int64 `json:"scheduled_in_ms"`
	}
	decodeData(t, resp, &data)
	assert.Equal(t, int64(5), data.ScheduledInMs)
}

func TestPortfolioFlow(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp := doJSON(t, app, "GET", "/api/v1/portfolio", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var valuation portfolio.Valuation
	decodeData(t, resp, &valuation)
	assert.Len(t, valuation.Holdings, 3, "starter portfolio")

	resp = doJSON(t, app, "PUT", "/api/v1/portfolio/solana", token, map[string]any{"quantity": 12})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", "/api/v1/portfolio/bitcoin", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/portfolio", token, nil)
	decodeData(t, resp, &valuation)
	assert.Len(t, valuation.Holdings, 3, "added solana, removed bitcoin")

	resp = doJSON(t, app, "PUT", "/api/v1/portfolio/ghost", token, map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAccountFlow(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp := doJSON(t, app, "POST", "/api/v1/account/deposits", token, DepositRequest{Network: "Bitcoin", Amount: decimal.NewFromInt(500)})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/v1/account/withdrawals", token, WithdrawRequest{Address: "0xabc", Amount: decimal.NewFromInt(200)})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/v1/account/withdrawals", token, WithdrawRequest{Address: "0xabc", Amount: decimal.NewFromInt(999)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/account/wallet", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var wallet account.Wallet
	decodeData(t, resp, &wallet)
	assert.Equal(t, "300", wallet.Balance.String())

	resp = doJSON(t, app, "GET", "/api/v1/account/transfers?page=1&per_page=1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Items      []account.Transfer  `json:"items"`
		Pagination response.Pagination `json:"pagination"`
	}
	decodeData(t, resp, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, account.KindWithdrawal, page.Items[0].Kind, "newest first")
	assert.Equal(t, int64(2), page.Pagination.Total)
}

func TestGetChart(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/v1/charts/BTC?days=7&kind=line&w=400&h=300", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))

	resp = doJSON(t, app, "GET", "/api/v1/charts/BTC?days=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/v1/charts/BTC?w=10", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Hovered render.
	resp = doJSON(t, app, "GET", "/api/v1/charts/BTC?hover_x=400&hover_y=200", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
