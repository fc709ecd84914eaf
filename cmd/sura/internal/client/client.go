package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Client talks to the terminal API. Responses arrive in the standard
// envelope; do unwraps data or surfaces the error body.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

func New() *Client {
	return &Client{
		baseURL: viper.GetString("api_url"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(method, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if env.Error != nil {
		if len(env.Error.Details) > 0 {
			return fmt.Errorf("%s: %s", env.Error.Message, env.Error.Details[0])
		}
		return fmt.Errorf("%s", env.Error.Message)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// Auth

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type Session struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

func (c *Client) Login(email, password string) (*Session, error) {
	var session Session
	err := c.do("POST", "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) Logout(refreshToken string) error {
	return c.do("POST", "/api/v1/auth/logout", map[string]string{
		"refresh_token": refreshToken,
	}, nil)
}

func (c *Client) Me() (*User, error) {
	var user User
	if err := c.do("GET", "/api/v1/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Market

type Quote struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"current_price"`
	PctChange24h     float64 `json:"price_change_percentage_24h"`
	PriceDisplay     string  `json:"price_display"`
	ChangeDisplay    string  `json:"change_display"`
	MarketCapDisplay string  `json:"market_cap_display"`
}

type QuoteBoard struct {
	Quotes      []Quote   `json:"quotes"`
	LastUpdated time.Time `json:"last_updated"`
}

func (c *Client) Quotes() (*QuoteBoard, error) {
	var board QuoteBoard
	if err := c.do("GET", "/api/v1/quotes", nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) Quote(symbol string) (*Quote, error) {
	var quote Quote
	if err := c.do("GET", "/api/v1/quotes/"+url.PathEscape(symbol), nil, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *Client) RequestRefresh() (int64, error) {
	var resp struct {
		ScheduledInMs int64 `json:"scheduled_in_ms"`
	}
	if err := c.do("POST", "/api/v1/quotes/refresh", nil, &resp); err != nil {
		return 0, err
	}
	return resp.ScheduledInMs, nil
}

// Chart downloads a rendered chart PNG.
func (c *Client) Chart(symbol string, days int, kind, theme string) ([]byte, error) {
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))
	q.Set("kind", kind)
	q.Set("theme", theme)

	req, err := http.NewRequest("GET", c.baseURL+"/api/v1/charts/"+url.PathEscape(symbol)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chart request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

// Portfolio

type ValuedHolding struct {
	AssetID       string `json:"asset_id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Quantity      string `json:"quantity"`
	Price         string `json:"price"`
	Value         string `json:"value"`
	ChangeValue   string `json:"change_value"`
	AllocationPct string `json:"allocation_pct"`
}

type Valuation struct {
	Holdings         []ValuedHolding `json:"holdings"`
	TotalValue       string          `json:"total_value"`
	TotalChangeValue string          `json:"total_change_value"`
	TotalChangePct   float64         `json:"total_change_pct"`
}

func (c *Client) Portfolio() (*Valuation, error) {
	var v Valuation
	if err := c.do("GET", "/api/v1/portfolio", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) SetHolding(assetID, quantity string) error {
	return c.do("PUT", "/api/v1/portfolio/"+url.PathEscape(assetID), map[string]json.Number{
		"quantity": json.Number(quantity),
	}, nil)
}

func (c *Client) RemoveHolding(assetID string) error {
	return c.do("DELETE", "/api/v1/portfolio/"+url.PathEscape(assetID), nil, nil)
}

// Account

type Wallet struct {
	Balance   string    `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Transfer struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Amount    string    `json:"amount"`
	Network   string    `json:"network"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type TransferPage struct {
	Items      []Transfer `json:"items"`
	Pagination struct {
		Page       int   `json:"page"`
		PerPage    int   `json:"per_page"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"pagination"`
}

func (c *Client) Wallet() (*Wallet, error) {
	var w Wallet
	if err := c.do("GET", "/api/v1/account/wallet", nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) Deposit(network, amount string) (*Transfer, error) {
	var tr Transfer
	err := c.do("POST", "/api/v1/account/deposits", map[string]interface{}{
		"network": network,
		"amount":  json.Number(amount),
	}, &tr)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func (c *Client) Withdraw(address, amount string) (*Transfer, error) {
	var tr Transfer
	err := c.do("POST", "/api/v1/account/withdrawals", map[string]interface{}{
		"address": address,
		"amount":  json.Number(amount),
	}, &tr)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func (c *Client) Transfers(page, perPage int) (*TransferPage, error) {
	var tp TransferPage
	path := fmt.Sprintf("/api/v1/account/transfers?page=%d&per_page=%d", page, perPage)
	if err := c.do("GET", path, nil, &tp); err != nil {
		return nil, err
	}
	return &tp, nil
}
