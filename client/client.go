// Package client talks to the ordering API on behalf of a customer. It keeps
// the session token, the cart and the order tracking loop on the client
// side; nothing here is retried automatically.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"food-ordering-api/models"
)

var (
	ErrNotLoggedIn    = errors.New("please login first")
	ErrSessionExpired = errors.New("session expired, please login again")
	ErrEmptyCart      = errors.New("your cart is empty")
	ErrNoAddress      = errors.New("please enter a delivery address")
)

// APIError is a non-2xx response carrying the server's {error} message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Is matches ErrSessionExpired for 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrSessionExpired && e.Status == http.StatusUnauthorized
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type AuthResponse struct {
	Service string            `json:"service"`
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

type PlacedOrder struct {
	models.Order
	Service string `json:"service"`
	Message string `json:"message"`
}

type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Store   string `json:"store"`
}

func (c *Client) Signup(ctx context.Context, name, mobile, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "mobile": mobile, "email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/signup", body)
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/login", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, path, body, &out, false); err != nil {
		return nil, err
	}
	if err := c.tokens.SetToken(out.Token); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return &out, nil
}

// Logout forgets the session locally. Tokens are not revocable server side.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

func (c *Client) LoggedIn() bool {
	token, err := c.tokens.Token()
	return err == nil && token != ""
}

func (c *Client) Me(ctx context.Context) (*models.PublicUser, error) {
	var out struct {
		User models.PublicUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out, true); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Restaurants(ctx context.Context, search string) ([]models.Restaurant, error) {
	path := "/api/restaurants"
	if s := strings.TrimSpace(search); s != "" {
		path += "?search=" + url.QueryEscape(s)
	}
	var out struct {
		Restaurants []models.Restaurant `json:"restaurants"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out, false); err != nil {
		return nil, err
	}
	return out.Restaurants, nil
}

func (c *Client) Restaurant(ctx context.Context, id int) (*models.Restaurant, error) {
	var out struct {
		Restaurant models.Restaurant `json:"restaurant"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/restaurants/"+strconv.Itoa(id), nil, &out, false); err != nil {
		return nil, err
	}
	return &out.Restaurant, nil
}

func (c *Client) Menu(ctx context.Context, restaurantID int) ([]models.MenuItem, error) {
	var out struct {
		Menu []models.MenuItem `json:"menu"`
	}
	path := "/api/restaurants/" + strconv.Itoa(restaurantID) + "/menu"
	if err := c.do(ctx, http.MethodGet, path, nil, &out, false); err != nil {
		return nil, err
	}
	return out.Menu, nil
}

// PlaceOrder submits the cart and empties it on success.
func (c *Client) PlaceOrder(ctx context.Context, cart *Cart, deliveryAddress string) (*PlacedOrder, error) {
	if !c.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	if cart.Len() == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(deliveryAddress) == "" {
		return nil, ErrNoAddress
	}

	body := map[string]any{
		"restaurantId":    cart.RestaurantID(),
		"items":           cart.Items(),
		"total":           cart.Total(),
		"deliveryAddress": deliveryAddress,
	}
	var out PlacedOrder
	if err := c.do(ctx, http.MethodPost, "/api/orders", body, &out, true); err != nil {
		return nil, err
	}
	cart.Clear()
	return &out, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &out, true); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) Order(ctx context.Context, id int64) (*models.Order, error) {
	var out struct {
		Order models.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+strconv.FormatInt(id, 10), nil, &out, true); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one request. A 401 on an authenticated call drops the stored
// session.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("reading session: %w", err)
		}
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
		if authed && resp.StatusCode == http.StatusUnauthorized {
			if err := c.tokens.Clear(); err != nil {
				return errors.Join(apiErr, err)
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
