// Package apiclient реализует HTTP-транспорт к REST API дашборда:
// кодирование JSON, bearer-авторизацию из текущей сессии и разбор ошибок бэкенда.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
)

// TokenSource отдаёт токен текущей сессии. Пустая строка — токена нет.
type TokenSource interface {
	Token() string
}

// StatusError ответ бэкенда с кодом вне 2xx.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return "unexpected status: " + e.Status + ": " + e.Message
	}
	return "unexpected status: " + e.Status
}

// IsStatus сообщает, является ли err ответом бэкенда с кодом code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// Client клиент REST API.
type Client struct {
	apiURL     string
	httpClient *http.Client
	tokens     TokenSource
	registerer prometheus.Registerer
	log        *slog.Logger
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient задаёт http.Client. Таймаут берётся из него же.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource задаёт источник bearer-токена.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithMetrics включает метрики исходящих запросов в реестре reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) { c.registerer = reg }
}

// WithLogger задаёт логгер.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New создаёт клиент для API по адресу apiURL (например http://localhost:8080/dashboard/v1).
func New(apiURL string, opts ...Option) (*Client, error) {
	const op = "apiclient.New"
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%s: unsupported scheme %q", op, u.Scheme)
	}

	c := &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{},
		log:        sl.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.registerer != nil {
		hc := *c.httpClient
		hc.Transport = instrument(c.registerer, hc.Transport)
		c.httpClient = &hc
	}
	return c, nil
}

// SetTokenSource подключает источник токена после создания клиента.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.apiURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// Do выполняет запрос method к path со строкой запроса query и JSON-телом body.
// При успехе тело ответа декодируется в out, если out не nil.
// Ответ вне 2xx возвращается как *StatusError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	const op = "apiclient.Do"

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log := c.log.With(
		sl.Op(op),
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", req.Header.Get("X-Request-ID")),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode, Status: resp.Status}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err == nil {
			se.Message = payload.Error
		}
		log.Warn("unexpected status", slog.Int("code", resp.StatusCode), sl.Err(se))
		return fmt.Errorf("%s: %w", op, se)
	}
	log.Debug("request completed", slog.Int("code", resp.StatusCode))

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
