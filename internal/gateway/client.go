// Package gateway is the console's client for the store API. Every call returns its payload
// or an *apperr.Error of kind Network (transport or decoding) or Server (error status or success:false).
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-store-console/internal/apperr"
	"go-store-console/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	ErrMsgUnreachable = "Could not reach the store API"
	ErrMsgBadResponse = "Unexpected response from the store API"
)

// Client keeps the upstream session cookies, so one Client serves one console session.
type Client struct {
	baseURL string
	timeout time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	cookies map[string]string
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		log:     log,
		cookies: make(map[string]string),
	}
}

// HasSession reports whether the upstream has handed out a session cookie
func (c *Client) HasSession() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cookies) > 0
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return apperr.Network(ErrMsgUnreachable, err)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return apperr.Network(ErrMsgUnreachable, context.DeadlineExceeded)
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	a.Timeout(timeout)

	c.mu.Lock()
	for name, value := range c.cookies {
		a.Cookie(name, value)
	}
	c.mu.Unlock()

	if body != nil {
		a.JSON(body)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return apperr.Network(ErrMsgUnreachable, err)
	}

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	a.SetResponse(resp)

	start := time.Now()
	code, raw, errs := a.Bytes()
	if len(errs) > 0 {
		c.log.Warn("store api unreachable",
			zap.String("method", method), zap.String("path", path), zap.Error(errs[0]))
		return apperr.Network(ErrMsgUnreachable, errs[0])
	}
	c.log.Debug("store api call",
		zap.String("method", method), zap.String("path", path),
		zap.Int("status", code), zap.Duration("elapsed", time.Since(start)))

	c.storeCookies(&resp.Header)

	if code >= fiber.StatusBadRequest {
		return serverError(code, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn("store api sent an undecodable body",
			zap.String("path", path), zap.Int("status", code), zap.Error(err))
		return apperr.Network(ErrMsgBadResponse, err)
	}
	return nil
}

func (c *Client) storeCookies(h *fasthttp.ResponseHeader) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h.VisitAllCookie(func(_, value []byte) {
		cookie := fasthttp.AcquireCookie()
		defer fasthttp.ReleaseCookie(cookie)
		if err := cookie.ParseBytes(value); err != nil {
			return
		}

		name := string(cookie.Key())
		expire := cookie.Expire()
		expired := expire != fasthttp.CookieExpireUnlimited && expire.Before(time.Now())
		if len(cookie.Value()) == 0 || expired || cookie.MaxAge() < 0 {
			delete(c.cookies, name)
			return
		}
		c.cookies[name] = string(cookie.Value())
	})
}

func serverError(code int, raw []byte) error {
	var apiErr model.APIError
	if err := json.Unmarshal(raw, &apiErr); err == nil {
		if apiErr.Error != "" {
			return apperr.Server(apiErr.Error)
		}
		if apiErr.Message != "" {
			return apperr.Server(apiErr.Message)
		}
	}
	return apperr.Server(fmt.Sprintf("Store API returned status %d", code))
}

// write issues a request answered with the {success, message} envelope
func (c *Client) write(ctx context.Context, method, path string, body interface{}) (*model.APIResult, error) {
	var result model.APIResult
	if err := c.do(ctx, method, path, body, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, apperr.Server(orDefault(result.Message, "Request failed"))
	}
	return &result, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
