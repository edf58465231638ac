package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"flowrelay/pkg/logger"
)

// TokenSource supplies the bearer credential for authenticated calls.
// An empty token means the call goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// IClient is one chat's view of the Flow Relay backend, bound to that
// chat's token source.
type IClient interface {
	Auth() IAuthAPI
	Offers() IOfferAPI
	Driver() IDriverAPI
	Admin() IAdminAPI
}

// Client holds what is shared across all chats: base URL and transport.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     logger.ILogger
}

func New(baseURL string, log logger.ILogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		log:     log,
	}
}

func (c *Client) Bind(ts TokenSource) IClient {
	return &bound{rt: rt{c: c, ts: ts}}
}

type bound struct {
	rt rt
}

func (b *bound) Auth() IAuthAPI     { return authAPI{b.rt} }
func (b *bound) Offers() IOfferAPI  { return offerAPI{b.rt} }
func (b *bound) Driver() IDriverAPI { return driverAPI{b.rt} }
func (b *bound) Admin() IAdminAPI   { return adminAPI{b.rt} }

type rt struct {
	c  *Client
	ts TokenSource
}

func (r rt) do(ctx context.Context, method, path string, query url.Values, in, out interface{}, authed bool) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	u := r.c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.authorize(req, authed)

	return r.send(req, out)
}

func (r rt) doForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return r.send(req, out)
}

func (r rt) authorize(req *http.Request, authed bool) {
	if !authed || r.ts == nil {
		return
	}
	if token := r.ts.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (r rt) send(req *http.Request, out interface{}) error {
	resp, err := r.c.httpc.Do(req)
	if err != nil {
		r.c.log.Error("backend request failed", logger.Error(err), logger.String("path", req.URL.Path))
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
