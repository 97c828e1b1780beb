package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client is a collection served by NewRouter on another host.
type Client struct {
	name string
	base string
	hc   *http.Client
}

// NewClient returns a client for the named collection at baseURL.
func NewClient(baseURL, name string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		name: name,
		base: strings.TrimRight(baseURL, "/"),
		hc:   hc,
	}
}

func (c *Client) Name() string { return c.name }

func (c *Client) documentsURL() string {
	return c.base + "/collections/" + url.PathEscape(c.name) + "/documents"
}

func (c *Client) Get(ctx context.Context) ([]Document, error) {
	return c.list(ctx, c.documentsURL())
}

func (c *Client) list(ctx context.Context, u string) ([]Document, error) {
	var docs []Document
	if err := c.do(ctx, http.MethodGet, u, nil, http.StatusOK, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *Client) Add(ctx context.Context, data any) (string, error) {
	raw, err := encode(data)
	if err != nil {
		return "", err
	}
	var out struct {
		Key string `json:"key"`
	}
	if err := c.do(ctx, http.MethodPost, c.documentsURL(), raw, http.StatusCreated, &out); err != nil {
		return "", err
	}
	return out.Key, nil
}

func (c *Client) Where(field string, value any) Query {
	return clientQuery{c: c, field: field, value: value}
}

type clientQuery struct {
	c     *Client
	field string
	value any
}

func (q clientQuery) Get(ctx context.Context) ([]Document, error) {
	v, err := json.Marshal(q.value)
	if err != nil {
		return nil, fmt.Errorf("remote: encode filter value: %w", err)
	}
	params := url.Values{}
	params.Set("field", q.field)
	params.Set("value", string(v))
	return q.c.list(ctx, q.c.documentsURL()+"?"+params.Encode())
}

func (c *Client) Delete(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodDelete, c.documentsURL()+"/"+url.PathEscape(key), nil, http.StatusNoContent, nil)
}

func (c *Client) Update(ctx context.Context, key string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("remote: encode fields: %w", err)
	}
	return c.do(ctx, http.MethodPatch, c.documentsURL()+"/"+url.PathEscape(key), raw, http.StatusNoContent, nil)
}

func (c *Client) do(ctx context.Context, method, u string, body []byte, want int, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("remote: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != want {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = resp.Status
		}
		return fmt.Errorf("remote: %s %s: %s", method, u, apiErr.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("remote: decode response: %w", err)
	}
	return nil
}
