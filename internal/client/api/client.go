// Package api is a typed HTTP client for the lifelog REST API.
//
// Transport failures are reported as ErrUnavailable. Non-2xx replies are
// *Error values that match ErrUnauthorized and ErrNotFound with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url: unsupported scheme %q", u.Scheme)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func jsonRequest(method, path, token string, v any) (request, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return request{}, err
	}
	return request{method: method, path: path, token: token, body: bytes.NewReader(b), contentType: "application/json"}, nil
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return err
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
		return &Error{Status: resp.StatusCode, Message: body.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

// Health reports whether the server and its database answer.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodGet, path: "/healthz"}, nil)
}

// Signup registers an account and returns the new user id.
func (c *Client) Signup(ctx context.Context, email, userName, password string) (string, error) {
	r, err := jsonRequest(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": email, "user_name": userName, "password": password,
	})
	if err != nil {
		return "", err
	}
	var out struct {
		UserID string `json:"userId"`
	}
	if err := c.do(ctx, r, &out); err != nil {
		return "", err
	}
	return out.UserID, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	r, err := jsonRequest(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	if err != nil {
		return nil, err
	}
	var out LoginResult
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/auth/me", token: token}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Categories(ctx context.Context, token string) ([]Category, error) {
	var out struct {
		Categories []Category `json:"categories"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/categories", token: token}, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, token, name, icon, color string) (*Category, error) {
	r, err := jsonRequest(http.MethodPost, "/api/categories", token, map[string]string{
		"name": name, "icon": icon, "color": color,
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Category Category `json:"category"`
	}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/categories/" + url.PathEscape(id), token: token}, nil)
}

// Records lists the caller's records, newest first. An empty categoryID
// lists all of them.
func (c *Client) Records(ctx context.Context, token, categoryID string) ([]Record, error) {
	path := "/api/records"
	if categoryID != "" {
		path += "?" + url.Values{"category_id": {categoryID}}.Encode()
	}
	var out []Record
	if err := c.do(ctx, request{method: http.MethodGet, path: path, token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Image is a file attached to a new record.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type NewRecord struct {
	Title       string
	Description string
	DateLogged  string
	CategoryID  string
	Image       *Image
}

// CreateRecord posts a record and returns its id. Records with an image are
// sent as multipart/form-data, others as JSON.
func (c *Client) CreateRecord(ctx context.Context, token string, rec NewRecord) (string, error) {
	var (
		r   request
		err error
	)
	if rec.Image == nil {
		r, err = jsonRequest(http.MethodPost, "/api/records", token, map[string]string{
			"title": rec.Title, "description": rec.Description,
			"date_logged": rec.DateLogged, "category_id": rec.CategoryID,
		})
	} else {
		r, err = multipartRecord(token, rec)
	}
	if err != nil {
		return "", err
	}

	var out struct {
		RecordID string `json:"recordId"`
	}
	if err := c.do(ctx, r, &out); err != nil {
		return "", err
	}
	return out.RecordID, nil
}

func multipartRecord(token string, rec NewRecord) (request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"title": rec.Title, "description": rec.Description,
		"date_logged": rec.DateLogged, "category_id": rec.CategoryID,
	} {
		if err := mw.WriteField(k, v); err != nil {
			return request{}, err
		}
	}

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, rec.Image.Filename))
	hdr.Set("Content-Type", rec.Image.ContentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return request{}, err
	}
	if _, err := io.Copy(part, rec.Image.Body); err != nil {
		return request{}, err
	}
	if err := mw.Close(); err != nil {
		return request{}, err
	}
	return request{method: http.MethodPost, path: "/api/records", token: token, body: &buf, contentType: mw.FormDataContentType()}, nil
}

func (c *Client) DeleteRecord(ctx context.Context, token, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/records/" + url.PathEscape(id), token: token}, nil)
}

func (c *Client) Stats(ctx context.Context, token string) (*Stats, error) {
	var out Stats
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/records/stats", token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
