package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-empedge/internal/validation"
)

const defaultTimeout = 10 * time.Second

// Employee is the API representation of a persisted record.
type Employee struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Contact  string `json:"contact"`
}

func (e Employee) Draft() validation.Draft {
	return validation.Draft{Name: e.Name, Email: e.Email, Position: e.Position, Contact: e.Contact}
}

func employeeFromDraft(id uint64, d validation.Draft) Employee {
	return Employee{ID: id, Name: d.Name, Email: d.Email, Position: d.Position, Contact: d.Contact}
}

// APIError is a non-2xx answer from the employees API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) List(ctx context.Context) ([]Employee, error) {
	var out []Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Employee{}
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id uint64) (Employee, error) {
	var out Employee
	err := c.do(ctx, http.MethodGet, employeePath(id), nil, &out)
	return out, err
}

// Create posts d and returns the id assigned by the store.
func (c *Client) Create(ctx context.Context, d validation.Draft) (uint64, error) {
	var out struct {
		ID uint64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/employees", d, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) Update(ctx context.Context, id uint64, d validation.Draft) error {
	return c.do(ctx, http.MethodPut, employeePath(id), d, nil)
}

func (c *Client) Delete(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, employeePath(id), nil, nil)
}

func employeePath(id uint64) string {
	return "/employees/" + strconv.FormatUint(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
