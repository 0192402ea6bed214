// Package apiclient — HTTP-клиент к /api/employees для терминального интерфейса и seed.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GoArmGo/EmployeeApp/internal/domain"
)

// DefaultBaseURL — адрес API по умолчанию.
const DefaultBaseURL = "http://localhost:5000/api"

// Payload — тело create/update в том виде, в каком его отправляет форма:
// все текстовые поля строками, зарплата уже приведена к числу.
type Payload struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	City        string  `json:"city"`
	Department  string  `json:"department"`
	Salary      float64 `json:"salary"`
}

// APIError — неуспешный ответ сервера.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

// IsNotFound сообщает, что сервер ответил 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ServerMessage возвращает текст поля error из ответа сервера, если он был.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// Client выполняет запросы к API сотрудников.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New создаёт клиент. Пустой baseURL заменяется на DefaultBaseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) employeeURL(id int64) string {
	return c.baseURL + "/employees/" + strconv.FormatInt(id, 10)
}

// do выполняет запрос и декодирует ответ в out (если out != nil).
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(bodyBytes, &body); err == nil {
		apiErr.Message = body.Error
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}

// ListEmployees — GET /employees.
func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var list []domain.Employee
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/employees", nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Employee{}
	}
	return list, nil
}

// GetEmployee — GET /employees/{id}.
func (c *Client) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	var e domain.Employee
	if err := c.do(ctx, http.MethodGet, c.employeeURL(id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEmployee — POST /employees.
func (c *Client) CreateEmployee(ctx context.Context, p Payload) (*domain.Employee, error) {
	var e domain.Employee
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/employees", p, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEmployee — PUT /employees/{id}.
func (c *Client) UpdateEmployee(ctx context.Context, id int64, p Payload) (*domain.Employee, error) {
	var e domain.Employee
	if err := c.do(ctx, http.MethodPut, c.employeeURL(id), p, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEmployee — DELETE /employees/{id}.
func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.employeeURL(id), nil, nil)
}
