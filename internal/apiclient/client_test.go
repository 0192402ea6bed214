package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoArmGo/EmployeeApp/internal/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmployee_SendsFormPayload(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/employees", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":5,"firstName":"Ann","lastName":"Lee","email":"ann@x.io","phoneNumber":"","city":"","department":"","salary":5000.5,"date":"2026-03-02T10:00:00Z"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL+"/api/", nil)
	e, err := c.CreateEmployee(context.Background(), apiclient.Payload{
		FirstName: "Ann", LastName: "Lee", Email: "ann@x.io", Salary: 5000.5,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), e.ID)
	assert.InDelta(t, 5000.5, e.Salary, 0)
	assert.Equal(t, "", got["phoneNumber"])
	assert.InDelta(t, 5000.5, got["salary"], 0)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/employees/1":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Employee not found"}`))
		case "/api/employees":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"pq: null value in column \"email\""}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL+"/api", nil)
	ctx := context.Background()

	err := c.DeleteEmployee(ctx, 1)
	require.Error(t, err)
	assert.True(t, apiclient.IsNotFound(err))

	_, err = c.CreateEmployee(ctx, apiclient.Payload{FirstName: "Ann"})
	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, `pq: null value in column "email"`, apiclient.ServerMessage(err))
	assert.False(t, apiclient.IsNotFound(err))

	_, err = c.GetEmployee(ctx, 2)
	require.Error(t, err)
	assert.Equal(t, "", apiclient.ServerMessage(err))
	assert.Equal(t, "api returned status 502", err.Error())
}

func TestListAndUpdate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/employees":
			_, _ = w.Write([]byte(`[]`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/employees/3":
			_, _ = w.Write([]byte(`{"id":3,"firstName":"Bob","lastName":"Ray","email":"bob@x.io","salary":0,"date":"2026-03-02T10:00:00Z"}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL+"/api", nil)

	list, err := c.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	e, err := c.UpdateEmployee(context.Background(), 3, apiclient.Payload{FirstName: "Bob", LastName: "Ray", Email: "bob@x.io"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", e.FirstName)
	assert.Nil(t, e.City)
}

func TestNew_DefaultBaseURL(t *testing.T) {
	t.Parallel()

	c := apiclient.New("", nil)
	require.NotNil(t, c)
	assert.Equal(t, "http://localhost:5000/api", apiclient.DefaultBaseURL)
}
