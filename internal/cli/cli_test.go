package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/GoArmGo/EmployeeApp/internal/apiclient"
	"github.com/GoArmGo/EmployeeApp/internal/cli"
	"github.com/GoArmGo/EmployeeApp/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI — минимальный сервер /api/employees поверх map.
type fakeAPI struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Employee
	gets   int
}

func newFakeAPI(t *testing.T) (*fakeAPI, string) {
	t.Helper()
	f := &fakeAPI{rows: map[int64]domain.Employee{}}

	r := chi.NewRouter()
	r.Get("/api/employees", f.list)
	r.Get("/api/employees/{id}", f.get)
	r.Post("/api/employees", f.create)
	r.Put("/api/employees/{id}", f.update)
	r.Delete("/api/employees/{id}", f.delete)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv.URL + "/api"
}

func (f *fakeAPI) add(p apiclient.Payload) domain.Employee {
	f.nextID++
	e := domain.Employee{
		ID: f.nextID, FirstName: p.FirstName, LastName: p.LastName, Email: p.Email,
		PhoneNumber: domain.StringPtr(p.PhoneNumber), City: domain.StringPtr(p.City),
		Department: domain.StringPtr(p.Department), Salary: p.Salary,
		Date: time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local),
	}
	f.rows[e.ID] = e
	return e
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) list(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Employee{}
	for id := int64(1); id <= f.nextID; id++ {
		if e, ok := f.rows[id]; ok {
			out = append(out, e)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeAPI) get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.rows[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found"})
		return
	}
	f.gets++
	writeJSON(w, http.StatusOK, e)
}

func (f *fakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var p apiclient.Payload
	_ = json.NewDecoder(r.Body).Decode(&p)
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusCreated, f.add(p))
}

func (f *fakeAPI) update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	var p apiclient.Payload
	_ = json.NewDecoder(r.Body).Decode(&p)

	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.rows[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found"})
		return
	}
	e := old
	e.FirstName, e.LastName, e.Email = p.FirstName, p.LastName, p.Email
	e.PhoneNumber, e.City, e.Department = domain.StringPtr(p.PhoneNumber), domain.StringPtr(p.City), domain.StringPtr(p.Department)
	e.Salary = p.Salary
	f.rows[id] = e
	writeJSON(w, http.StatusOK, e)
}

func (f *fakeAPI) delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found"})
		return
	}
	delete(f.rows, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := cli.Execute(context.Background(), args, &stdout, &stderr, strings.NewReader(stdin))
	return stdout.String(), stderr.String(), err
}

func TestAddAndList(t *testing.T) {
	f, api := newFakeAPI(t)

	out, _, err := run(t, "", "--api", api, "add",
		"--first-name", "Ann", "--last-name", "Lee", "--email", "ann@x.io", "--salary", "5000.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Employee added successfully!")
	assert.InDelta(t, 5000.5, f.rows[1].Salary, 0)

	out, _, err = run(t, "", "--api", api, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "No."))
	assert.Contains(t, lines[1], "Ann")
	assert.Contains(t, lines[1], "5000.5")
	assert.Contains(t, lines[1], "2026-03-02")
}

func TestAdd_ValidationFailsWithoutRequest(t *testing.T) {
	f, api := newFakeAPI(t)

	out, _, err := run(t, "", "--api", api, "add", "--first-name", "Ann", "--last-name", "Lee", "--email", "ann-at-x")
	require.Error(t, err)
	assert.Contains(t, out, "Please enter a valid email address")
	assert.Empty(t, f.rows)

	out, _, err = run(t, "", "--api", api, "add", "--last-name", "Lee")
	require.Error(t, err)
	assert.Contains(t, out, "FirstName is required")
}

func TestEdit_KeepsUnsetFields(t *testing.T) {
	f, api := newFakeAPI(t)
	f.add(apiclient.Payload{FirstName: "Bob", LastName: "Ray", Email: "bob@x.io", City: "Oslo", Salary: 1200})

	out, _, err := run(t, "", "--api", api, "edit", "1", "--email", "bob@y.io")
	require.NoError(t, err)
	assert.Contains(t, out, "Employee updated successfully!")
	assert.Contains(t, out, "bob@y.io")
	assert.Equal(t, 1, f.gets)

	got := f.rows[1]
	assert.Equal(t, "bob@y.io", got.Email)
	assert.Equal(t, "Oslo", domain.Deref(got.City))
	assert.InDelta(t, 1200.0, got.Salary, 0)

	_, stderr, err := run(t, "", "--api", api, "edit", "9", "--email", "x@y.io")
	require.Error(t, err)
	assert.Contains(t, stderr, "Employee not found")
}

func TestDelete(t *testing.T) {
	f, api := newFakeAPI(t)
	f.add(apiclient.Payload{FirstName: "Ann", LastName: "Lee", Email: "ann@x.io"})

	out, _, err := run(t, "n\n", "--api", api, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete this employee?")
	assert.Contains(t, out, "aborted")
	assert.Len(t, f.rows, 1)

	out, _, err = run(t, "", "--api", api, "delete", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Employee deleted successfully!")
	assert.Empty(t, f.rows)

	out, _, err = run(t, "y\n", "--api", api, "delete", "1")
	require.Error(t, err)
	assert.Contains(t, out, "Failed to delete employee. Please try again.")
}

func TestSeed(t *testing.T) {
	f, api := newFakeAPI(t)

	out, _, err := run(t, "", "--api", api, "seed", "--count", "5", "--seed", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "created 5 of 5 employees")

	require.Len(t, f.rows, 5)
	for _, e := range f.rows {
		assert.NotEmpty(t, e.FirstName)
		assert.Regexp(t, `^[^\s@]+@[^\s@]+\.[^\s@]+$`, e.Email)
		assert.GreaterOrEqual(t, e.Salary, 30000.0)
	}

	_, _, err = run(t, "", "--api", api, "seed", "--count", "0")
	require.Error(t, err)
}
