package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/GoArmGo/EmployeeApp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"5000.5", 5000.5},
		{"  42 ", 42},
		{"12abc", 12},
		{"-3.25", -3.25},
		{".5", 0.5},
		{"1e3", 1000},
		{"1e999", 0},
		{"abc", 0},
		{"", 0},
		{"Infinity", 0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, domain.ParseSalary(tc.in), 1e-9, tc.in)
	}
}

func TestEmployeeInput_SalaryCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want float64
	}{
		{"number", `{"salary": 5000.5}`, 5000.5},
		{"numeric string", `{"salary": "5000.5"}`, 5000.5},
		{"garbage string", `{"salary": "lots"}`, 0},
		{"empty string", `{"salary": ""}`, 0},
		{"null", `{"salary": null}`, 0},
		{"bool", `{"salary": true}`, 0},
		{"object", `{"salary": {"amount": 1}}`, 0},
		{"array", `{"salary": [1, 2]}`, 0},
		{"absent", `{}`, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var in domain.EmployeeInput
			require.NoError(t, json.Unmarshal([]byte(tc.body), &in))
			assert.InDelta(t, tc.want, float64(in.Salary), 1e-9)
		})
	}
}

func TestEmployeeInput_MissingTextFieldsStayNil(t *testing.T) {
	t.Parallel()

	var in domain.EmployeeInput
	require.NoError(t, json.Unmarshal([]byte(`{"firstName":"Ann","city":""}`), &in))

	require.NotNil(t, in.FirstName)
	assert.Equal(t, "Ann", *in.FirstName)
	assert.Nil(t, in.LastName)
	assert.Nil(t, in.Email)
	require.NotNil(t, in.City)
	assert.Empty(t, *in.City)

	cols := in.Columns()
	require.Len(t, cols, 7)
	assert.Equal(t, 0.0, cols[6])
}

func TestEmployee_JSONShape(t *testing.T) {
	t.Parallel()

	e := domain.Employee{ID: 1, FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Salary: 5000.5}
	raw, err := json.Marshal(e)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 1, "firstName": "Ann", "lastName": "Lee", "email": "ann@x.com",
		"phoneNumber": null, "city": null, "department": null,
		"salary": 5000.5, "date": "0001-01-01T00:00:00Z"
	}`, string(raw))
}
