package domain

import (
	"errors"
	"time"
)

// ErrEmployeeNotFound возвращается хранилищем, когда строка с запрошенным id отсутствует.
var ErrEmployeeNotFound = errors.New("employee not found")

// Employee представляет запись о сотруднике,
// соответствует таблице employees в бд
type Employee struct {
	ID          int64     `json:"id" db:"id" gorm:"column:id;primaryKey"`
	FirstName   string    `json:"firstName" db:"first_name" gorm:"column:first_name"`
	LastName    string    `json:"lastName" db:"last_name" gorm:"column:last_name"`
	Email       string    `json:"email" db:"email" gorm:"column:email"`
	PhoneNumber *string   `json:"phoneNumber" db:"phone_number" gorm:"column:phone_number"`
	City        *string   `json:"city" db:"city" gorm:"column:city"`
	Department  *string   `json:"department" db:"department" gorm:"column:department"`
	Salary      float64   `json:"salary" db:"salary" gorm:"column:salary"`
	Date        time.Time `json:"date" db:"created_at" gorm:"column:created_at;<-:false"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeInput — тело запроса на создание или полную замену записи.
// Отсутствующие текстовые поля остаются nil и пишутся в бд как NULL:
// обязательность firstName/lastName/email проверяет только NOT NULL в схеме.
type EmployeeInput struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	City        *string `json:"city"`
	Department  *string `json:"department"`
	Salary      Salary  `json:"salary"`
}

// Columns возвращает значения изменяемых колонок в порядке
// first_name, last_name, email, phone_number, city, department, salary.
func (in EmployeeInput) Columns() []any {
	return []any{
		in.FirstName,
		in.LastName,
		in.Email,
		in.PhoneNumber,
		in.City,
		in.Department,
		float64(in.Salary),
	}
}

func StringPtr(s string) *string {
	return &s
}

// Deref возвращает значение строки или "" для nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
