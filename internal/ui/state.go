// Package ui содержит состояние клиентского интерфейса: список, черновик формы,
// режим редактирования, временное сообщение и флаг загрузки.
// Список — кэш данных сервера: он перечитывается целиком при загрузке и после ответа 404.
package ui

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/GoArmGo/EmployeeApp/internal/apiclient"
	"github.com/GoArmGo/EmployeeApp/internal/domain"
)

// MessageTTL — сколько живёт сообщение о результате операции.
const MessageTTL = 5 * time.Second

const (
	MsgAdded         = "Employee added successfully!"
	MsgUpdated       = "Employee updated successfully!"
	MsgDeleted       = "Employee deleted successfully!"
	MsgInvalidEmail  = "Please enter a valid email address"
	MsgSaveFailed    = "Failed to save record. Please try again."
	MsgDeleteFailed  = "Failed to delete employee. Please try again."
	MsgFetchFailed   = "Failed to fetch employees. Please try again."
	MsgNotInList     = "Employee not found"
	MsgDeleteConfirm = "Are you sure you want to delete this employee?"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	// ErrInvalidDraft — черновик не прошёл проверку, запрос не отправлялся.
	ErrInvalidDraft = errors.New("invalid draft")
	// ErrBusy — предыдущая операция ещё выполняется.
	ErrBusy = errors.New("operation in progress")
	// ErrCancelled — пользователь не подтвердил удаление.
	ErrCancelled = errors.New("cancelled")
)

// API — операции сервера, которые использует интерфейс.
type API interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	CreateEmployee(ctx context.Context, p apiclient.Payload) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, p apiclient.Payload) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// Kind сообщения.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Message struct {
	Text    string
	Kind    Kind
	expires time.Time
}

// Draft — значения полей формы, все строками.
type Draft struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	City        string
	Department  string
	Salary      string
}

// Payload приводит черновик к телу запроса. Зарплата без числового префикса даёт 0.
func (d Draft) Payload() apiclient.Payload {
	return apiclient.Payload{
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		City:        d.City,
		Department:  d.Department,
		Salary:      domain.ParseSalary(d.Salary),
	}
}

// Validate возвращает текст ошибки или "".
func (d Draft) Validate() string {
	required := []struct{ name, value string }{
		{"firstName", d.FirstName},
		{"lastName", d.LastName},
		{"email", d.Email},
	}
	for _, f := range required {
		if f.value == "" {
			return strings.ToUpper(f.name[:1]) + f.name[1:] + " is required"
		}
	}
	if !emailPattern.MatchString(d.Email) {
		return MsgInvalidEmail
	}
	return ""
}

// DraftFromEmployee копирует запись в черновик для редактирования.
func DraftFromEmployee(e domain.Employee) Draft {
	salary := ""
	if e.Salary != 0 {
		salary = strconv.FormatFloat(e.Salary, 'f', -1, 64)
	}
	return Draft{
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		PhoneNumber: domain.Deref(e.PhoneNumber),
		City:        domain.Deref(e.City),
		Department:  domain.Deref(e.Department),
		Salary:      salary,
	}
}

// State — состояние интерфейса. Не потокобезопасно: им владеет один цикл событий.
type State struct {
	api API
	now func() time.Time

	Employees []domain.Employee
	Draft     Draft
	editID    int64
	editing   bool
	message   Message
	Loading   bool
}

// Option настраивает State.
type Option func(*State)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

func New(api API, opts ...Option) *State {
	s := &State{api: api, now: time.Now, Employees: []domain.Employee{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Message возвращает текущее сообщение, если оно ещё не истекло.
func (s *State) Message() (Message, bool) {
	if s.message.Text == "" || !s.now().Before(s.message.expires) {
		return Message{}, false
	}
	return s.message, true
}

func (s *State) show(text string, kind Kind) {
	s.message = Message{Text: text, Kind: kind, expires: s.now().Add(MessageTTL)}
}

// Editing возвращает id редактируемой записи.
func (s *State) Editing() (int64, bool) {
	return s.editID, s.editing
}

// Load перечитывает список с сервера.
func (s *State) Load(ctx context.Context) error {
	list, err := s.api.ListEmployees(ctx)
	if err != nil {
		s.show(MsgFetchFailed, KindError)
		return err
	}
	s.Employees = list
	return nil
}

// Edit копирует запись с данным id в черновик и включает режим редактирования.
func (s *State) Edit(id int64) error {
	if s.Loading {
		return ErrBusy
	}
	for _, e := range s.Employees {
		if e.ID == id {
			s.Draft = DraftFromEmployee(e)
			s.editID, s.editing = id, true
			return nil
		}
	}
	s.show(MsgNotInList, KindError)
	return domain.ErrEmployeeNotFound
}

// Open читает запись с сервера и включает режим редактирования без загрузки всего списка.
func (s *State) Open(ctx context.Context, id int64) error {
	if s.Loading {
		return ErrBusy
	}
	e, err := s.api.GetEmployee(ctx, id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			s.show(MsgNotInList, KindError)
			return domain.ErrEmployeeNotFound
		}
		s.show(MsgFetchFailed, KindError)
		return err
	}
	s.Draft = DraftFromEmployee(*e)
	s.editID, s.editing = id, true
	return nil
}

// CancelEdit сбрасывает черновик и выходит из режима редактирования.
func (s *State) CancelEdit() {
	s.Draft = Draft{}
	s.editID, s.editing = 0, false
}

// Submit проверяет черновик и отправляет create или update.
func (s *State) Submit(ctx context.Context) error {
	if s.Loading {
		return ErrBusy
	}
	if problem := s.Draft.Validate(); problem != "" {
		s.show(problem, KindError)
		return ErrInvalidDraft
	}

	s.Loading = true
	defer func() { s.Loading = false }()

	payload := s.Draft.Payload()

	if s.editing {
		updated, err := s.api.UpdateEmployee(ctx, s.editID, payload)
		if err != nil {
			return s.saveFailed(ctx, err)
		}
		for i := range s.Employees {
			if s.Employees[i].ID == s.editID {
				s.Employees[i] = *updated
			}
		}
		s.show(MsgUpdated, KindSuccess)
	} else {
		created, err := s.api.CreateEmployee(ctx, payload)
		if err != nil {
			return s.saveFailed(ctx, err)
		}
		s.Employees = append(s.Employees, *created)
		s.show(MsgAdded, KindSuccess)
	}

	s.CancelEdit()
	return nil
}

func (s *State) saveFailed(ctx context.Context, err error) error {
	text := apiclient.ServerMessage(err)
	if text == "" || apiclient.IsNotFound(err) {
		text = MsgSaveFailed
	}
	s.show(text, KindError)
	if apiclient.IsNotFound(err) {
		s.CancelEdit()
	}
	s.refreshOnNotFound(ctx, err)
	return err
}

// Delete удаляет запись после подтверждения.
func (s *State) Delete(ctx context.Context, id int64, confirm func(prompt string) bool) error {
	if s.Loading {
		return ErrBusy
	}
	if !confirm(MsgDeleteConfirm) {
		return ErrCancelled
	}

	s.Loading = true
	defer func() { s.Loading = false }()

	if err := s.api.DeleteEmployee(ctx, id); err != nil {
		s.show(MsgDeleteFailed, KindError)
		s.refreshOnNotFound(ctx, err)
		return err
	}

	kept := s.Employees[:0]
	for _, e := range s.Employees {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.Employees = kept
	s.show(MsgDeleted, KindSuccess)
	return nil
}

// refreshOnNotFound перечитывает список, если запись уже изменил другой клиент.
// Сообщение об ошибке сохранения при этом не затирается.
func (s *State) refreshOnNotFound(ctx context.Context, err error) {
	if !apiclient.IsNotFound(err) {
		return
	}
	if list, listErr := s.api.ListEmployees(ctx); listErr == nil {
		s.Employees = list
	}
}

// Rows возвращает строки таблицы: порядковый номер, поля и дату в локальной зоне.
func (s *State) Rows() [][]string {
	rows := make([][]string, 0, len(s.Employees))
	for i, e := range s.Employees {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.FirstName,
			e.LastName,
			e.Email,
			domain.Deref(e.PhoneNumber),
			domain.Deref(e.City),
			domain.Deref(e.Department),
			strconv.FormatFloat(e.Salary, 'f', -1, 64),
			e.Date.Local().Format("2006-01-02"),
			strconv.FormatInt(e.ID, 10),
		})
	}
	return rows
}

// Columns — заголовки для Rows.
var Columns = []string{"No.", "First Name", "Last Name", "Email", "Phone", "City", "Department", "Salary", "Date", "ID"}
