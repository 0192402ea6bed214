// Package web отдаёт браузерный интерфейс: страницу с формой и таблицей сотрудников
// и статические файлы к ней.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/flosch/pongo2/v4"
)

// DefaultAPIURL — базовый адрес API, к которому обращается страница.
const DefaultAPIURL = "http://localhost:5000/api"

//go:embed templates/index.html
var indexTemplate string

//go:embed static
var staticFiles embed.FS

// FormField описывает одно поле формы сотрудника.
type FormField struct {
	Name        string
	Placeholder string
	Type        string
	Required    bool
	Step        string
}

// formRows — поля формы, по два в строке.
var formRows = [][]FormField{
	{
		{Name: "firstName", Placeholder: "First Name", Type: "text", Required: true},
		{Name: "lastName", Placeholder: "Last Name", Type: "text", Required: true},
	},
	{
		{Name: "email", Placeholder: "Email", Type: "email", Required: true},
		{Name: "phoneNumber", Placeholder: "Phone Number", Type: "tel"},
	},
	{
		{Name: "city", Placeholder: "City", Type: "text"},
		{Name: "department", Placeholder: "Department", Type: "text"},
	},
	{
		{Name: "salary", Placeholder: "Salary", Type: "number", Step: "0.01"},
	},
}

var tableColumns = []string{
	"No.", "First Name", "Last Name", "Email", "Phone", "City", "Department", "Salary", "Date", "Actions",
}

// Handler рендерит страницу и раздаёт статику.
type Handler struct {
	tpl    *pongo2.Template
	static http.Handler
	apiURL string
	logger *slog.Logger
}

// NewHandler компилирует шаблон страницы. apiURL попадает в страницу как базовый адрес API.
func NewHandler(apiURL string, logger *slog.Logger) (*Handler, error) {
	tpl, err := pongo2.FromString(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("open static files: %w", err)
	}

	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return &Handler{
		tpl:    tpl,
		static: http.StripPrefix("/static/", http.FileServer(http.FS(sub))),
		apiURL: apiURL,
		logger: logger,
	}, nil
}

// Index — GET /.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := pongo2.Context{
		"title":     "Employee Management Software",
		"api_url":   h.apiURL,
		"form_rows": formRows,
		"columns":   tableColumns,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tpl.ExecuteWriter(ctx, w); err != nil {
		h.logger.Error("Error rendering template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Static — обработчик для /static/*.
func (h *Handler) Static() http.Handler {
	return h.static
}
