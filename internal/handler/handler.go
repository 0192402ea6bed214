package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/EmployeeApp/internal/domain"
	"github.com/GoArmGo/EmployeeApp/internal/usecase"
	"github.com/go-chi/chi/v5"
)

const (
	msgEmployeeNotFound = "Employee not found"
	msgEmployeeDeleted  = "Employee deleted successfully"
)

// EmployeeHandler — обработчик HTTP-запросов для работы с записями сотрудников.
type EmployeeHandler struct {
	employeeUseCase usecase.EmployeeUseCase
	logger          *slog.Logger
}

// NewEmployeeHandler создаёт новый экземпляр EmployeeHandler.
func NewEmployeeHandler(uc usecase.EmployeeUseCase, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeUseCase: uc,
		logger:          logger,
	}
}

// Routes возвращает маршруты, монтируемые под /api/employees.
func (h *EmployeeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateEmployee)
	r.Get("/", h.ListEmployees)
	r.Get("/{id}", h.GetEmployee)
	r.Put("/{id}", h.UpdateEmployee)
	r.Delete("/{id}", h.DeleteEmployee)
	return r
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// respondWithMessage — отправляет JSON-ответ с сообщением.
func respondWithMessage(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"message": message}, logger)
}

// respondWithFailure переводит ошибку usecase в 404 или 500.
// В 500 уходит исходный текст ошибки бд, без обёрток.
func (h *EmployeeHandler) respondWithFailure(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		respondWithMessage(w, http.StatusNotFound, msgEmployeeNotFound, h.logger)
		return
	}
	h.logger.Error("database error", "op", op, "error", err)
	respondWithError(w, http.StatusInternalServerError, rootCause(err).Error(), h.logger)
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// employeeID разбирает {id}. Нечисловой id не может совпасть ни с одной строкой.
func employeeID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodeInput читает тело запроса. Пустое тело равнозначно {}.
func decodeInput(r *http.Request) (domain.EmployeeInput, error) {
	var in domain.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return domain.EmployeeInput{}, err
	}
	return in, nil
}

// CreateEmployee — POST /api/employees.
func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		h.logger.Warn("invalid request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error(), h.logger)
		return
	}

	employee, err := h.employeeUseCase.CreateEmployee(r.Context(), in)
	if err != nil {
		h.respondWithFailure(w, "create", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, employee, h.logger)
}

// ListEmployees — GET /api/employees.
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeUseCase.ListEmployees(r.Context())
	if err != nil {
		h.respondWithFailure(w, "list", err)
		return
	}
	if employees == nil {
		employees = []domain.Employee{}
	}

	respondWithJSON(w, http.StatusOK, employees, h.logger)
}

// GetEmployee — GET /api/employees/{id}.
func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		respondWithMessage(w, http.StatusNotFound, msgEmployeeNotFound, h.logger)
		return
	}

	employee, err := h.employeeUseCase.GetEmployee(r.Context(), id)
	if err != nil {
		h.respondWithFailure(w, "get", err)
		return
	}

	respondWithJSON(w, http.StatusOK, employee, h.logger)
}

// UpdateEmployee — PUT /api/employees/{id}. Полная замена изменяемых полей.
func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		respondWithMessage(w, http.StatusNotFound, msgEmployeeNotFound, h.logger)
		return
	}

	in, err := decodeInput(r)
	if err != nil {
		h.logger.Warn("invalid request body", "id", id, "error", err)
		respondWithError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error(), h.logger)
		return
	}

	employee, err := h.employeeUseCase.UpdateEmployee(r.Context(), id, in)
	if err != nil {
		h.respondWithFailure(w, "update", err)
		return
	}

	respondWithJSON(w, http.StatusOK, employee, h.logger)
}

// DeleteEmployee — DELETE /api/employees/{id}.
func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		respondWithMessage(w, http.StatusNotFound, msgEmployeeNotFound, h.logger)
		return
	}

	if err := h.employeeUseCase.DeleteEmployee(r.Context(), id); err != nil {
		h.respondWithFailure(w, "delete", err)
		return
	}

	respondWithMessage(w, http.StatusOK, msgEmployeeDeleted, h.logger)
}
