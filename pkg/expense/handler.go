package expense

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/spendwise/spendwise/internal/rest"
	"github.com/spendwise/spendwise/pkg/user"
	log "github.com/sirupsen/logrus"
)

const (
	codeInvalidAmount      = "INVALID_AMOUNT"
	codeInvalidDescription = "INVALID_DESCRIPTION"
	codeInvalidCategoryId  = "INVALID_CATEGORY_ID"
	codeInvalidDate        = "INVALID_DATE"
)

type ExpenseDTO struct {
	Id          int       `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CategoryId  int       `json:"categoryId"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

type DeletedDTO struct {
	Message string     `json:"message"`
	Expense ExpenseDTO `json:"expense"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List expenses
// @Description Ledger query over the current user's expenses, newest date first
// @Tags Expense
// @Produce json
// @Param startDate query string false "Inclusive lower bound on date"
// @Param endDate query string false "Inclusive upper bound on date"
// @Param categoryId query int false "Only expenses of this category"
// @Param limit query int false "Page size, 1 to 200, default 50"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} ExpenseDTO
// @Failure 401 {object} rest.ErrorResponse "Missing or unknown user"
// @Router /api/expense [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ParseFilter(r.URL.Query())
	log.Tracef("Listing expenses with filter %+v", filter)

	expenses, err := h.service.ListExpenses(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	result := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		result = append(result, toDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

// Get godoc
// @Summary Get an expense
// @Tags Expense
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid id"
// @Failure 404 {object} rest.ErrorResponse "Expense not found"
// @Router /api/expense/{id} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if !user.Authenticated(w, r) {
		return
	}
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	e, err := h.service.GetExpense(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(e))
}

// Create godoc
// @Summary Create an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body ExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid field"
// @Failure 401 {object} rest.ErrorResponse "Missing or unknown user"
// @Router /api/expense [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !user.Authenticated(w, r) {
		return
	}
	payload, ok := decodeMutation(w, r)
	if !ok {
		return
	}
	update, fieldErr := parseFields(payload, true)
	if fieldErr != nil {
		rest.WriteError(w, http.StatusBadRequest, fieldErr.Message, fieldErr.Code)
		return
	}

	created, err := h.service.CreateExpense(r.Context(), update.apply(Expense{}))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Debugf("Created expense %d", created.Id)
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// Update godoc
// @Summary Update an expense
// @Description Only the fields present in the body are changed
// @Tags Expense
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param expense body ExpenseDTO true "Fields to change"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid field"
// @Failure 404 {object} rest.ErrorResponse "Expense not found"
// @Router /api/expense/{id} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !user.Authenticated(w, r) {
		return
	}
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	payload, ok := decodeMutation(w, r)
	if !ok {
		return
	}
	update, fieldErr := parseFields(payload, false)
	if fieldErr != nil {
		rest.WriteError(w, http.StatusBadRequest, fieldErr.Message, fieldErr.Code)
		return
	}

	updated, err := h.service.UpdateExpense(r.Context(), id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

// Delete godoc
// @Summary Delete an expense
// @Tags Expense
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} DeletedDTO
// @Failure 404 {object} rest.ErrorResponse "Expense not found"
// @Router /api/expense/{id} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !user.Authenticated(w, r) {
		return
	}
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	deleted, err := h.service.DeleteExpense(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, DeletedDTO{Message: "Expense deleted successfully", Expense: toDTO(deleted)})
}

// parseFields checks the JSON types of the expense fields. When required is set every
// field must be present; otherwise absent fields stay nil in the returned Update.
func parseFields(p rest.Payload, required bool) (Update, *rest.FieldError) {
	var update Update

	if required || p.Has("amount") {
		amount, ok := p.Decimal("amount")
		if !ok || !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
			return Update{}, &rest.FieldError{Code: codeInvalidAmount, Message: "Amount must be a positive number"}
		}
		update.Amount = &amount
	}
	if required || p.Has("description") {
		description, ok := p.String("description")
		if !ok {
			return Update{}, &rest.FieldError{Code: codeInvalidDescription, Message: "Description is required"}
		}
		update.Description = &description
	}
	if required || p.Has("categoryId") {
		categoryId, ok := p.Int("categoryId")
		if !ok || categoryId <= 0 {
			return Update{}, &rest.FieldError{Code: codeInvalidCategoryId, Message: "Category id must be a positive integer"}
		}
		update.CategoryId = &categoryId
	}
	if required || p.Has("date") {
		date, ok := p.String("date")
		if !ok {
			return Update{}, &rest.FieldError{Code: codeInvalidDate, Message: "Date must be an ISO-8601 date"}
		}
		update.Date = &date
	}
	return update, nil
}

func decodeMutation(w http.ResponseWriter, r *http.Request) (rest.Payload, bool) {
	payload, err := rest.DecodePayload(r.Body)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", rest.CodeInvalidBody)
		return nil, false
	}
	if err := rest.RejectOwnerFields(payload); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error(), rest.CodeUserIdNotAllowed)
		return nil, false
	}
	return payload, true
}

func pathId(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense id", rest.CodeInvalidId)
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrExpenseNotFound):
		rest.WriteError(w, http.StatusNotFound, "Expense not found", "EXPENSE_NOT_FOUND")
	case errors.Is(err, ErrInvalidAmount):
		rest.WriteError(w, http.StatusBadRequest, "Amount must be a positive number", codeInvalidAmount)
	case errors.Is(err, ErrInvalidDescription):
		rest.WriteError(w, http.StatusBadRequest, "Description is required", codeInvalidDescription)
	case errors.Is(err, ErrInvalidDate):
		rest.WriteError(w, http.StatusBadRequest, "Date must be an ISO-8601 date", codeInvalidDate)
	default:
		user.WriteAuthError(w, err)
	}
}

func toDTO(e Expense) ExpenseDTO {
	return ExpenseDTO{
		Id:          e.Id,
		Amount:      e.Amount.InexactFloat64(),
		Description: e.Description,
		CategoryId:  e.CategoryId,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}
