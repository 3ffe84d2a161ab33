package category

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

type CategoryDTO struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

type DeletedDTO struct {
	Message  string      `json:"message"`
	Category CategoryDTO `json:"category"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List categories
// @Description Get the current user's categories, newest first
// @Tags Category
// @Produce json
// @Success 200 {array} CategoryDTO
// @Failure 401 {object} rest.ErrorResponse "Missing or unknown user"
// @Router /api/category [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	result := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		result = append(result, toDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, result)
}

// Get godoc
// @Summary Get a category
// @Tags Category
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid id"
// @Failure 404 {object} rest.ErrorResponse "Category not found"
// @Router /api/category/{id} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if !user.Authenticated(w, r) {
		return
	}
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	c, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(c))
}

// Create godoc
// @Summary Create a category
// @Tags Category
// @Accept json
// @Produce json
// @Param category body CategoryDTO true "Category"
// @Success 201 {object} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse "Missing field"
// @Failure 401 {object} rest.ErrorResponse "Missing or unknown user"
// @Router /api/category [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !user.Authenticated(w, r) {
		return
	}
	payload, ok := decodeMutation(w, r)
	if !ok {
		return
	}
	name, _ := payload.String("name")
	color, _ := payload.String("color")
	icon, _ := payload.String("icon")

	created, err := h.service.CreateCategory(r.Context(), Category{Name: name, Color: color, Icon: icon})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Debugf("Created category %d", created.Id)
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// Update godoc
// @Summary Update a category
// @Description Blank or absent fields keep their current value
// @Tags Category
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body CategoryDTO true "Fields to change"
// @Success 200 {object} CategoryDTO
// @Failure 404 {object} rest.ErrorResponse "Category not found"
// @Router /api/category/{id} [put]
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
	var update Update
	if name, ok := payload.String("name"); ok {
		update.Name = &name
	}
	if color, ok := payload.String("color"); ok {
		update.Color = &color
	}
	if icon, ok := payload.String("icon"); ok {
		update.Icon = &icon
	}

	updated, err := h.service.UpdateCategory(r.Context(), id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

// Delete godoc
// @Summary Delete a category
// @Description Expenses of the category are kept
// @Tags Category
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} DeletedDTO
// @Failure 404 {object} rest.ErrorResponse "Category not found"
// @Router /api/category/{id} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !user.Authenticated(w, r) {
		return
	}
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	deleted, err := h.service.DeleteCategory(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, DeletedDTO{Message: "Category deleted successfully", Category: toDTO(deleted)})
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
		rest.WriteError(w, http.StatusBadRequest, "Invalid category id", rest.CodeInvalidId)
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		rest.WriteError(w, http.StatusNotFound, "Category not found", "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrMissingName):
		rest.WriteError(w, http.StatusBadRequest, "Name is required", "MISSING_NAME")
	case errors.Is(err, ErrMissingColor):
		rest.WriteError(w, http.StatusBadRequest, "Color is required", "MISSING_COLOR")
	case errors.Is(err, ErrMissingIcon):
		rest.WriteError(w, http.StatusBadRequest, "Icon is required", "MISSING_ICON")
	default:
		user.WriteAuthError(w, err)
	}
}

func toDTO(c Category) CategoryDTO {
	return CategoryDTO{Id: c.Id, Name: c.Name, Color: c.Color, Icon: c.Icon, CreatedAt: c.CreatedAt}
}
