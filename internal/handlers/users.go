// Package handlers exposes the directory service as a thin JSON API. The
// handlers decode, validate, call the service and translate its error
// taxonomy into HTTP statuses; all business logic lives below them.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/trrlb/user-directory/internal/directory"
	"github.com/trrlb/user-directory/internal/httpx"
	"github.com/trrlb/user-directory/internal/models"
	"github.com/trrlb/user-directory/internal/validation"
)

// UserHandler serves the user directory endpoints.
type UserHandler struct {
	svc *directory.Service
}

// NewUserHandler creates a user handler over the directory service.
func NewUserHandler(svc *directory.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// userPayload is the request body for create and update. Password may be
// empty on update only; every other field is written as given.
type userPayload struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	Active       *bool   `json:"active"`
	TeamID       *uint   `json:"team_id"`
	Bio          string  `json:"bio"`
	Twitter      *string `json:"twitter"`
	ProfessionID *uint   `json:"profession_id"`
	Skills       []uint  `json:"skills"`
}

func (p userPayload) validate(requirePassword bool) validation.Violations {
	v := validation.Violations{}
	validation.Required("first_name", p.FirstName, v)
	validation.Required("email", p.Email, v)
	validation.Email("email", p.Email, v)
	if requirePassword {
		validation.Required("password", p.Password, v)
	}
	validation.Required("bio", p.Bio, v)
	validation.URL("twitter", p.Twitter, v)
	validation.In("role", p.Role, models.Roles(), v)
	return v
}

func (p userPayload) input() directory.UserInput {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return directory.UserInput{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Password:     p.Password,
		Role:         p.Role,
		Active:       active,
		TeamID:       p.TeamID,
		Bio:          p.Bio,
		Twitter:      p.Twitter,
		ProfessionID: p.ProfessionID,
		SkillIDs:     p.Skills,
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		fail(w, err)
		return
	}
	page, err := h.svc.List(q)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

// Trash handles GET /users/trash: the same listing shape over soft-deleted
// rows only.
func (h *UserHandler) Trash(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		fail(w, err)
		return
	}
	page, err := h.svc.Trashed(q)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

// Show handles GET /users/{id}.
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, err)
		return
	}
	user, err := h.svc.Get(id)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := p.validate(true); !v.Empty() {
		fail(w, v)
		return
	}
	id, err := h.svc.Create(p.input())
	if err != nil {
		fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": id})
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, err)
		return
	}
	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := p.validate(false); !v.Empty() {
		fail(w, v)
		return
	}
	if err := h.svc.Update(id, p.input()); err != nil {
		fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": id})
}

// Delete handles DELETE /users/{id} (soft delete).
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, err)
		return
	}
	if err := h.svc.Delete(id); err != nil {
		fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// Restore handles POST /users/{id}/restore.
func (h *UserHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, err)
		return
	}
	if err := h.svc.Restore(id); err != nil {
		fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"restored": id})
}

// queryFromRequest builds the immutable listing parameters from the URL.
// Non-numeric or non-positive page values are rejected here so the builder
// only ever sees well-formed numbers.
func queryFromRequest(r *http.Request) (directory.Query, error) {
	qs := r.URL.Query()
	q := directory.Query{
		State:     qs.Get("state"),
		Search:    qs.Get("search"),
		Sort:      qs.Get("sort"),
		Direction: qs.Get("direction"),
	}
	if s := qs.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return q, fmt.Errorf("%w: page %q", directory.ErrInvalidParameter, s)
		}
		q.Page = n
	}
	if s := qs.Get("per_page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return q, fmt.Errorf("%w: per_page %q", directory.ErrInvalidParameter, s)
		}
		q.PerPage = n
	}
	return q, nil
}

func pathID(r *http.Request) (uint, error) {
	s := r.PathValue("id")
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: id %q", directory.ErrInvalidParameter, s)
	}
	return uint(n), nil
}

// fail maps the directory error taxonomy onto HTTP statuses.
func fail(w http.ResponseWriter, err error) {
	var v validation.Violations
	switch {
	case errors.As(err, &v):
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", v)
	case errors.Is(err, directory.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, directory.ErrConstraintViolation):
		httpx.JSONError(w, http.StatusConflict, "constraint_violation", err.Error())
	case errors.Is(err, directory.ErrInvalidParameter):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
