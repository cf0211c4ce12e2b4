package handlers

import (
	"net/http"
	"strconv"

	"academy-service/internal/domain"
	"academy-service/internal/logx"
)

// StudentHandler serves HTTP endpoints for student resources.
type StudentHandler struct {
	uc     studentUsecase
	logger logx.Logger
}

// NewStudentHandler wires a studentUsecase into HTTP handlers.
func NewStudentHandler(uc studentUsecase, base *Handlers) *StudentHandler {
	return &StudentHandler{uc: uc, logger: base.Logger}
}

// List handles GET /students.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.List(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	out := make([]studentSummary, 0, len(list))
	for _, s := range list {
		out = append(out, toStudentSummary(s))
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}

// GetByID handles GET /students/{id}.
func (h *StudentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	s, err := h.uc.Get(r.Context(), id, false)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toStudentDetail(s))
}

// Create handles POST /students.
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	s, err := h.uc.Create(r.Context(), domain.NewStudent{FirstName: req.FirstName, LastName: req.LastName})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/students/"+strconv.FormatInt(s.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, toStudentDetail(s))
}

// Update handles PUT /students/{id}.
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req studentUpdateRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if err := h.uc.Update(r.Context(), id, req.toDomain(), true); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /students/{id}.
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.uc.Delete(r.Context(), id, false); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EnrollInCourse handles PUT /students/{id}/courses/{courseId}.
func (h *StudentHandler) EnrollInCourse(w http.ResponseWriter, r *http.Request) {
	studentID, courseID, ok := idsFromURL(h.logger, w, r, "id", "courseId")
	if !ok {
		return
	}
	var req studentUpdateRequest
	if ok := decodeOptionalJSON(h.logger, w, r, &req); !ok {
		return
	}
	if err := h.uc.EnrollStudentInCourse(r.Context(), studentID, courseID, req.toDomain(), true); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
