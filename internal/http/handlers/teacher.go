package handlers

import (
	"net/http"
	"strconv"

	"academy-service/internal/domain"
	"academy-service/internal/logx"
)

// TeacherHandler serves HTTP endpoints for teacher resources.
type TeacherHandler struct {
	uc     teacherUsecase
	logger logx.Logger
}

// NewTeacherHandler wires a teacherUsecase into HTTP handlers.
func NewTeacherHandler(uc teacherUsecase, base *Handlers) *TeacherHandler {
	return &TeacherHandler{uc: uc, logger: base.Logger}
}

// List handles GET /teachers.
func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.List(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	out := make([]teacherSummary, 0, len(list))
	for _, t := range list {
		out = append(out, toTeacherSummary(t))
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}

// GetByID handles GET /teachers/{id}.
func (h *TeacherHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	t, err := h.uc.Get(r.Context(), id, false)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toTeacherDetail(t))
}

// Create handles POST /teachers.
func (h *TeacherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req teacherRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	t, err := h.uc.Create(r.Context(), domain.NewTeacher{Name: req.Name})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/teachers/"+strconv.FormatInt(t.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, toTeacherDetail(t))
}

// Update handles PUT /teachers/{id}.
func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req teacherUpdateRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if err := h.uc.Update(r.Context(), id, req.toDomain(), true); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /teachers/{id}.
func (h *TeacherHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// ResignFromCourse handles PUT /teachers/{id}/courses/{courseId}.
func (h *TeacherHandler) ResignFromCourse(w http.ResponseWriter, r *http.Request) {
	teacherID, courseID, ok := idsFromURL(h.logger, w, r, "id", "courseId")
	if !ok {
		return
	}
	var req teacherUpdateRequest
	if ok := decodeOptionalJSON(h.logger, w, r, &req); !ok {
		return
	}
	if err := h.uc.ResignTeacherFromCourse(r.Context(), teacherID, courseID, req.toDomain(), true); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
