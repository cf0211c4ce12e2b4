package handlers

import (
	"net/http"
	"strconv"

	"academy-service/internal/domain"
	"academy-service/internal/logx"
)

// CourseHandler serves HTTP endpoints for course resources.
type CourseHandler struct {
	uc     courseUsecase
	logger logx.Logger
}

// NewCourseHandler wires a courseUsecase into HTTP handlers.
func NewCourseHandler(uc courseUsecase, base *Handlers) *CourseHandler {
	return &CourseHandler{uc: uc, logger: base.Logger}
}

// List handles GET /courses.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.List(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toCourseSummaries(list))
}

// GetByID handles GET /courses/{id}.
func (h *CourseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	c, err := h.uc.Get(r.Context(), id, false)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toCourseDetail(c))
}

// Create handles POST /courses.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	c, err := h.uc.Create(r.Context(), domain.NewCourse{Title: req.Title})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/courses/"+strconv.FormatInt(c.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, toCourseDetail(c))
}

// Update handles PUT /courses/{id}.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req courseUpdateRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if err := h.uc.Update(r.Context(), id, req.toDomain(), true); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /courses/{id}.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// AppointTeacher handles PUT /courses/{id}/teachers/{teacherId}.
func (h *CourseHandler) AppointTeacher(w http.ResponseWriter, r *http.Request) {
	courseID, teacherID, ok := idsFromURL(h.logger, w, r, "id", "teacherId")
	if !ok {
		return
	}
	var req courseUpdateRequest
	if ok := decodeOptionalJSON(h.logger, w, r, &req); !ok {
		return
	}
	if err := h.uc.AppointTeacherForCourse(r.Context(), courseID, teacherID, req.toDomain(), true); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExcludeStudent handles PUT /courses/{id}/students/{studentId}.
func (h *CourseHandler) ExcludeStudent(w http.ResponseWriter, r *http.Request) {
	courseID, studentID, ok := idsFromURL(h.logger, w, r, "id", "studentId")
	if !ok {
		return
	}
	var req courseUpdateRequest
	if ok := decodeOptionalJSON(h.logger, w, r, &req); !ok {
		return
	}
	if err := h.uc.ExcludeStudentFromCourse(r.Context(), courseID, studentID, req.toDomain(), true); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
