package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"

	"academy-service/internal/http/handlers"
	"academy-service/internal/http/middleware"
	"academy-service/internal/http/middleware/ratelimit"
	"academy-service/internal/http/router"
	"academy-service/internal/logx"
	"academy-service/internal/metrics"
	"academy-service/internal/service/course"
	"academy-service/internal/service/student"
	"academy-service/internal/service/teacher"
	"academy-service/internal/testutil/memstore"
)

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

func newRouter(t *testing.T, store *memstore.Store, limiter ratelimit.Limiter) http.Handler {
	t.Helper()

	reg := prometheus.NewRegistry()
	changes, err := metrics.NewChanges(reg)
	require.NoError(t, err)
	httpMetrics, err := metrics.NewHTTP(reg)
	require.NoError(t, err)

	logger := logx.Nop()
	base := handlers.New(logger)
	ts := teacher.NewService(store, time.Second, logger, changes)
	ss := student.NewService(store, time.Second, logger, changes)
	cs := course.NewService(store, time.Second, logger, changes)

	return router.New(router.Params{
		Base:          base,
		Teachers:      handlers.NewTeacherHandler(handlers.NewTeacherUsecase(ts), base),
		Students:      handlers.NewStudentHandler(handlers.NewStudentUsecase(ss), base),
		Courses:       handlers.NewCourseHandler(handlers.NewCourseUsecase(cs), base),
		Observability: middleware.Observability(logger, httpMetrics),
		Throttle:      ratelimit.New(logger, httpMetrics.Throttled, limiter).Handler(),
		Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Liveness(t *testing.T) {
	t.Parallel()

	h := newRouter(t, memstore.New(), nil)

	rr := do(t, h, http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"message":"pong"}`, rr.Body.String())

	rr = do(t, h, http.MethodHead, "/healthcheck", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/unknown", "")
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodPatch, "/ping", "")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouter_EnrollmentLifecycle(t *testing.T) {
	t.Parallel()

	h := newRouter(t, memstore.New(), nil)

	rr := do(t, h, http.MethodPost, "/teachers", `{"name":"Ken Berry"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	teacherLoc := rr.Header().Get("Location")

	rr = do(t, h, http.MethodPost, "/courses", `{"title":"Calculus"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	courseLoc := rr.Header().Get("Location")

	rr = do(t, h, http.MethodPost, "/students", `{"first_name":"Mary","last_name":"Ostin"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	studentLoc := rr.Header().Get("Location")

	teacherID := strings.TrimPrefix(teacherLoc, "/teachers/")
	courseID := strings.TrimPrefix(courseLoc, "/courses/")
	studentID := strings.TrimPrefix(studentLoc, "/students/")

	rr = do(t, h, http.MethodPut, courseLoc+"/teachers/"+teacherID, "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodPut, studentLoc+"/courses/"+courseID, `{"first_name":"Marie"}`)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodPut, studentLoc+"/courses/"+courseID, "")
	require.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodGet, courseLoc, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var detail struct {
		Teacher *struct {
			Name string `json:"name"`
		} `json:"teacher"`
		Students []struct {
			FirstName string `json:"first_name"`
		} `json:"students"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	require.NotNil(t, detail.Teacher)
	require.Equal(t, "Ken Berry", detail.Teacher.Name)
	require.Len(t, detail.Students, 1)
	require.Equal(t, "Marie", detail.Students[0].FirstName)

	rr = do(t, h, http.MethodPut, courseLoc+"/students/"+studentID, "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodPut, courseLoc+"/students/"+studentID, "")
	require.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodPut, teacherLoc+"/courses/"+courseID, "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodPut, teacherLoc+"/courses/"+courseID, "")
	require.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodGet, "/courses", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[{"id":`+courseID+`,"title":"Calculus","teacher_id":null}]`, rr.Body.String())
}

func TestRouter_NotFoundAndValidation(t *testing.T) {
	t.Parallel()

	h := newRouter(t, memstore.New(), nil)

	rr := do(t, h, http.MethodGet, "/students/42", "")
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodPut, "/students/42/courses/1", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Body.String(), "student with id 42")

	rr = do(t, h, http.MethodPost, "/courses", `{"title":"`+strings.Repeat("x", 61)+`"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), "maximum length for the title is 60 characters")

	rr = do(t, h, http.MethodDelete, "/teachers/0", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_ThrottlesWritesOnly(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	store.AddTeacher("Ken Berry")
	h := newRouter(t, store, denyAll{})

	rr := do(t, h, http.MethodPost, "/teachers", `{"name":"Anthony Chaffee"}`)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)

	rr = do(t, h, http.MethodGet, "/teachers", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[{"id":1,"name":"Ken Berry"}]`, rr.Body.String())
}

func TestRouter_MetricsExposition(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	sid := store.AddStudent("Mary", "Ostin")
	cid := store.AddCourse("History", nil)
	h := newRouter(t, store, nil)

	rr := do(t, h, http.MethodPut, "/students/"+strconv.FormatInt(sid, 10)+"/courses/"+strconv.FormatInt(cid, 10), "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, `academy_relationship_changes_total{operation="enroll"} 1`)
	require.Contains(t, body, `academy_http_requests_total{method="PUT",path="/students/{id}/courses/{courseId}",status="204"} 1`)
}
