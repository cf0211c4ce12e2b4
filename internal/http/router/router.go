package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"academy-service/internal/http/handlers"
)

// Params groups everything the router mounts. Nil middlewares and a nil
// Metrics handler are skipped.
type Params struct {
	Base     *handlers.Handlers
	Teachers *handlers.TeacherHandler
	Students *handlers.StudentHandler
	Courses  *handlers.CourseHandler

	Observability func(http.Handler) http.Handler
	Throttle      func(http.Handler) http.Handler
	Metrics       http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(p Params) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if p.Observability != nil {
		r.Use(p.Observability)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/ping", p.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(p.Base.HealthcheckHead))
	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics)
	}
	r.NotFound(p.Base.NotFound)
	r.MethodNotAllowed(p.Base.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		if p.Throttle != nil {
			r.Use(p.Throttle)
		}

		r.Route("/teachers", func(r chi.Router) {
			r.Get("/", p.Teachers.List)
			r.Post("/", p.Teachers.Create)
			r.Get("/{id}", p.Teachers.GetByID)
			r.Put("/{id}", p.Teachers.Update)
			r.Delete("/{id}", p.Teachers.Delete)
			r.Put("/{id}/courses/{courseId}", p.Teachers.ResignFromCourse)
		})

		r.Route("/students", func(r chi.Router) {
			r.Get("/", p.Students.List)
			r.Post("/", p.Students.Create)
			r.Get("/{id}", p.Students.GetByID)
			r.Put("/{id}", p.Students.Update)
			r.Delete("/{id}", p.Students.Delete)
			r.Put("/{id}/courses/{courseId}", p.Students.EnrollInCourse)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", p.Courses.List)
			r.Post("/", p.Courses.Create)
			r.Get("/{id}", p.Courses.GetByID)
			r.Put("/{id}", p.Courses.Update)
			r.Delete("/{id}", p.Courses.Delete)
			r.Put("/{id}/teachers/{teacherId}", p.Courses.AppointTeacher)
			r.Put("/{id}/students/{studentId}", p.Courses.ExcludeStudent)
		})
	})

	return r
}
