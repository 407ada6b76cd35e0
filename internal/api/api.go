package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rollcall-io/rollcall/internal/auth"
	"github.com/rollcall-io/rollcall/internal/config"
	"github.com/rollcall-io/rollcall/internal/database"
)

// Api wires the HTTP surface to the token issuer, the validator and the
// record store.
type Api struct {
	Config *config.Config
	Router *chi.Mux

	db     *database.DB
	tokens *auth.TokenManager
	authn  *auth.Authenticator
}

func New(cfg *config.Config, db *database.DB, tokens *auth.TokenManager) *Api {
	api := &Api{
		Config: cfg,
		Router: chi.NewRouter(),
		db:     db,
		tokens: tokens,
		authn:  auth.NewAuthenticator(tokens, db),
	}
	api.setupRoutes()
	return api
}

func (api *Api) setupRoutes() {
	r := api.Router

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Heartbeat("/heartbeat"))

	// Login is the only public endpoint.
	r.Post("/auth/token", api.LoginHandler)

	// Everything else requires a validated identity. Reads stay open to
	// any authenticated role; writes are role-gated below.
	r.Group(func(r chi.Router) {
		r.Use(api.authenticate)

		r.Get("/users", api.ListUsersHandler)
		r.Get("/users/{id}", api.GetUserHandler)
		r.Get("/departments", api.ListDepartmentsHandler)
		r.Get("/departments/{id}", api.GetDepartmentHandler)
		r.Get("/courses", api.ListCoursesHandler)
		r.Get("/courses/{id}", api.GetCourseHandler)
		r.Get("/students", api.ListStudentsHandler)
		r.Get("/students/by-department/{departmentID}", api.ListStudentsByDepartmentHandler)
		r.Get("/students/{id}", api.GetStudentHandler)
		r.Get("/attendance", api.ListAttendanceHandler)
		r.Get("/attendance/{id}", api.GetAttendanceHandler)

		r.Group(func(r chi.Router) {
			r.Use(api.requireAdmin)

			r.Post("/users", api.CreateUserHandler)
			r.Put("/users/{id}", api.UpdateUserHandler)
			r.Delete("/users/{id}", api.DeleteUserHandler)

			r.Post("/departments", api.CreateDepartmentHandler)
			r.Put("/departments/{id}", api.UpdateDepartmentHandler)
			r.Delete("/departments/{id}", api.DeleteDepartmentHandler)

			r.Post("/courses", api.CreateCourseHandler)
			r.Put("/courses/{id}", api.UpdateCourseHandler)
			r.Delete("/courses/{id}", api.DeleteCourseHandler)

			r.Post("/students", api.CreateStudentHandler)
			r.Put("/students/{id}", api.UpdateStudentHandler)
			r.Delete("/students/{id}", api.DeleteStudentHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(api.requireAdminOrTeacher)

			r.Post("/attendance", api.CreateAttendanceHandler)
			r.Put("/attendance/{id}", api.UpdateAttendanceHandler)
			r.Delete("/attendance/{id}", api.DeleteAttendanceHandler)
		})
	})
}

// Serve starts the HTTP server and blocks.
func (api *Api) Serve() {
	addr := fmt.Sprintf("0.0.0.0:%d", api.Config.APIPort)
	log.Printf("Starting API server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, api.Router))
}
