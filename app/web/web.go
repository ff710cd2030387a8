// Package web implements the JSON API server for enrolls application
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/learnhub/enrolls/app/store"
)

// Store defines the enrollment store operations exposed by the API
type Store interface {
	Courses() []store.Course
	CourseByID(id string) (store.Course, bool)
	Enrollments() []store.Enrollment
	StudentEnrollments(email string) []store.Enrollment
	Students() []store.Student
	AddEnrollment(data store.NewEnrollment) (store.Enrollment, error)
	UpdateEnrollment(id string, patch store.EnrollmentPatch) (bool, error)
	CancelEnrollment(id string) (bool, error)
}

// Server represents the web server
type Server struct {
	store        Store
	version      string
	writeLimiter *limiter.Limiter // limits mutating requests per client ip
}

// Config holds server configuration
type Config struct {
	Store     Store
	Version   string
	WriteRate float64 // max mutating requests per second per client, defaults to 10
}

// New creates a new web server
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("web server initialization failed: Store is required")
	}

	rate := cfg.WriteRate
	if rate <= 0 {
		rate = 10
	}
	lmt := tollbooth.NewLimiter(rate, nil)
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr", IndexFromRight: 0})

	return &Server{store: cfg.Store, version: cfg.Version, writeLimiter: lmt}, nil
}

// Run starts the web server and blocks until ctx is done
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(1000),
		rest.AppInfo("enrolls", "learnhub", s.version),
		rest.Ping,
		rest.SizeLimit(64*1024), // 64KB max request size
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
	)

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)

		api.HandleFunc("GET /courses", s.handleCourses)
		api.HandleFunc("GET /courses/{id}", s.handleCourse)
		api.HandleFunc("GET /enrollments", s.handleEnrollments)
		api.HandleFunc("GET /students", s.handleStudents)

		limited := api.With(tollbooth.HTTPMiddleware(s.writeLimiter))
		limited.HandleFunc("POST /enrollments", s.handleAddEnrollment)
		limited.HandleFunc("PATCH /enrollments/{id}", s.handleUpdateEnrollment)
		limited.HandleFunc("POST /enrollments/{id}/cancel", s.handleCancelEnrollment)
	})

	return router
}
