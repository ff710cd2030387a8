package web

import (
	"encoding/json"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/learnhub/enrolls/app/store"
)

// handleCourses returns the whole course catalog
func (s *Server) handleCourses(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Courses())
}

// handleCourse returns a single course, 404 if the id is not in the catalog
func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	course, ok := s.store.CourseByID(r.PathValue("id"))
	if !ok {
		s.writeJSONError(w, http.StatusNotFound, "course not found")
		return
	}
	s.writeJSON(w, http.StatusOK, course)
}

// handleEnrollments returns all enrollments, or only those of one student if email is set
func (s *Server) handleEnrollments(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("email") {
		s.writeJSON(w, http.StatusOK, s.store.StudentEnrollments(r.URL.Query().Get("email")))
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.Enrollments())
}

func (s *Server) handleStudents(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Students())
}

// handleAddEnrollment creates enrollment from the request body and returns it with the assigned id
func (s *Server) handleAddEnrollment(w http.ResponseWriter, r *http.Request) {
	var req store.NewEnrollment
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid enrollment: "+err.Error())
		return
	}

	enr, err := s.store.AddEnrollment(req)
	if err != nil {
		log.Printf("[ERROR] failed to add enrollment for %s: %v", req.StudentEmail, err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to add enrollment")
		return
	}
	s.writeJSON(w, http.StatusCreated, enr)
}

// handleUpdateEnrollment merges the request body into the enrollment
func (s *Server) handleUpdateEnrollment(w http.ResponseWriter, r *http.Request) {
	var patch store.EnrollmentPatch
	if err := s.decodeJSON(r, &patch); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid enrollment update: "+err.Error())
		return
	}

	id := r.PathValue("id")
	ok, err := s.store.UpdateEnrollment(id, patch)
	s.writeMutationResult(w, id, ok, err)
}

func (s *Server) handleCancelEnrollment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ok, err := s.store.CancelEnrollment(id)
	s.writeMutationResult(w, id, ok, err)
}

// writeMutationResult maps update result to the response: 204 on match, 404 if nothing matched
func (s *Server) writeMutationResult(w http.ResponseWriter, id string, ok bool, err error) {
	if err != nil {
		log.Printf("[ERROR] failed to update enrollment %s: %v", id, err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to update enrollment")
		return
	}
	if !ok {
		s.writeJSONError(w, http.StatusNotFound, "enrollment not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON decodes request body, unknown fields are rejected
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, rest.JSON{"error": message})
}
