// Package store implements the enrollment store. It keeps the static course catalog
// and two mutable collections, enrollments and students derived from them. Both
// collections are loaded once from key-value storage and written back in full after
// every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/learnhub/enrolls/app/store/persistence"
)

// storage keys
const (
	EnrollmentsKey = "training-enrollments"
	StudentsKey    = "training-students"
)

// KV is the durable key-value storage. Get returns persistence.ErrNotFound for absent keys.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Collection names a mutable collection in a Change
type Collection string

// collections
const (
	CollectionEnrollments Collection = "enrollments"
	CollectionStudents    Collection = "students"
)

// Change is sent to subscribers after a collection has been persisted
type Change struct {
	Collection Collection
	ID         string // id of the changed record
}

// Opts for New. KV is required, the rest has defaults.
type Opts struct {
	KV    KV
	IDs   IDGenerator      // defaults to TimestampGenerator
	Clock func() time.Time // defaults to time.Now, used for memberSince
}

// Store holds the course catalog, the enrollments and the students
type Store struct {
	kv    KV
	ids   IDGenerator
	clock func() time.Time

	mu          sync.Mutex
	enrollments []Enrollment
	students    []Student

	subsMu  sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// New makes a Store and loads both collections from storage. Absent keys give
// empty collections, a value that is not valid JSON is an error.
func New(opts Opts) (*Store, error) {
	if opts.KV == nil {
		return nil, errors.New("store initialization failed: KV is required")
	}
	s := &Store{
		kv:    opts.KV,
		ids:   opts.IDs,
		clock: opts.Clock,
		subs:  map[int]func(Change){},
	}
	if s.ids == nil {
		s.ids = &TimestampGenerator{}
	}
	if s.clock == nil {
		s.clock = time.Now
	}

	if err := s.load(EnrollmentsKey, &s.enrollments); err != nil {
		return nil, fmt.Errorf("store initialization failed: %w", err)
	}
	if err := s.load(StudentsKey, &s.students); err != nil {
		return nil, fmt.Errorf("store initialization failed: %w", err)
	}
	// persisted "null" and absent keys both give empty, non-nil collections
	if s.enrollments == nil {
		s.enrollments = []Enrollment{}
	}
	if s.students == nil {
		s.students = []Student{}
	}
	log.Printf("[DEBUG] store loaded, %d enrollments, %d students", len(s.enrollments), len(s.students))
	return s, nil
}

// AddEnrollment stores a new enrollment and upserts the student by email.
// In-memory collections follow what was written: a failed enrollments write leaves
// both collections unchanged, a failed students write keeps the stored enrollment,
// returns it along with the error and leaves students unchanged.
func (s *Store) AddEnrollment(data NewEnrollment) (Enrollment, error) {
	s.mu.Lock()
	enr := data.toEnrollment(s.newID(func(id string) bool { return s.enrollmentIndex(id) >= 0 }))
	s.enrollments = append(s.enrollments, enr)
	if err := s.persist(EnrollmentsKey, s.enrollments); err != nil {
		s.enrollments = s.enrollments[:len(s.enrollments)-1]
		s.mu.Unlock()
		return Enrollment{}, err
	}

	var studentID string
	idx := s.studentIndex(data.StudentEmail)
	var prev Student
	if idx >= 0 {
		prev = s.students[idx]
		s.students[idx].TotalCourses++
		s.students[idx].LastActivity = data.EnrollmentDate
		studentID = s.students[idx].ID
	} else {
		studentID = s.newID(func(id string) bool {
			for _, st := range s.students {
				if st.ID == id {
					return true
				}
			}
			return false
		})
		s.students = append(s.students, Student{
			ID:               studentID,
			Name:             data.StudentName,
			Email:            data.StudentEmail,
			Phone:            data.StudentPhone,
			TotalCourses:     1,
			MemberSince:      s.clock().UTC().Format("2006-01-02"),
			LastActivity:     data.EnrollmentDate,
			CompletedCourses: 0,
		})
	}
	err := s.persist(StudentsKey, s.students)
	if err != nil {
		if idx >= 0 {
			s.students[idx] = prev
		} else {
			s.students = s.students[:len(s.students)-1]
		}
	}
	s.mu.Unlock()

	s.notify(Change{Collection: CollectionEnrollments, ID: enr.ID})
	if err != nil {
		return enr, err
	}
	s.notify(Change{Collection: CollectionStudents, ID: studentID})
	log.Printf("[DEBUG] enrollment %s added for %s, course %s", enr.ID, enr.StudentEmail, enr.CourseID)
	return enr, nil
}

// UpdateEnrollment merges patch into the enrollment with the given id. Returns false
// if no enrollment matched, which is not an error. The collection is persisted either way.
// On a failed write the enrollment keeps its previous value and the match is still reported.
func (s *Store) UpdateEnrollment(id string, patch EnrollmentPatch) (bool, error) {
	s.mu.Lock()
	idx := s.enrollmentIndex(id)
	var prev Enrollment
	if idx >= 0 {
		prev = s.enrollments[idx]
		s.enrollments[idx] = patch.Apply(prev)
	}
	err := s.persist(EnrollmentsKey, s.enrollments)
	if err != nil && idx >= 0 {
		s.enrollments[idx] = prev
	}
	s.mu.Unlock()
	if err != nil {
		return idx >= 0, err
	}

	if idx < 0 {
		log.Printf("[DEBUG] no enrollment %s to update", id)
		return false, nil
	}
	s.notify(Change{Collection: CollectionEnrollments, ID: id})
	return true, nil
}

// CancelEnrollment sets enrollment status to dropped
func (s *Store) CancelEnrollment(id string) (bool, error) {
	dropped := StatusDropped
	return s.UpdateEnrollment(id, EnrollmentPatch{Status: &dropped})
}

// StudentEnrollments returns enrollments with exactly this email, in insertion order
func (s *Store) StudentEnrollments(email string) []Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []Enrollment{}
	for _, e := range s.enrollments {
		if e.StudentEmail == email {
			res = append(res, e)
		}
	}
	return res
}

// CourseByID returns the catalog course with the given id
func (s *Store) CourseByID(id string) (Course, bool) {
	for _, c := range catalog() {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

// Courses returns the course catalog, in catalog order
func (s *Store) Courses() []Course {
	return catalog()
}

// Enrollments returns a copy of all enrollments
func (s *Store) Enrollments() []Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Enrollment{}, s.enrollments...)
}

// Students returns a copy of all students
func (s *Store) Students() []Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Student{}, s.students...)
}

// Subscribe registers fn to be called after each persisted change. The returned
// func removes the subscription. fn runs synchronously on the mutating call.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(ch Change) {
	s.subsMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(ch)
	}
}

// load reads key into dst, leaving dst empty if the key is absent or blank
func (s *Store) load(key string, dst any) error {
	data, err := s.kv.Get(key)
	if errors.Is(err, persistence.ErrNotFound) || (err == nil && len(data) == 0) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return nil
}

// persist writes the whole collection under key, called with mu held
func (s *Store) persist(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.kv.Set(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// newID draws ids until one is not taken, called with mu held
func (s *Store) newID(taken func(id string) bool) string {
	for {
		if id := s.ids.NewID(); !taken(id) {
			return id
		}
	}
}

func (s *Store) enrollmentIndex(id string) int {
	for i, e := range s.enrollments {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) studentIndex(email string) int {
	for i, st := range s.students {
		if st.Email == email {
			return i
		}
	}
	return -1
}
