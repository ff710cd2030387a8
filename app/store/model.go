package store

// Status of an enrollment. Any status can be set from any other status.
type Status string

// enrollment statuses
const (
	StatusEnrolled  Status = "enrolled"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
	StatusPending   Status = "pending"
)

// Level of a course
type Level string

// course levels
const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Course is a static catalog entry. EnrolledStudents is informational and not
// tied to the enrollment records.
type Course struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Description      string   `json:"description" yaml:"description"`
	Duration         int      `json:"duration" yaml:"duration" jsonschema_description:"duration in weeks"`
	Price            float64  `json:"price" yaml:"price"`
	Image            string   `json:"image" yaml:"image"`
	Features         []string `json:"features" yaml:"features"`
	Level            Level    `json:"level" yaml:"level" jsonschema:"enum=Beginner,enum=Intermediate,enum=Advanced"`
	Instructor       string   `json:"instructor" yaml:"instructor"`
	Category         string   `json:"category" yaml:"category"`
	StartDate        string   `json:"startDate" yaml:"startDate"`
	MaxStudents      int      `json:"maxStudents" yaml:"maxStudents"`
	EnrolledStudents int      `json:"enrolledStudents" yaml:"enrolledStudents"`
}

// Enrollment links a student to a course. CourseID is not checked against the catalog.
type Enrollment struct {
	ID             string  `json:"id" yaml:"id"`
	CourseID       string  `json:"courseId" yaml:"courseId"`
	CourseName     string  `json:"courseName" yaml:"courseName"`
	StudentName    string  `json:"studentName" yaml:"studentName"`
	StudentEmail   string  `json:"studentEmail" yaml:"studentEmail"`
	StudentPhone   string  `json:"studentPhone" yaml:"studentPhone"`
	EnrollmentDate string  `json:"enrollmentDate" yaml:"enrollmentDate"`
	Status         Status  `json:"status" yaml:"status" jsonschema:"enum=enrolled,enum=completed,enum=dropped,enum=pending"`
	Price          float64 `json:"price" yaml:"price"`
	Progress       float64 `json:"progress" yaml:"progress" jsonschema_description:"progress in percent"`
	Notes          string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewEnrollment is an enrollment without identifier, the input of AddEnrollment
type NewEnrollment struct {
	CourseID       string  `json:"courseId"`
	CourseName     string  `json:"courseName"`
	StudentName    string  `json:"studentName"`
	StudentEmail   string  `json:"studentEmail"`
	StudentPhone   string  `json:"studentPhone"`
	EnrollmentDate string  `json:"enrollmentDate"`
	Status         Status  `json:"status"`
	Price          float64 `json:"price"`
	Progress       float64 `json:"progress"`
	Notes          string  `json:"notes,omitempty"`
}

// Student is derived from enrollments, keyed by email
type Student struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Email            string `json:"email" yaml:"email"`
	Phone            string `json:"phone" yaml:"phone"`
	TotalCourses     int    `json:"totalCourses" yaml:"totalCourses"`
	MemberSince      string `json:"memberSince" yaml:"memberSince"`
	LastActivity     string `json:"lastActivity,omitempty" yaml:"lastActivity,omitempty"`
	CompletedCourses int    `json:"completedCourses" yaml:"completedCourses"`
}

// EnrollmentPatch holds field overrides for UpdateEnrollment, nil fields are left as is.
// The identifier can't be patched.
type EnrollmentPatch struct {
	CourseID       *string  `json:"courseId,omitempty"`
	CourseName     *string  `json:"courseName,omitempty"`
	StudentName    *string  `json:"studentName,omitempty"`
	StudentEmail   *string  `json:"studentEmail,omitempty"`
	StudentPhone   *string  `json:"studentPhone,omitempty"`
	EnrollmentDate *string  `json:"enrollmentDate,omitempty"`
	Status         *Status  `json:"status,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Progress       *float64 `json:"progress,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

// Apply returns a copy of e with all non-nil patch fields set
func (p EnrollmentPatch) Apply(e Enrollment) Enrollment {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&e.CourseID, p.CourseID)
	setStr(&e.CourseName, p.CourseName)
	setStr(&e.StudentName, p.StudentName)
	setStr(&e.StudentEmail, p.StudentEmail)
	setStr(&e.StudentPhone, p.StudentPhone)
	setStr(&e.EnrollmentDate, p.EnrollmentDate)
	setStr(&e.Notes, p.Notes)
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Price != nil {
		e.Price = *p.Price
	}
	if p.Progress != nil {
		e.Progress = *p.Progress
	}
	return e
}

// toEnrollment makes Enrollment with the given id
func (n NewEnrollment) toEnrollment(id string) Enrollment {
	return Enrollment{
		ID:             id,
		CourseID:       n.CourseID,
		CourseName:     n.CourseName,
		StudentName:    n.StudentName,
		StudentEmail:   n.StudentEmail,
		StudentPhone:   n.StudentPhone,
		EnrollmentDate: n.EnrollmentDate,
		Status:         n.Status,
		Price:          n.Price,
		Progress:       n.Progress,
		Notes:          n.Notes,
	}
}
