package models

import (
	"time"
)

// Token is the single live bearer token for a user. Issuing a new token
// replaces every prior row for the same user.
type Token struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the stored token is past its expiry.
func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// Department groups courses and students.
type Department struct {
	ID          int64  `json:"id"`
	DeptName    string `json:"dept_name"`
	SubmittedBy int64  `json:"submitted_by"`
}

// Student belongs to a department and accumulates attendance entries.
type Student struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	ClassName    string    `json:"class_name"`
	DepartmentID int64     `json:"department_id"`
	SubmittedBy  int64     `json:"submitted_by"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Course is taught within a department.
type Course struct {
	ID           int64     `json:"id"`
	CourseName   string    `json:"course_name"`
	ClassName    string    `json:"class_name"`
	Semester     string    `json:"semester"`
	LectureHours int       `json:"lecture_hours"`
	DepartmentID int64     `json:"department_id"`
	SubmittedBy  int64     `json:"submitted_by"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AttendanceLog records whether a student was present for a course.
// At most one entry exists per (course, student) pair.
type AttendanceLog struct {
	ID          int64     `json:"id"`
	Present     bool      `json:"present"`
	StudentID   int64     `json:"student_id"`
	CourseID    int64     `json:"course_id"`
	SubmittedBy int64     `json:"submitted_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AttendanceDetail is an attendance entry joined with the student and
// course it refers to, for listing.
type AttendanceDetail struct {
	ID          int64     `json:"id"`
	Present     bool      `json:"present"`
	FullName    string    `json:"full_name"`
	CourseName  string    `json:"course_name"`
	ClassName   string    `json:"class_name"`
	SubmittedBy int64     `json:"submitted_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}
