package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rollcall-io/rollcall/internal/database"
	"github.com/rollcall-io/rollcall/internal/models"
)

type createAttendanceRequest struct {
	Present   *bool `json:"present"`
	StudentID int64 `json:"student_id"`
	CourseID  int64 `json:"course_id"`
}

type updateAttendanceRequest struct {
	Present *bool `json:"present"`
}

// CreateAttendanceHandler records attendance for a (course, student) pair.
// Both referenced rows must exist, and the pair must not already have an
// entry.
func (api *Api) CreateAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	var req createAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Present == nil || req.StudentID == 0 || req.CourseID == 0 {
		badRequest(w, "present, student_id and course_id are required")
		return
	}

	if _, err := api.db.GetCourseByID(r.Context(), req.CourseID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "course not found")
			return
		}
		internalError(w, err)
		return
	}
	if _, err := api.db.GetStudentByID(r.Context(), req.StudentID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "student not found")
			return
		}
		internalError(w, err)
		return
	}

	if _, err := api.db.GetAttendanceByCourseStudent(r.Context(), req.CourseID, req.StudentID); err == nil {
		conflict(w, "attendance log for the given course and student already exists")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		internalError(w, err)
		return
	}

	entry := &models.AttendanceLog{
		Present:     *req.Present,
		StudentID:   req.StudentID,
		CourseID:    req.CourseID,
		SubmittedBy: api.identity(r).UserID,
	}
	if err := api.db.CreateAttendance(r.Context(), entry); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// ListAttendanceHandler returns attendance entries joined with student and
// course names.
func (api *Api) ListAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	details, err := api.db.ListAttendanceDetails(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (api *Api) GetAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid attendance id")
		return
	}

	entry, err := api.db.GetAttendanceByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "attendance log not found")
			return
		}
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (api *Api) UpdateAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid attendance id")
		return
	}

	var req updateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	entry, err := api.db.GetAttendanceByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "attendance log not found")
			return
		}
		internalError(w, err)
		return
	}

	if req.Present != nil {
		entry.Present = *req.Present
	}
	entry.SubmittedBy = api.identity(r).UserID

	if err := api.db.UpdateAttendance(r.Context(), entry); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (api *Api) DeleteAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid attendance id")
		return
	}

	if err := api.db.DeleteAttendance(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "attendance log not found")
			return
		}
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "attendance log deleted"})
}
