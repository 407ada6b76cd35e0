package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rollcall-io/rollcall/internal/database"
	"github.com/rollcall-io/rollcall/internal/models"
)

type createCourseRequest struct {
	CourseName   string `json:"course_name"`
	ClassName    string `json:"class_name"`
	Semester     string `json:"semester"`
	LectureHours int    `json:"lecture_hours"`
	DepartmentID int64  `json:"department_id"`
}

type updateCourseRequest struct {
	CourseName   *string `json:"course_name"`
	ClassName    *string `json:"class_name"`
	Semester     *string `json:"semester"`
	LectureHours *int    `json:"lecture_hours"`
	DepartmentID *int64  `json:"department_id"`
}

func (api *Api) CreateCourseHandler(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.CourseName == "" || req.ClassName == "" || req.Semester == "" || req.LectureHours <= 0 || req.DepartmentID == 0 {
		badRequest(w, "course_name, class_name, semester, lecture_hours and department_id are required")
		return
	}

	if _, err := api.db.GetDepartmentByID(r.Context(), req.DepartmentID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "department not found")
			return
		}
		internalError(w, err)
		return
	}

	if _, err := api.db.GetCourseByName(r.Context(), req.CourseName); err == nil {
		conflict(w, "course already exists")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		internalError(w, err)
		return
	}
	if _, err := api.db.GetCourseByClassName(r.Context(), req.ClassName); err == nil {
		conflict(w, "class already exists")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		internalError(w, err)
		return
	}

	course := &models.Course{
		CourseName:   req.CourseName,
		ClassName:    req.ClassName,
		Semester:     req.Semester,
		LectureHours: req.LectureHours,
		DepartmentID: req.DepartmentID,
		SubmittedBy:  api.identity(r).UserID,
	}
	if err := api.db.CreateCourse(r.Context(), course); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, course)
}

func (api *Api) ListCoursesHandler(w http.ResponseWriter, r *http.Request) {
	courses, err := api.db.ListCourses(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, courses)
}

func (api *Api) GetCourseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid course id")
		return
	}

	course, err := api.db.GetCourseByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "course not found")
			return
		}
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, course)
}

func (api *Api) UpdateCourseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid course id")
		return
	}

	var req updateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	course, err := api.db.GetCourseByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "course not found")
			return
		}
		internalError(w, err)
		return
	}

	if req.CourseName != nil && *req.CourseName != course.CourseName {
		if existing, err := api.db.GetCourseByName(r.Context(), *req.CourseName); err == nil && existing.ID != course.ID {
			conflict(w, "course already exists")
			return
		} else if err != nil && !errors.Is(err, database.ErrNotFound) {
			internalError(w, err)
			return
		}
		course.CourseName = *req.CourseName
	}
	if req.ClassName != nil && *req.ClassName != course.ClassName {
		if existing, err := api.db.GetCourseByClassName(r.Context(), *req.ClassName); err == nil && existing.ID != course.ID {
			conflict(w, "class already exists")
			return
		} else if err != nil && !errors.Is(err, database.ErrNotFound) {
			internalError(w, err)
			return
		}
		course.ClassName = *req.ClassName
	}
	if req.Semester != nil {
		course.Semester = *req.Semester
	}
	if req.LectureHours != nil {
		course.LectureHours = *req.LectureHours
	}
	if req.DepartmentID != nil {
		if _, err := api.db.GetDepartmentByID(r.Context(), *req.DepartmentID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				notFound(w, "department not found")
				return
			}
			internalError(w, err)
			return
		}
		course.DepartmentID = *req.DepartmentID
	}

	course.SubmittedBy = api.identity(r).UserID

	if err := api.db.UpdateCourse(r.Context(), course); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, course)
}

func (api *Api) DeleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid course id")
		return
	}

	if err := api.db.DeleteCourse(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "course not found")
			return
		}
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "course deleted"})
}
