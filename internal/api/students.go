package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rollcall-io/rollcall/internal/database"
	"github.com/rollcall-io/rollcall/internal/models"
)

type createStudentRequest struct {
	FullName     string `json:"full_name"`
	ClassName    string `json:"class_name"`
	DepartmentID int64  `json:"department_id"`
}

type updateStudentRequest struct {
	FullName     *string `json:"full_name"`
	ClassName    *string `json:"class_name"`
	DepartmentID *int64  `json:"department_id"`
}

func (api *Api) CreateStudentHandler(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.FullName == "" || req.ClassName == "" || req.DepartmentID == 0 {
		badRequest(w, "full_name, class_name and department_id are required")
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

	student := &models.Student{
		FullName:     req.FullName,
		ClassName:    req.ClassName,
		DepartmentID: req.DepartmentID,
		SubmittedBy:  api.identity(r).UserID,
	}
	if err := api.db.CreateStudent(r.Context(), student); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, student)
}

func (api *Api) ListStudentsHandler(w http.ResponseWriter, r *http.Request) {
	students, err := api.db.ListStudents(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, students)
}

func (api *Api) ListStudentsByDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	departmentID, err := urlID(r, "departmentID")
	if err != nil {
		badRequest(w, "invalid department id")
		return
	}

	if _, err := api.db.GetDepartmentByID(r.Context(), departmentID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "department not found")
			return
		}
		internalError(w, err)
		return
	}

	students, err := api.db.ListStudentsByDepartment(r.Context(), departmentID)
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, students)
}

func (api *Api) GetStudentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid student id")
		return
	}

	student, err := api.db.GetStudentByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "student not found")
			return
		}
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, student)
}

func (api *Api) UpdateStudentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid student id")
		return
	}

	var req updateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	student, err := api.db.GetStudentByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "student not found")
			return
		}
		internalError(w, err)
		return
	}

	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.ClassName != nil {
		student.ClassName = *req.ClassName
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
		student.DepartmentID = *req.DepartmentID
	}

	student.SubmittedBy = api.identity(r).UserID

	if err := api.db.UpdateStudent(r.Context(), student); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, student)
}

func (api *Api) DeleteStudentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid student id")
		return
	}

	if err := api.db.DeleteStudent(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "student not found")
			return
		}
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "student deleted"})
}
