package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rollcall-io/rollcall/internal/database"
	"github.com/rollcall-io/rollcall/internal/models"
)

type departmentRequest struct {
	DeptName string `json:"dept_name"`
}

func (api *Api) CreateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.DeptName == "" {
		badRequest(w, "dept_name is required")
		return
	}

	if _, err := api.db.GetDepartmentByName(r.Context(), req.DeptName); err == nil {
		conflict(w, "department already exists")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		internalError(w, err)
		return
	}

	department := &models.Department{
		DeptName:    req.DeptName,
		SubmittedBy: api.identity(r).UserID,
	}
	if err := api.db.CreateDepartment(r.Context(), department); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, department)
}

func (api *Api) ListDepartmentsHandler(w http.ResponseWriter, r *http.Request) {
	departments, err := api.db.ListDepartments(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, departments)
}

func (api *Api) GetDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid department id")
		return
	}

	department, err := api.db.GetDepartmentByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "department not found")
			return
		}
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, department)
}

func (api *Api) UpdateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid department id")
		return
	}

	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.DeptName == "" {
		badRequest(w, "dept_name is required")
		return
	}

	department, err := api.db.GetDepartmentByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "department not found")
			return
		}
		internalError(w, err)
		return
	}

	if req.DeptName != department.DeptName {
		if existing, err := api.db.GetDepartmentByName(r.Context(), req.DeptName); err == nil && existing.ID != department.ID {
			conflict(w, "department already exists")
			return
		} else if err != nil && !errors.Is(err, database.ErrNotFound) {
			internalError(w, err)
			return
		}
	}

	department.DeptName = req.DeptName
	department.SubmittedBy = api.identity(r).UserID

	if err := api.db.UpdateDepartment(r.Context(), department); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, department)
}

func (api *Api) DeleteDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid department id")
		return
	}

	if err := api.db.DeleteDepartment(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "department not found")
			return
		}
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "department deleted"})
}
