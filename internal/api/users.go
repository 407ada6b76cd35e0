package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rollcall-io/rollcall/internal/database"
	"github.com/rollcall-io/rollcall/internal/models"
)

type createUserRequest struct {
	Role     models.Role `json:"role"`
	FullName string      `json:"full_name"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
}

type updateUserRequest struct {
	Role     *models.Role `json:"role"`
	FullName *string      `json:"full_name"`
	Username *string      `json:"username"`
	Email    *string      `json:"email"`
	Password *string      `json:"password"`
}

func (api *Api) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.FullName == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		badRequest(w, "role, full_name, username, email and password are required")
		return
	}
	if !req.Role.Valid() {
		badRequest(w, "role must be admin, teacher or other")
		return
	}

	if _, err := api.db.GetUserByUsername(r.Context(), req.Username); err == nil {
		conflict(w, "username already exists")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		internalError(w, err)
		return
	}
	if _, err := api.db.GetUserByEmail(r.Context(), req.Email); err == nil {
		conflict(w, "email already exists")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		internalError(w, err)
		return
	}

	submitter := api.identity(r).UserID
	user := &models.User{
		Role:        req.Role,
		FullName:    req.FullName,
		Username:    req.Username,
		Email:       req.Email,
		SubmittedBy: &submitter,
	}
	if err := user.SetPassword(req.Password); err != nil {
		internalError(w, err)
		return
	}

	if err := api.db.CreateUser(r.Context(), user); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (api *Api) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := api.db.ListUsers(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (api *Api) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}

	user, err := api.db.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "user not found")
			return
		}
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateUserHandler merges the provided fields into the existing user;
// unset fields are left unchanged. A provided password is rehashed.
func (api *Api) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, err := api.db.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "user not found")
			return
		}
		internalError(w, err)
		return
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			badRequest(w, "role must be admin, teacher or other")
			return
		}
		user.Role = *req.Role
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Username != nil && *req.Username != user.Username {
		if existing, err := api.db.GetUserByUsername(r.Context(), *req.Username); err == nil && existing.ID != user.ID {
			conflict(w, "username already exists")
			return
		} else if err != nil && !errors.Is(err, database.ErrNotFound) {
			internalError(w, err)
			return
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		if existing, err := api.db.GetUserByEmail(r.Context(), *req.Email); err == nil && existing.ID != user.ID {
			conflict(w, "email already exists")
			return
		} else if err != nil && !errors.Is(err, database.ErrNotFound) {
			internalError(w, err)
			return
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			internalError(w, err)
			return
		}
	}

	submitter := api.identity(r).UserID
	user.SubmittedBy = &submitter

	if err := api.db.UpdateUser(r.Context(), user); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (api *Api) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}

	if err := api.db.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(w, "user not found")
			return
		}
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "user deleted"})
}
