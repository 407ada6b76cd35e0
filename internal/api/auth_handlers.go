package api

import (
	"errors"
	"net/http"

	"github.com/rollcall-io/rollcall/internal/database"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginHandler exchanges form-encoded credentials for a bearer token.
// Issuing the token transactionally replaces any previous token for the
// user, so a second login invalidates the first session. Unknown username
// and wrong password produce the identical response.
func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "malformed form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		badRequest(w, "username and password are required")
		return
	}

	user, err := api.db.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			unauthorized(w, "incorrect username or password")
			return
		}
		internalError(w, err)
		return
	}

	if !user.CheckPassword(password) {
		unauthorized(w, "incorrect username or password")
		return
	}

	token, expiresAt, err := api.tokens.Issue(user)
	if err != nil {
		internalError(w, err)
		return
	}

	if err := api.db.ReplaceToken(r.Context(), user.ID, token, expiresAt); err != nil {
		internalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
