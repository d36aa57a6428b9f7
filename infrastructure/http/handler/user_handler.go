package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taskana/taskana/application/port/inbound"
	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/http/response"
	"github.com/taskana/taskana/infrastructure/http/validator"
	"github.com/taskana/taskana/pkg/apperror"
)

type UserHandler struct {
	userUseCase inbound.UserUseCase
	authUseCase inbound.AuthUseCase
}

func NewUserHandler(userUseCase inbound.UserUseCase, authUseCase inbound.AuthUseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase, authUseCase: authUseCase}
}

// Create is the admin path for adding users. Unlike self-registration the
// body's isAdmin flag is honored, and no session cookie is set because the
// caller stays logged in as themselves.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		inbound.RegisterRequest
		IsAdmin bool `json:"isAdmin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req := body.RegisterRequest
	req.IsAdmin = body.IsAdmin

	if violations := validator.ValidateRegister(req); len(violations) > 0 {
		response.WriteError(w, apperror.Validation(violations))
		return
	}

	result, err := h.authUseCase.Register(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, sessionResponse{
		Role:  roleCode(result.User.IsAdmin),
		User:  result.User,
		Token: result.AccessToken,
	})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if users == nil {
		users = []*entity.User{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	empNumber, ok := pathID(w, r, "empNumber")
	if !ok {
		return
	}

	user, err := h.userUseCase.GetUser(r.Context(), empNumber)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	empNumber, ok := pathID(w, r, "empNumber")
	if !ok {
		return
	}

	var update outbound.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if update.Email != nil && !validator.ValidateEmail(*update.Email) {
		response.WriteError(w, apperror.Validation([]string{"Email is invalid"}))
		return
	}

	user, err := h.userUseCase.UpdateUser(r.Context(), empNumber, update)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	empNumber, ok := pathID(w, r, "empNumber")
	if !ok {
		return
	}

	if err := h.userUseCase.DeleteUser(r.Context(), empNumber); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{
		"deleted": fmt.Sprintf("User number %d", empNumber),
	})
}

// pathID parses a numeric route parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[param], 10, 64)
	if err != nil {
		response.BadRequest(w, fmt.Sprintf("Invalid %s", param))
		return 0, false
	}
	return id, true
}
