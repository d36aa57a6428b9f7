package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/taskana/taskana/application/port/inbound"
	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/http/middleware"
	"github.com/taskana/taskana/infrastructure/http/response"
	"github.com/taskana/taskana/infrastructure/http/validator"
	"github.com/taskana/taskana/pkg/apperror"
)

type ProjectHandler struct {
	projectUseCase inbound.ProjectUseCase
}

func NewProjectHandler(projectUseCase inbound.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{projectUseCase: projectUseCase}
}

// Create sets the caller as the project manager regardless of the request
// body.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if violations := validator.ValidateCreateProject(req); len(violations) > 0 {
		response.WriteError(w, apperror.Validation(violations))
		return
	}

	claims := middleware.IdentityFromContext(r.Context())
	req.Manager = claims.EmpNumber

	project, err := h.projectUseCase.CreateProject(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, map[string]interface{}{"project": project})
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectUseCase.ListProjects(r.Context())
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if projects == nil {
		projects = []*entity.Project{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"projects": projects})
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projectUseCase.GetProject(r.Context(), id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"project": project})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var update outbound.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	project, err := h.projectUseCase.UpdateProject(r.Context(), id, update)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"project": project})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.projectUseCase.DeleteProject(r.Context(), id); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{
		"deleted": fmt.Sprintf("Project number %d", id),
	})
}
