package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/collabhub/platform/project-service/application"
	"github.com/go-chi/chi/v5"
)

// ProjectHandlers contains project HTTP handlers
type ProjectHandlers struct {
	createProject     *application.CreateProject
	getProject        *application.GetProject
	deleteProject     *application.DeleteProject
	applyToProject    *application.ApplyToProject
	decideApplication *application.DecideApplication
}

// NewProjectHandlers creates new project handlers
func NewProjectHandlers(
	createProject *application.CreateProject,
	getProject *application.GetProject,
	deleteProject *application.DeleteProject,
	applyToProject *application.ApplyToProject,
	decideApplication *application.DecideApplication,
) *ProjectHandlers {
	return &ProjectHandlers{
		createProject:     createProject,
		getProject:        getProject,
		deleteProject:     deleteProject,
		applyToProject:    applyToProject,
		decideApplication: decideApplication,
	}
}

// CreateProject handles POST /projects
func (h *ProjectHandlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateProjectCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	response, err := h.createProject.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// GetProject handles GET /projects/{projectID}
func (h *ProjectHandlers) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}

	response, err := h.getProject.Execute(r.Context(), projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// DeleteProject handles DELETE /projects/{projectID}?user_id=
func (h *ProjectHandlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}

	response, err := h.deleteProject.Execute(r.Context(), &application.DeleteProjectCommand{
		ProjectID:   projectID,
		RequestedBy: r.URL.Query().Get("user_id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// ApplyToProject handles POST /projects/{projectID}/applications
func (h *ProjectHandlers) ApplyToProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}

	var cmd application.ApplyToProjectCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	cmd.ProjectID = projectID

	response, err := h.applyToProject.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// DecideApplication handles PATCH /projects/{projectID}/applications/{applicationID}
func (h *ProjectHandlers) DecideApplication(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectID")
	if !ok {
		return
	}
	applicationID, ok := pathID(w, r, "applicationID")
	if !ok {
		return
	}

	var cmd application.DecideApplicationCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	cmd.ProjectID = projectID
	cmd.ApplicationID = applicationID

	response, err := h.decideApplication.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers project routes
func (h *ProjectHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/projects", func(r chi.Router) {
		r.Post("/", h.CreateProject)
		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", h.GetProject)
			r.Delete("/", h.DeleteProject)
			r.Post("/applications", h.ApplyToProject)
			r.Patch("/applications/{applicationID}", h.DecideApplication)
		})
	})
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "Invalid "+param)
		return 0, false
	}
	return id, true
}
