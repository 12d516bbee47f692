package http

import (
	"encoding/json"
	"net/http"

	"github.com/avoronin/go-task-keeper/internal/logger"
	"github.com/avoronin/go-task-keeper/internal/store"
	"github.com/avoronin/go-task-keeper/internal/utils"
	"github.com/avoronin/go-task-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	createdTask, err := h.services.TaskService.Create(ctx, user.UserID, req)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("task creation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, createdTask, http.StatusCreated)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	filter := models.TaskFilter{
		Status:   query.Get("status"),
		Priority: query.Get("priority"),
		Search:   query.Get("search"),
		Sort:     query.Get("sort"),
	}

	tasks, err := h.services.TaskService.List(ctx, user.UserID, filter)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("task listing failed")
		writeError(w, err)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		log.Err(err).Msg("malformed task id")
		writeError(w, store.ErrTaskNotFound)
		return
	}

	task, err := h.services.TaskService.Get(ctx, user.UserID, taskID)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Str("task_id", taskID.String()).Msg("task search failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		log.Err(err).Msg("malformed task id")
		writeError(w, store.ErrTaskNotFound)
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSONError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedTask, err := h.services.TaskService.Update(ctx, user.UserID, taskID, req)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Str("task_id", taskID.String()).Msg("task update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updatedTask, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	taskID, err := parseTaskID(r)
	if err != nil {
		log.Err(err).Msg("malformed task id")
		writeError(w, store.ErrTaskNotFound)
		return
	}

	if err := h.services.TaskService.Delete(ctx, user.UserID, taskID); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Str("task_id", taskID.String()).Msg("task deletion failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "task removed"}, http.StatusOK)
}

func (h *Handler) taskInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSONError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	insights, err := h.services.TaskService.Insights(ctx, user.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("insights computation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, insights, http.StatusOK)
}

// parseTaskID extracts and parses the task id URL parameter. A value that is
// not a UUID cannot name any task, so callers report it as not found.
func parseTaskID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "taskID"))
}
