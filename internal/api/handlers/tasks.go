package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskforge/taskmanager/internal/domain"
	"github.com/taskforge/taskmanager/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type CreateTaskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskInput
	if err := decodeBody(r, &req); err != nil {
		log.Printf("ERROR [tasks.Create] decode body: %v", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, "tasks.Create", err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateTaskResponse{
		Message: "Task created successfully",
		Task:    task,
	})
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tasks, err := h.taskService.List(r.Context(), service.ListTasksInput{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		DueDate:  q.Get("dueDate"),
		Search:   q.Get("search"),
	})
	if err != nil {
		respondServiceError(w, "tasks.List", err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r, "tasks.Update")
	if !ok {
		return
	}

	var req service.UpdateTaskInput
	if err := decodeBody(r, &req); err != nil {
		log.Printf("ERROR [tasks.Update] taskID=%d decode body: %v", id, err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.taskService.Update(r.Context(), id, req); err != nil {
		respondServiceError(w, "tasks.Update", err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Task updated successfully"})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r, "tasks.Delete")
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, "tasks.Delete", err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}

// taskID parses the {id} path parameter. Ids that cannot name a row are
// answered as not found.
func taskID(w http.ResponseWriter, r *http.Request, op string) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		respondServiceError(w, op, domain.NotFound("Task not found"))
		return 0, false
	}
	return uint(id), true
}
