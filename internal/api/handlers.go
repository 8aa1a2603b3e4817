package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/vova2plova/Progressivity/internal/engine"
)

// TaskHandler exposes the engine over HTTP. The engine itself is
// single-actor, so a read/write lock serializes every request that reaches
// it; that is the synchronization boundary the core asks its callers to
// provide.
type TaskHandler struct {
	svc     *engine.Service
	ownerID string
	log     *slog.Logger
	mu      sync.RWMutex
}

func NewTaskHandler(svc *engine.Service, ownerID string, log *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, ownerID: ownerID, log: log}
}

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(router *mux.Router, h *TaskHandler) {
	router.HandleFunc("/api/v1/health", h.Health).Methods(http.MethodGet)

	router.HandleFunc("/api/v1/tasks", h.ListRoots).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/tasks", h.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/tasks/{taskID}", h.GetTask).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/tasks/{taskID}", h.UpdateTask).Methods(http.MethodPatch)
	router.HandleFunc("/api/v1/tasks/{taskID}", h.DeleteTask).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/tasks/{taskID}/tree", h.GetTaskTree).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/tasks/{taskID}/children", h.ListChildren).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/tasks/{taskID}/reorder", h.ReorderTask).Methods(http.MethodPost)

	router.HandleFunc("/api/v1/tasks/{taskID}/progress", h.ListProgress).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/tasks/{taskID}/progress", h.AddProgress).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/progress/{entryID}", h.DeleteProgress).Methods(http.MethodDelete)

	router.HandleFunc("/api/v1/stats", h.Stats).Methods(http.MethodGet)
}

func (h *TaskHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListRoots handles GET /api/v1/tasks.
func (h *TaskHandler) ListRoots(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	owner := r.URL.Query().Get("owner")
	if owner == "" {
		owner = h.ownerID
	}
	tasks, err := h.svc.RootsOf(r.Context(), owner)
	if err != nil {
		h.internalError(w, "list roots", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskListJSON(tasks))
}

// CreateTask handles POST /api/v1/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload")
		return
	}

	task, err := h.svc.CreateTask(r.Context(), engine.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ParentID:    req.ParentID,
		Kind:        engine.Kind(req.Type),
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
		Deadline:    req.Deadline,
	}, h.ownerID)
	if err != nil {
		h.engineError(w, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskJSON(*task))
}

// GetTask handles GET /api/v1/tasks/{taskID}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	task, err := h.svc.GetTask(r.Context(), mux.Vars(r)["taskID"])
	if err != nil {
		h.engineError(w, "get task", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskJSON(*task))
}

// GetTaskTree handles GET /api/v1/tasks/{taskID}/tree.
func (h *TaskHandler) GetTaskTree(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	view, err := h.svc.GetTaskView(r.Context(), mux.Vars(r)["taskID"])
	if err != nil {
		h.engineError(w, "get task tree", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskViewJSON(*view))
}

// ListChildren handles GET /api/v1/tasks/{taskID}/children.
func (h *TaskHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	taskID := mux.Vars(r)["taskID"]
	if _, err := h.svc.GetTask(r.Context(), taskID); err != nil {
		h.engineError(w, "list children", err)
		return
	}
	children, err := h.svc.ChildrenOf(r.Context(), &taskID)
	if err != nil {
		h.internalError(w, "list children", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskListJSON(children))
}

// UpdateTask handles PATCH /api/v1/tasks/{taskID}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload")
		return
	}

	task, err := h.svc.UpdateTask(r.Context(), mux.Vars(r)["taskID"], engine.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
		Deadline:    req.Deadline,
	})
	if err != nil {
		h.engineError(w, "update task", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskJSON(*task))
}

// DeleteTask handles DELETE /api/v1/tasks/{taskID}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ok, err := h.svc.DeleteTask(r.Context(), mux.Vars(r)["taskID"])
	if err != nil {
		h.internalError(w, "delete task", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderTask handles POST /api/v1/tasks/{taskID}/reorder.
func (h *TaskHandler) ReorderTask(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var req reorderTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload")
		return
	}

	taskID := mux.Vars(r)["taskID"]
	ok, err := h.svc.ReorderTask(r.Context(), taskID, engine.ReorderTaskInput{
		NewPosition: req.NewPosition,
		NewParentID: req.NewParentID,
	})
	if err != nil {
		h.internalError(w, "reorder task", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "task not found")
		return
	}

	task, err := h.svc.GetTask(r.Context(), taskID)
	if err != nil {
		h.engineError(w, "reorder task", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskJSON(*task))
}

// ListProgress handles GET /api/v1/tasks/{taskID}/progress.
func (h *TaskHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	taskID := mux.Vars(r)["taskID"]
	if _, err := h.svc.GetTask(r.Context(), taskID); err != nil {
		h.engineError(w, "list progress", err)
		return
	}
	entries, err := h.svc.ListProgress(r.Context(), taskID)
	if err != nil {
		h.internalError(w, "list progress", err)
		return
	}
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryJSON(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// AddProgress handles POST /api/v1/tasks/{taskID}/progress.
func (h *TaskHandler) AddProgress(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var req addProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "value is required")
		return
	}

	entry, err := h.svc.AddProgress(r.Context(), mux.Vars(r)["taskID"], engine.AddProgressInput{
		Value:      *req.Value,
		Note:       req.Note,
		RecordedAt: req.RecordedAt,
	})
	if err != nil {
		h.engineError(w, "add progress", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryJSON(*entry))
}

// DeleteProgress handles DELETE /api/v1/progress/{entryID}.
func (h *TaskHandler) DeleteProgress(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ok, err := h.svc.DeleteProgress(r.Context(), mux.Vars(r)["entryID"])
	if err != nil {
		h.internalError(w, "delete progress", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "progress entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/v1/stats.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	owner := r.URL.Query().Get("owner")
	if owner == "" {
		owner = h.ownerID
	}
	stats, err := h.svc.Stats(r.Context(), owner)
	if err != nil {
		h.internalError(w, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsJSON(*stats))
}

func (h *TaskHandler) engineError(w http.ResponseWriter, op string, err error) {
	var vErr engine.ValidationError
	switch {
	case errors.Is(err, engine.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "task not found")
	case errors.Is(err, engine.ErrContainerProgress):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_OPERATION", err.Error())
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", vErr.Error())
	default:
		h.internalError(w, op, err)
	}
}

func (h *TaskHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.log.Error(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    code,
	})
}
