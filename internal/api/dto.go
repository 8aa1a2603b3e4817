package api

import (
	"time"

	"github.com/vova2plova/Progressivity/internal/engine"
	"github.com/vova2plova/Progressivity/internal/storage"
)

// Wire shapes. Field names follow the web client's camelCase contract.

type taskJSON struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ParentID    *string    `json:"parentId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Type        string     `json:"type"`
	Unit        *string    `json:"unit"`
	TargetValue *float64   `json:"targetValue"`
	Position    int        `json:"position"`
	Deadline    *time.Time `json:"deadline"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type taskViewJSON struct {
	taskJSON
	Progress          float64        `json:"progress"`
	CompletedChildren int            `json:"completedChildren"`
	TotalChildren     int            `json:"totalChildren"`
	Children          []taskViewJSON `json:"children"`
}

type entryJSON struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"taskId"`
	Value      float64   `json:"value"`
	Note       *string   `json:"note"`
	RecordedAt time.Time `json:"recordedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

type statsJSON struct {
	TotalTasks      int            `json:"totalTasks"`
	Containers      int            `json:"containers"`
	Leaves          int            `json:"leaves"`
	ByStatus        map[string]int `json:"byStatus"`
	ProgressEntries int            `json:"progressEntries"`
	OverallProgress float64        `json:"overallProgress"`
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Type        string     `json:"type"`
	Unit        *string    `json:"unit"`
	TargetValue *float64   `json:"targetValue"`
	Deadline    *time.Time `json:"deadline"`
	ParentID    *string    `json:"parentId"`
}

type updateTaskRequest struct {
	Title       engine.Field[string]        `json:"title"`
	Description engine.Field[string]        `json:"description"`
	Status      engine.Field[engine.Status] `json:"status"`
	Unit        engine.Field[string]        `json:"unit"`
	TargetValue engine.Field[float64]       `json:"targetValue"`
	Deadline    engine.Field[time.Time]     `json:"deadline"`
}

type reorderTaskRequest struct {
	NewPosition int                  `json:"newPosition"`
	NewParentID engine.Field[string] `json:"newParentId"`
}

type addProgressRequest struct {
	Value      *float64   `json:"value"`
	Note       *string    `json:"note"`
	RecordedAt *time.Time `json:"recordedAt"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func toTaskJSON(t storage.Task) taskJSON {
	return taskJSON{
		ID:          t.ID,
		UserID:      t.OwnerID,
		ParentID:    t.ParentID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Type:        t.Kind,
		Unit:        t.Unit,
		TargetValue: t.TargetValue,
		Position:    t.Position,
		Deadline:    t.Deadline,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskListJSON(tasks []storage.Task) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskJSON(t))
	}
	return out
}

func toTaskViewJSON(v engine.TaskView) taskViewJSON {
	out := taskViewJSON{
		taskJSON:          toTaskJSON(v.Task),
		Progress:          v.Progress,
		CompletedChildren: v.CompletedChildren,
		TotalChildren:     v.TotalChildren,
		Children:          make([]taskViewJSON, 0, len(v.Children)),
	}
	for _, c := range v.Children {
		out.Children = append(out.Children, toTaskViewJSON(c))
	}
	return out
}

func toEntryJSON(e storage.ProgressEntry) entryJSON {
	return entryJSON{
		ID:         e.ID,
		TaskID:     e.TaskID,
		Value:      e.Value,
		Note:       e.Note,
		RecordedAt: e.RecordedAt,
		CreatedAt:  e.CreatedAt,
	}
}

func toStatsJSON(s engine.OwnerStats) statsJSON {
	byStatus := make(map[string]int, len(s.ByStatus))
	for k, v := range s.ByStatus {
		byStatus[string(k)] = v
	}
	return statsJSON{
		TotalTasks:      s.TotalTasks,
		Containers:      s.Containers,
		Leaves:          s.Leaves,
		ByStatus:        byStatus,
		ProgressEntries: s.ProgressEntries,
		OverallProgress: s.OverallProgress,
	}
}
