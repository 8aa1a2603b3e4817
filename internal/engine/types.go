package engine

import "strings"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Kind determines whether children or progress entries drive a task's
// completion.
type Kind string

const (
	KindContainer Kind = "container"
	KindLeaf      Kind = "leaf"
)

func (k Kind) IsValid() bool {
	return k == KindContainer || k == KindLeaf
}

// ParseStatus parses user input to a Status. Empty or unrecognized input
// returns "" and false.
func ParseStatus(input string) (Status, bool) {
	s := Status(strings.TrimSpace(strings.ToLower(input)))
	switch s {
	case "in-progress", "active", "doing":
		return StatusInProgress, true
	case "done":
		return StatusCompleted, true
	}
	if s.IsValid() {
		return s, true
	}
	return "", false
}

// ParseKind parses user input to a Kind.
func ParseKind(input string) (Kind, bool) {
	k := Kind(strings.TrimSpace(strings.ToLower(input)))
	switch k {
	case "goal", "group":
		return KindContainer, true
	case "task", "item":
		return KindLeaf, true
	}
	if k.IsValid() {
		return k, true
	}
	return "", false
}
