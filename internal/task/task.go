package task

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MaxNameLen is the longest task name kept after sanitization, in runes.
const MaxNameLen = 100

// Task is a single to-do entry. ID is opaque and immutable once created.
type Task struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Complete bool   `json:"complete"`
}

// New builds an active task with a fresh unique identifier. The caller is
// expected to have sanitized name first.
func New(name string) Task {
	return Task{ID: uuid.NewString(), Name: name}
}

// CleanName collapses the input to a single trimmed line and truncates it to
// MaxNameLen runes. Returns "" when nothing usable remains.
func CleanName(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(strings.Join(strings.Fields(s), " "))
	if r := []rune(s); len(r) > MaxNameLen {
		s = string(r[:MaxNameLen])
	}
	return s
}

// ListError reports why a decoded collection was rejected. Index is -1 when
// the payload as a whole is not a task array.
type ListError struct {
	Index  int
	Reason string
}

func (e *ListError) Error() string {
	if e.Index < 0 {
		return "task list: " + e.Reason
	}
	return fmt.Sprintf("task list: element %d: %s", e.Index, e.Reason)
}

// DecodeList parses a JSON-encoded task collection and checks every element's
// shape: id and name must be non-empty strings, complete a boolean, ids unique.
// It returns the validated list in stored order, or a *ListError naming the
// first offending element.
func DecodeList(b []byte) ([]Task, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(b, &elems); err != nil {
		return nil, &ListError{Index: -1, Reason: "not a JSON array"}
	}
	out := make([]Task, 0, len(elems))
	seen := make(map[string]struct{}, len(elems))
	for i, e := range elems {
		var shape struct {
			ID       *string `json:"id"`
			Name     *string `json:"name"`
			Complete *bool   `json:"complete"`
		}
		if err := json.Unmarshal(e, &shape); err != nil {
			return nil, &ListError{Index: i, Reason: "not a task object"}
		}
		switch {
		case shape.ID == nil || *shape.ID == "":
			return nil, &ListError{Index: i, Reason: "missing id"}
		case shape.Name == nil || *shape.Name == "":
			return nil, &ListError{Index: i, Reason: "missing name"}
		case shape.Complete == nil:
			return nil, &ListError{Index: i, Reason: "missing complete flag"}
		}
		if _, dup := seen[*shape.ID]; dup {
			return nil, &ListError{Index: i, Reason: "duplicate id " + *shape.ID}
		}
		seen[*shape.ID] = struct{}{}
		out = append(out, Task{ID: *shape.ID, Name: *shape.Name, Complete: *shape.Complete})
	}
	return out, nil
}

// EncodeList serializes tasks in order for the storage slot. A nil list
// encodes as an empty array, never null.
func EncodeList(ts []Task) ([]byte, error) {
	if ts == nil {
		ts = []Task{}
	}
	return json.Marshal(ts)
}
