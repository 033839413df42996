package domain

import "time"

// RawDeadline is a deadline exactly as the backend returns it: extraction
// confidence is a nullable score in [0,1] and most display fields may be
// absent.
type RawDeadline struct {
	ID          string     `json:"id"`
	Title       string     `json:"title,omitempty"`
	Reason      string     `json:"deadline_reason,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Confidence  *float64   `json:"confidence,omitempty"`
	AIGenerated bool       `json:"ai_generated"`
	DocumentID  string     `json:"document_id"`
	UserID      string     `json:"user_id"`
	EntityID    string     `json:"entity_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type DeadlinePriority string

const (
	PriorityHigh   DeadlinePriority = "high"
	PriorityMedium DeadlinePriority = "medium"
	PriorityLow    DeadlinePriority = "low"
)

type DeadlineStatus string

const (
	DeadlinePending   DeadlineStatus = "pending"
	DeadlineCompleted DeadlineStatus = "completed"
)

// Deadline is the display-safe form: every field has a defined value.
type Deadline struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	DueDate     time.Time        `json:"due_date"`
	Priority    DeadlinePriority `json:"priority"`
	Status      DeadlineStatus   `json:"status"`
	DocumentID  string           `json:"document_id"`
}

// DeadlinePatch is the editable subset sent on a deadline update.
type DeadlinePatch struct {
	Title   string     `json:"title"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

const (
	deadlineFallbackTitle       = "No title"
	deadlineFallbackDescription = "No additional context provided"
)

// NormalizeDeadline converts a raw deadline into its display form. It is
// total: every nullable field gets a fallback. A missing due date defaults
// to now, and an overdue deadline maps to status "completed". Downstream
// consumers key on both behaviors, so they are kept verbatim.
func NormalizeDeadline(raw RawDeadline, now time.Time) Deadline {
	overdue := raw.DueDate != nil && raw.DueDate.Before(now)

	priority := PriorityMedium
	if raw.Confidence != nil {
		switch {
		case *raw.Confidence >= 0.8:
			priority = PriorityHigh
		case *raw.Confidence <= 0.4:
			priority = PriorityLow
		}
	}

	title := raw.Title
	if title == "" {
		title = deadlineFallbackTitle
	}
	description := raw.Reason
	if description == "" {
		description = deadlineFallbackDescription
	}
	dueDate := now
	if raw.DueDate != nil {
		dueDate = *raw.DueDate
	}

	status := DeadlinePending
	if overdue {
		status = DeadlineCompleted
	}

	return Deadline{
		ID:          raw.ID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      status,
		DocumentID:  raw.DocumentID,
	}
}

// NormalizeDeadlines maps a raw slice, evaluating all records against the
// same instant.
func NormalizeDeadlines(raws []RawDeadline, now time.Time) []Deadline {
	out := make([]Deadline, 0, len(raws))
	for _, raw := range raws {
		out = append(out, NormalizeDeadline(raw, now))
	}
	return out
}
