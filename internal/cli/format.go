package cli

import (
	"fmt"
	"time"

	"todo/internal/domain"
)

// formatTask renders a task as "description | priority | due | status".
func formatTask(t *domain.Task, dateFormat string) string {
	return fmt.Sprintf("%s | %s | %s | %s", t.Description, t.Priority, t.DueDate.Format(dateFormat), t.Status)
}

func overdueMarker(t *domain.Task, now time.Time) string {
	if t.IsOverdue(now) {
		return "!"
	}
	return ""
}
