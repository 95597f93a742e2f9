package services

import (
	"context"
	"time"

	"todo/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	taskService TaskService
	now         func() time.Time
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(taskService TaskService, opts Options) ReportingService {
	opts = opts.withDefaults()
	return &reportingServiceImpl{
		taskService: taskService,
		now:         opts.Now,
	}
}

// GetTaskSummary counts ownerID's tasks by status as of today
func (r *reportingServiceImpl) GetTaskSummary(ctx context.Context, ownerID int64) (*TaskSummary, error) {
	tasks, err := r.taskService.ListTasks(ctx, ownerID, domain.TaskFilter{Order: domain.OrderDue})
	if err != nil {
		return nil, err
	}
	return r.SummarizeTasks(tasks, r.now()), nil
}

// SummarizeTasks aggregates tasks. NextDue is the pending task with the
// earliest due date, ties going to the one listed first.
func (r *reportingServiceImpl) SummarizeTasks(tasks []*domain.Task, now time.Time) *TaskSummary {
	summary := &TaskSummary{Total: len(tasks)}

	for _, task := range tasks {
		if task.IsCompleted() {
			summary.Completed++
			continue
		}

		summary.Pending++
		if task.IsOverdue(now) {
			summary.Overdue++
		}
		if summary.NextDue == nil || task.DueDate.Before(summary.NextDue.DueDate) {
			summary.NextDue = task
		}
	}

	return summary
}
