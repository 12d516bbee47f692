package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/avoronin/go-task-keeper/models"
)

// dueSoonWindow is how far ahead a due date may lie for the task to count
// as "due soon".
const dueSoonWindow = 7 * 24 * time.Hour

// Insights computes aggregate statistics over every task the user owns.
//
// All counters are derived in a single pass over an unfiltered listing:
// totals per status, totals per priority, the number of uncompleted tasks
// due within the next seven days, and the completion rate as a percentage
// rounded to the nearest integer (0 when the user has no tasks).
func (t *taskService) Insights(ctx context.Context, userID int64) (models.Insights, error) {
	tasks, err := t.taskRepository.ListTasks(ctx, userID, models.TaskFilter{})
	if err != nil {
		return models.Insights{}, fmt.Errorf("task listing failed: %w", err)
	}

	now := time.Now()
	horizon := now.Add(dueSoonWindow)

	insights := models.Insights{TotalTasks: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusCompleted:
			insights.CompletedTasks++
		case models.TaskStatusInProgress:
			insights.InProgressTasks++
		case models.TaskStatusTodo:
			insights.TodoTasks++
		}

		switch task.Priority {
		case models.TaskPriorityHigh:
			insights.PriorityBreakdown.High++
		case models.TaskPriorityMedium:
			insights.PriorityBreakdown.Medium++
		case models.TaskPriorityLow:
			insights.PriorityBreakdown.Low++
		}

		if task.Status != models.TaskStatusCompleted && task.DueDate != nil &&
			!task.DueDate.Before(now) && !task.DueDate.After(horizon) {
			insights.TasksDueSoon++
		}
	}

	if insights.TotalTasks > 0 {
		insights.CompletionRate = int(math.Round(float64(insights.CompletedTasks) / float64(insights.TotalTasks) * 100))
	}

	return insights, nil
}
