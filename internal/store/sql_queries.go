package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/avoronin/go-task-keeper/models"
)

const (
	createUser = `INSERT INTO users (name, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, name, email, password_hash, role, created_at, updated_at;`

	findUserByEmail = `SELECT user_id, name, email, password_hash, role, created_at, updated_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, name, email, password_hash, role, created_at, updated_at
    FROM users
    WHERE user_id = $1;`

	updateUserName = `UPDATE users
    SET name = $1, updated_at = NOW()
    WHERE user_id = $2
    RETURNING user_id, name, email, password_hash, role, created_at, updated_at;`

	listUsers = `SELECT user_id, name, email, password_hash, role, created_at, updated_at
    FROM users
    ORDER BY user_id;`

	createTask = `INSERT INTO tasks (id, user_id, title, description, status, priority, due_date, completed_at, labels)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING id, user_id, title, description, status, priority, due_date, completed_at, labels, created_at, updated_at;`

	getTask = `SELECT id, user_id, title, description, status, priority, due_date, completed_at, labels, created_at, updated_at
    FROM tasks
    WHERE id = $1 AND user_id = $2;`

	updateTask = `UPDATE tasks
    SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, completed_at = $6, labels = $7, updated_at = NOW()
    WHERE id = $8 AND user_id = $9
    RETURNING id, user_id, title, description, status, priority, due_date, completed_at, labels, created_at, updated_at;`

	deleteTask = `DELETE FROM tasks
    WHERE id = $1 AND user_id = $2;`
)

// taskColumns is the canonical column order shared by all task SELECTs.
var taskColumns = []string{
	"id", "user_id", "title", "description", "status", "priority",
	"due_date", "completed_at", "labels", "created_at", "updated_at",
}

// priorityRank orders the textual priority column semantically
// (low < medium < high) instead of alphabetically.
const priorityRank = `CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 END`

// buildListTasksQuery translates a [models.TaskFilter] into a deterministic
// SQL query over the tasks table.
//
// The ownership constraint is always the first predicate; optional
// status/priority equality filters and the case-insensitive title OR
// description substring search are AND-composed after it. Exactly one sort
// key is active: due date, priority rank, or the default newest-first
// creation order.
func buildListTasksQuery(userID int64, filter models.TaskFilter) (string, []any, error) {
	qb := sq.Select(taskColumns...).
		From(models.Task{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar)

	if filter.Status != "" {
		qb = qb.Where(sq.Eq{"status": filter.Status})
	}

	if filter.Priority != "" {
		qb = qb.Where(sq.Eq{"priority": filter.Priority})
	}

	if filter.Search != "" {
		pattern := "%" + escapeLikePattern(filter.Search) + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}

	switch filter.Sort {
	case models.SortDueDateAsc:
		qb = qb.OrderBy("due_date ASC")
	case models.SortDueDateDesc:
		qb = qb.OrderBy("due_date DESC")
	case models.SortPriorityAsc:
		qb = qb.OrderBy(priorityRank + " ASC")
	case models.SortPriorityDesc:
		qb = qb.OrderBy(priorityRank + " DESC")
	default:
		qb = qb.OrderBy("created_at DESC")
	}

	return qb.ToSql()
}

// escapeLikePattern neutralises LIKE metacharacters in user-supplied search
// text so that "%" and "_" match literally.
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
