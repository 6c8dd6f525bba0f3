package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/oceandiag/ocean-diagnostics-go/internal/models"
)

// AnalysisTaskRepository handles database operations for analysis tasks
type AnalysisTaskRepository struct {
	db *sql.DB
}

// NewAnalysisTaskRepository creates a new analysis task repository
func NewAnalysisTaskRepository(db *sql.DB) *AnalysisTaskRepository {
	return &AnalysisTaskRepository{db: db}
}

// Create creates a new analysis task
func (r *AnalysisTaskRepository) Create(task *models.AnalysisTask) error {
	query := `
		INSERT INTO analysis_tasks (
			diagnostic, status, params_json, start_time, end_time,
			result_json, error_message, created_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		task.Diagnostic,
		task.Status,
		task.ParamsJSON,
		task.StartTime,
		task.EndTime,
		task.ResultJSON,
		task.ErrorMessage,
		task.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	task.ID = id
	return nil
}

// GetByID retrieves an analysis task by ID
func (r *AnalysisTaskRepository) GetByID(id int64) (*models.AnalysisTask, error) {
	query := `
		SELECT id, diagnostic, status, params_json, start_time, end_time,
			   result_json, error_message, created_by, created_at, updated_at
		FROM analysis_tasks
		WHERE id = ?
	`

	task := &models.AnalysisTask{}
	err := r.db.QueryRow(query, id).Scan(
		&task.ID,
		&task.Diagnostic,
		&task.Status,
		&task.ParamsJSON,
		&task.StartTime,
		&task.EndTime,
		&task.ResultJSON,
		&task.ErrorMessage,
		&task.CreatedBy,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis task not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis task: %w", err)
	}

	return task, nil
}

// List retrieves analysis tasks with optional filters
func (r *AnalysisTaskRepository) List(diagnostic string, status string, limit int, offset int) ([]*models.AnalysisTask, error) {
	query := `
		SELECT id, diagnostic, status, params_json, start_time, end_time,
			   result_json, error_message, created_by, created_at, updated_at
		FROM analysis_tasks
		WHERE 1=1
	`

	args := []interface{}{}
	if diagnostic != "" {
		query += " AND diagnostic = ?"
		args = append(args, diagnostic)
	}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.AnalysisTask
	for rows.Next() {
		task := &models.AnalysisTask{}
		err := rows.Scan(
			&task.ID,
			&task.Diagnostic,
			&task.Status,
			&task.ParamsJSON,
			&task.StartTime,
			&task.EndTime,
			&task.ResultJSON,
			&task.ErrorMessage,
			&task.CreatedBy,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analysis tasks: %w", err)
	}

	return tasks, nil
}

// MarkAsRunning marks a task as running
func (r *AnalysisTaskRepository) MarkAsRunning(id int64) error {
	now := time.Now().Unix()
	query := `
		UPDATE analysis_tasks
		SET status = ?, start_time = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query, models.TaskStatusRunning, now, id)
	if err != nil {
		return fmt.Errorf("failed to mark task as running: %w", err)
	}

	return nil
}

// MarkAsCompleted marks a task as completed with its result payload
func (r *AnalysisTaskRepository) MarkAsCompleted(id int64, resultJSON string) error {
	now := time.Now().Unix()
	query := `
		UPDATE analysis_tasks
		SET status = ?, end_time = ?, result_json = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query, models.TaskStatusCompleted, now, resultJSON, id)
	if err != nil {
		return fmt.Errorf("failed to mark task as completed: %w", err)
	}

	return nil
}

// MarkAsFailed marks a task as failed with an error message
func (r *AnalysisTaskRepository) MarkAsFailed(id int64, errorMessage string) error {
	now := time.Now().Unix()
	query := `
		UPDATE analysis_tasks
		SET status = ?, end_time = ?, error_message = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query, models.TaskStatusFailed, now, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to mark task as failed: %w", err)
	}

	return nil
}
