package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/oceandiag/ocean-diagnostics-go/internal/models"
	"github.com/oceandiag/ocean-diagnostics-go/internal/repository"
)

// AnalysisTaskService queues diagnostics for asynchronous execution and
// records their lifecycle in the task table.
type AnalysisTaskService struct {
	repo *repository.AnalysisTaskRepository
	diag *DiagnosticsService
}

// NewAnalysisTaskService creates a new analysis task service
func NewAnalysisTaskService(repo *repository.AnalysisTaskRepository, diag *DiagnosticsService) *AnalysisTaskService {
	return &AnalysisTaskService{repo: repo, diag: diag}
}

// CreateTask records a pending task and starts its worker.
func (s *AnalysisTaskService) CreateTask(diagnostic string, params map[string]interface{}, createdBy string) (*models.AnalysisTask, error) {
	if !models.IsKnownDiagnostic(diagnostic) {
		return nil, fmt.Errorf("unknown diagnostic: %s", diagnostic)
	}

	paramsJSON := ""
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize params: %w", err)
		}
		paramsJSON = string(b)
	}

	task := &models.AnalysisTask{
		Diagnostic: diagnostic,
		Status:     models.TaskStatusPending,
		ParamsJSON: paramsJSON,
		CreatedBy:  createdBy,
	}
	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	go s.run(task.ID, diagnostic, paramsJSON)

	return task, nil
}

// GetTask retrieves a task by ID.
func (s *AnalysisTaskService) GetTask(id int64) (*models.AnalysisTask, error) {
	return s.repo.GetByID(id)
}

// ListTasks retrieves tasks with optional filters.
func (s *AnalysisTaskService) ListTasks(diagnostic, status string, limit, offset int) ([]*models.AnalysisTask, error) {
	return s.repo.List(diagnostic, status, limit, offset)
}

// run executes one task to completion, recording the outcome.
func (s *AnalysisTaskService) run(id int64, diagnostic, paramsJSON string) {
	log.Printf("Running task %d (%s)", id, diagnostic)
	if err := s.repo.MarkAsRunning(id); err != nil {
		log.Printf("Task %d: %v", id, err)
		return
	}

	result, err := s.execute(diagnostic, []byte(paramsJSON))
	if err != nil {
		log.Printf("Task %d failed: %v", id, err)
		if err := s.repo.MarkAsFailed(id, err.Error()); err != nil {
			log.Printf("Task %d: %v", id, err)
		}
		return
	}

	b, err := json.Marshal(result)
	if err != nil {
		if err := s.repo.MarkAsFailed(id, fmt.Sprintf("failed to serialize result: %v", err)); err != nil {
			log.Printf("Task %d: %v", id, err)
		}
		return
	}
	if err := s.repo.MarkAsCompleted(id, string(b)); err != nil {
		log.Printf("Task %d: %v", id, err)
	}
}

// execute dispatches a diagnostic by name over its serialized params.
func (s *AnalysisTaskService) execute(diagnostic string, params []byte) (interface{}, error) {
	ctx := context.Background()

	switch diagnostic {
	case models.DiagnosticRadiusSubset:
		var req models.RadiusQueryRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
		return s.diag.RadiusQuery(ctx, &req)
	case models.DiagnosticNearestIndices:
		var req models.NearestQueryRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
		return s.diag.NearestQuery(ctx, &req)
	case models.DiagnosticTrackSummary:
		var req models.TrackSummaryRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
		return s.diag.TrackSummary(&req), nil
	case models.DiagnosticDoodsonX0:
		var req models.TidalFilterRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
		return s.diag.TidalFilter(&req)
	case models.DiagnosticDistributionCompare:
		var req models.CompareRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
		return s.diag.Compare(&req)
	}
	return nil, fmt.Errorf("unknown diagnostic: %s", diagnostic)
}
