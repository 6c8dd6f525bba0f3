package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oceandiag/ocean-diagnostics-go/internal/models"
	"github.com/oceandiag/ocean-diagnostics-go/internal/service"
	"github.com/oceandiag/ocean-diagnostics-go/pkg/response"
)

// AnalysisTaskHandler handles HTTP requests for analysis tasks
type AnalysisTaskHandler struct {
	taskService *service.AnalysisTaskService
}

// NewAnalysisTaskHandler creates a new analysis task handler
func NewAnalysisTaskHandler(taskService *service.AnalysisTaskService) *AnalysisTaskHandler {
	return &AnalysisTaskHandler{
		taskService: taskService,
	}
}

// CreateTask handles POST /api/v1/tasks
func (h *AnalysisTaskHandler) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = c.GetString("subject")
	}

	task, err := h.taskService.CreateTask(req.Diagnostic, req.Params, createdBy)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, task)
}

// GetTask handles GET /api/v1/tasks/:id
func (h *AnalysisTaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid task id")
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, task)
}

// ListTasks handles GET /api/v1/tasks
func (h *AnalysisTaskHandler) ListTasks(c *gin.Context) {
	diagnostic := c.Query("diagnostic")
	status := c.Query("status")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.BadRequest(c, "Invalid offset parameter")
		return
	}

	tasks, err := h.taskService.ListTasks(diagnostic, status, limit, offset)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  tasks,
		"count": len(tasks),
	})
}
