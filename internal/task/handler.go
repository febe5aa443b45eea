package task

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/skillsprint-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// Handler 将任务相关的HTTP请求映射到Service。
type Handler struct {
	service *Service
}

// NewHandler 创建一个任务Handler。
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createTaskRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description"`
	Status      string   `json:"status" binding:"omitempty,oneof=todo in-progress completed"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string  `json:"due_date"`
	Resources   []string `json:"resources"`
}

type patchTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo in-progress completed"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create 处理 POST /api/tasks
func (h *Handler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "details": err.Error()})
		return
	}

	dueDate, ok := parseOptionalTime(req.DueDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid due_date"})
		return
	}

	t := Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      Status(req.Status),
		Priority:    Priority(req.Priority),
		DueDate:     dueDate,
		Resources:   StringList(req.Resources),
	}
	if err := h.service.Create(&t); err != nil {
		fmt.Printf("创建任务失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": t})
}

// List 处理 GET /api/tasks
func (h *Handler) List(c *gin.Context) {
	tasks, err := h.service.List()
	if err != nil {
		fmt.Printf("查询任务列表失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tasks, "count": len(tasks)})
}

// GetByID 处理 GET /api/tasks/:id
func (h *Handler) GetByID(c *gin.Context) {
	t, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": t})
}

// ListByStatus 处理 GET /api/tasks/status/:status
func (h *Handler) ListByStatus(c *gin.Context) {
	tasks, err := h.service.ListByStatus(Status(c.Param("status")))
	if err != nil {
		h.respondError(c, err, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tasks, "count": len(tasks)})
}

// PatchTask 处理 PATCH /api/tasks/:id
// 只更新请求体中明确出现的字段。
func (h *Handler) PatchTask(c *gin.Context) {
	var req patchTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Validation failed", "details": err.Error()})
		return
	}

	patch := Patch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := Status(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := Priority(*req.Priority)
		patch.Priority = &priority
	}
	if req.DueDate != nil {
		dueDate, ok := parseOptionalTime(req.DueDate)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid due_date"})
			return
		}
		patch.DueDate = dueDate
	}

	t, err := h.service.Apply(c.Param("id"), patch, user.CurrentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": t, "message": "Task updated successfully"})
}

// UpdateStatus 处理 PATCH /api/tasks/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status"})
		return
	}

	t, err := h.service.UpdateStatus(c.Param("id"), Status(req.Status), user.CurrentUserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to update task status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": t, "message": "Task status updated successfully"})
}

// Delete 处理 DELETE /api/tasks/:id
func (h *Handler) Delete(c *gin.Context) {
	t, err := h.service.Delete(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to delete task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": t, "message": "Task deleted successfully"})
}

// respondError 将服务层错误翻译为统一的响应体和状态码。
func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Task not found"})
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status"})
	case errors.Is(err, ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid priority"})
	default:
		fmt.Printf("任务操作失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fallback})
	}
}

// parseOptionalTime 解析可选的RFC3339时间字符串。
func parseOptionalTime(s *string) (*time.Time, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}
