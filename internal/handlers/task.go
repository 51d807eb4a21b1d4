package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/middleware"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/models"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/shift"
)

type TaskHandler struct {
	DB *gorm.DB
}

type assignTaskRequest struct {
	EmployeeID  string `json:"employeeId" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{DB: db}
}

func (h *TaskHandler) Assign(c *gin.Context) {
	var req assignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employeeId"})
		return
	}

	var employee models.Employee
	if err := h.DB.First(&employee, "id = ? AND is_active = ?", employeeID, true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	task := models.Task{
		EmployeeID:   employeeID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		AssignedDate: shift.DayOf(time.Now()),
	}
	if err := h.DB.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "task assignment failed"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	employeeID, ok := contextEmployeeID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	role, _ := c.Get(middleware.ContextRole)
	query := h.DB.Order("created_at desc")
	if requested := c.Query("employeeId"); requested != "" && role != models.RoleEmployee {
		parsed, err := uuid.Parse(requested)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employeeId"})
			return
		}
		query = query.Where("employee_id = ?", parsed)
	} else {
		query = query.Where("employee_id = ?", employeeID)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Complete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var task models.Task
	if err := h.DB.First(&task, "id = ?", taskID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	role, _ := c.Get(middleware.ContextRole)
	if role == models.RoleEmployee {
		employeeID, ok := contextEmployeeID(c)
		if !ok || task.EmployeeID != employeeID {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
	}

	task.IsCompleted = true
	if err := h.DB.Save(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, task)
}
