package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/middleware"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/models"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/utils"
)

type EmployeeHandler struct {
	DB *gorm.DB
}

type createEmployeeRequest struct {
	EmployeeID string `json:"employeeId" binding:"required,max=20"`
	Department string `json:"department" binding:"required"`
	Role       string `json:"role"`
	Phone      string `json:"phone" binding:"required"`
}

type createDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{DB: db}
}

func normalizeRole(value string) (string, bool) {
	role := strings.ToUpper(strings.TrimSpace(value))
	if role == "" {
		return models.RoleEmployee, true
	}
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleEmployee:
		return role, true
	}
	return "", false
}

// Create registers an employee. The phone number doubles as the
// initial password, as in the legacy onboarding flow.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	role, ok := normalizeRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	var department models.Department
	if err := h.DB.Where("name = ?", strings.TrimSpace(req.Department)).First(&department).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown department"})
		return
	}

	badge := strings.TrimSpace(req.EmployeeID)
	var existing models.Employee
	if err := h.DB.Where("employee_id = ?", badge).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "employee id already exists"})
		return
	}

	phone := strings.TrimSpace(req.Phone)
	passwordHash, err := utils.HashPassword(phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password error"})
		return
	}

	employee := models.Employee{
		EmployeeID:   badge,
		DepartmentID: &department.ID,
		Role:         role,
		Phone:        phone,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	if err := h.DB.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "employee creation failed"})
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	role, _ := c.Get(middleware.ContextRole)
	if role == models.RoleEmployee {
		employeeID, ok := contextEmployeeID(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		var employee models.Employee
		if err := h.DB.Preload("Department").First(&employee, "id = ?", employeeID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusOK, []models.Employee{employee})
		return
	}

	var employees []models.Employee
	if err := h.DB.Preload("Department").Order("created_at desc").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

// Deactivate soft-disables an employee; credentials stop matching but
// attendance history is retained.
func (h *EmployeeHandler) Deactivate(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result := h.DB.Model(&models.Employee{}).Where("id = ?", employeeID).Update("is_active", false)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deactivated"})
}

func (h *EmployeeHandler) ListDepartments(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Order("name asc").Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load departments"})
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (h *EmployeeHandler) CreateDepartment(c *gin.Context) {
	var req createDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	department := models.Department{Name: strings.TrimSpace(req.Name)}
	if err := h.DB.Create(&department).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "department already exists"})
		return
	}
	c.JSON(http.StatusCreated, department)
}
