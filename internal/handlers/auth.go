package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/config"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/middleware"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/models"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/shift"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/utils"
)

type AuthHandler struct {
	DB      *gorm.DB
	Cfg     config.Config
	Tracker *shift.Tracker
}

type loginRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	Department string `json:"department" binding:"required"`
	Role       string `json:"role" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func NewAuthHandler(db *gorm.DB, cfg config.Config, tracker *shift.Tracker) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, Tracker: tracker}
}

// Login checks the full credential tuple (badge id, department, role,
// password) against active employees, mints tokens, and records
// today's attendance login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var employee models.Employee
	err := h.DB.
		Joins("JOIN departments ON departments.id = employees.department_id").
		Where("employees.employee_id = ? AND departments.name = ? AND employees.role = ? AND employees.is_active = ?",
			strings.TrimSpace(req.EmployeeID), req.Department, strings.ToUpper(strings.TrimSpace(req.Role)), true).
		Preload("Department").
		First(&employee).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !utils.CheckPassword(employee.PasswordHash, strings.TrimSpace(req.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	accessToken, refreshToken, err := h.issueTokens(employee.ID, employee.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	record, err := h.Tracker.Login(employee.ID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "attendance login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"employee": gin.H{
			"id":         employee.ID,
			"employeeId": employee.EmployeeID,
			"role":       employee.Role,
			"department": req.Department,
		},
		"attendance": record,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var token models.RefreshToken
	if err := h.DB.Where("token = ? AND revoked_at IS NULL AND expires_at > ?", req.RefreshToken, time.Now()).First(&token).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh"})
		return
	}

	var employee models.Employee
	if err := h.DB.First(&employee, "id = ? AND is_active = ?", token.EmployeeID, true).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(employee.ID.String(), employee.Role, h.Cfg.JwtSecret, h.Cfg.JwtAccessMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Logout revokes a refresh token. It does not touch the attendance
// record; the day is closed through the attendance logout endpoint.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	now := time.Now()
	h.DB.Model(&models.RefreshToken{}).
		Where("token = ? AND revoked_at IS NULL", req.RefreshToken).
		Update("revoked_at", now)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	employeeID, ok := c.Get(middleware.ContextEmployeeID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var employee models.Employee
	if err := h.DB.Preload("Department").First(&employee, "id = ?", employeeID.(string)).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (h *AuthHandler) issueTokens(employeeID uuid.UUID, role string) (string, string, error) {
	accessToken, err := utils.GenerateAccessToken(employeeID.String(), role, h.Cfg.JwtSecret, h.Cfg.JwtAccessMinutes)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return "", "", err
	}

	expiresAt := time.Now().Add(time.Duration(h.Cfg.JwtRefreshHours) * time.Hour)
	if err := h.DB.Create(&models.RefreshToken{
		EmployeeID: employeeID,
		Token:      refreshToken,
		ExpiresAt:  expiresAt,
	}).Error; err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
