package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/config"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/handlers"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/middleware"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/models"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/shift"
	"github.com/sachinyadav56/Employee-Task-Attendance-MS/internal/store"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "employee-task-attendance-backend"})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	attendanceStore := store.NewAttendanceStore(db)
	tracker := shift.NewTracker(cfg.Shift, attendanceStore)

	authHandler := handlers.NewAuthHandler(db, cfg, tracker)
	attendanceHandler := handlers.NewAttendanceHandler(tracker, attendanceStore)
	employeeHandler := handlers.NewEmployeeHandler(db)
	taskHandler := handlers.NewTaskHandler(db)

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/auth/logout", authHandler.Logout)
		// The login form needs the department list before auth.
		api.GET("/departments", employeeHandler.ListDepartments)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(cfg.JwtSecret))
	{
		protected.GET("/me", authHandler.Me)

		protected.GET("/attendance/dashboard", attendanceHandler.Dashboard)
		protected.POST("/attendance/logout", attendanceHandler.Logout)
		protected.GET("/attendance/report", attendanceHandler.Report)

		protected.GET("/tasks", taskHandler.List)
		protected.POST("/tasks", middleware.RequireAnyRole(models.RoleAdmin, models.RoleManager), taskHandler.Assign)
		protected.PATCH("/tasks/:id/complete", taskHandler.Complete)

		protected.GET("/employees", employeeHandler.List)
		protected.POST("/employees", middleware.RequireAnyRole(models.RoleAdmin, models.RoleManager), employeeHandler.Create)
		protected.DELETE("/employees/:id", middleware.RequireAnyRole(models.RoleAdmin, models.RoleManager), employeeHandler.Deactivate)
		protected.POST("/departments", middleware.RequireAnyRole(models.RoleAdmin), employeeHandler.CreateDepartment)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
