package main

import (
	"github.com/JorgeSaicoski/microservice-commons/config"
	"github.com/JorgeSaicoski/microservice-commons/server"
	attendanceRoutes "github.com/codeedex/hr-office/internal/api/attendance"
	authRoutes "github.com/codeedex/hr-office/internal/api/auth"
	dashboardRoutes "github.com/codeedex/hr-office/internal/api/dashboard"
	employeeRoutes "github.com/codeedex/hr-office/internal/api/employees"
	projectRoutes "github.com/codeedex/hr-office/internal/api/projects"
	"github.com/codeedex/hr-office/internal/auth"
	"github.com/codeedex/hr-office/internal/db"
	attendanceService "github.com/codeedex/hr-office/internal/services/attendance"
	dashboardService "github.com/codeedex/hr-office/internal/services/dashboard"
	employeeService "github.com/codeedex/hr-office/internal/services/employees"
	projectService "github.com/codeedex/hr-office/internal/services/projects"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	auth.InitJWTSecret()

	server := server.NewServer(server.ServerOptions{
		ServiceName:    "hr-office",
		ServiceVersion: "1.0.0",
		SetupRoutes:    setupRoutes,
	})
	server.Start()
}

func setupRoutes(router *gin.Engine, cfg *config.Config) {
	dbConnection, err := db.Connect()
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	if err := db.Migrate(dbConnection); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	// Initialize services
	employees := employeeService.NewEmployeeService(dbConnection)
	attendanceStore := attendanceService.NewGormStore(dbConnection)
	engine := attendanceService.NewEngine(attendanceStore, attendanceService.LoadConfig())
	projects := projectService.NewProjectService(dbConnection)
	dashboard := dashboardService.NewDashboardService(dbConnection)

	// Setup routes
	api := router.Group("/api")
	employeeRoutes.RegisterRoutes(api, employees)
	attendanceRoutes.RegisterRoutes(api, engine, attendanceStore)
	projectRoutes.RegisterRoutes(api, projects)
	dashboardRoutes.RegisterRoutes(api, dashboard)
	authRoutes.RegisterRoutes(api, employees, engine)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "hr-office",
			"version": "1.0.0",
		})
	})
}
