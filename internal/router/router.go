package router

import (
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/codes"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/handlers"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/middleware"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/services"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/timekey"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db store.Store, codeStore codes.Store) {
	clock := timekey.NewClock()

	// Initialize Repositories
	clientRepo := repositories.NewClientRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	paymentRepo := repositories.NewPaymentHistoryRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	salaryRepo := repositories.NewSalaryRepository(db)
	gymRepo := repositories.NewGymRepository(db)

	// Initialize Services
	membershipService := services.NewMembershipService(membershipRepo, paymentRepo, clock)
	attendanceService := services.NewAttendanceService(attendanceRepo, clock)
	clientService := services.NewClientService(clientRepo, membershipRepo, attendanceService, clock)
	staffService := services.NewStaffService(staffRepo, attendanceService, clock)
	salaryService := services.NewSalaryService(salaryRepo)
	financeService := services.NewFinanceService(membershipRepo, salaryRepo)
	authService := services.NewAuthService(gymRepo, codeStore)

	// Initialize Handlers
	clientHandler := handlers.NewClientHandler(clientService, attendanceService)
	staffHandler := handlers.NewStaffHandler(staffService, attendanceService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	salaryHandler := handlers.NewSalaryHandler(salaryService)
	financeHandler := handlers.NewFinanceHandler(financeService)
	authHandler := handlers.NewAuthHandler(authService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupClientRoutes(authenticated, clientHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupMembershipRoutes(authenticated, membershipHandler)
		SetupSalaryRoutes(authenticated, salaryHandler)
		SetupFinanceRoutes(authenticated, financeHandler)
	}
}
