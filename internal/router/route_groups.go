package router

import (
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/handlers"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
		authRoutes.POST("/reset-password", authHandler.ResetPassword)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.Me)
		}
	}
}

// SetupClientRoutes sets up the client and client-attendance routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler) {
	clientRoutes := authenticatedGroup.Group("/clients")
	{
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.GET("/absent", clientHandler.GetAbsentClients)
		clientRoutes.POST("/attendance", clientHandler.MarkClientAttendance)
		clientRoutes.GET("/attendance/all", clientHandler.GetAllClientAttendance)
		clientRoutes.GET("/daily-attendance", clientHandler.GetDailyAttendance)
		clientRoutes.GET("/visit-frequency", clientHandler.GetVisitFrequency)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
	}
}

// SetupStaffRoutes sets up the staff and staff-attendance routes.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := authenticatedGroup.Group("/staff")
	{
		staffRoutes.POST("", staffHandler.CreateStaff)
		staffRoutes.GET("", staffHandler.GetStaff)
		staffRoutes.GET("/absent", staffHandler.GetAbsentStaff)
		staffRoutes.POST("/attendance", staffHandler.MarkStaffAttendance)
		staffRoutes.GET("/:id", staffHandler.GetStaffByID)
		staffRoutes.PUT("/:id", staffHandler.UpdateStaff)
		staffRoutes.DELETE("/:id", staffHandler.DeleteStaff)
	}
}

// SetupMembershipRoutes sets up the membership ledger routes.
func SetupMembershipRoutes(authenticatedGroup *gin.RouterGroup, membershipHandler *handlers.MembershipHandler) {
	membershipRoutes := authenticatedGroup.Group("/memberships")
	{
		membershipRoutes.POST("", membershipHandler.CreateMembership)
		membershipRoutes.PUT("", membershipHandler.UpdateMembership)
		membershipRoutes.GET("/:clientId/current", membershipHandler.GetCurrentMembership)
		membershipRoutes.GET("/:clientId/history", membershipHandler.GetMembershipHistory)
		membershipRoutes.GET("/:clientId/payments", membershipHandler.GetPaymentHistory)
	}
}

// SetupSalaryRoutes sets up the salary routes.
func SetupSalaryRoutes(authenticatedGroup *gin.RouterGroup, salaryHandler *handlers.SalaryHandler) {
	salaryRoutes := authenticatedGroup.Group("/salaries")
	{
		salaryRoutes.POST("", salaryHandler.AddSalaryPayment)
		salaryRoutes.GET("", salaryHandler.GetAllSalaries)
		salaryRoutes.GET("/:staffId/:year/:month", salaryHandler.GetSalary)
	}
}

// SetupFinanceRoutes sets up the finance report routes.
func SetupFinanceRoutes(authenticatedGroup *gin.RouterGroup, financeHandler *handlers.FinanceHandler) {
	financeRoutes := authenticatedGroup.Group("/finance")
	{
		financeRoutes.GET("/fees-and-salary", financeHandler.GetFeesAndSalary)
		financeRoutes.GET("/profit", financeHandler.GetYearlyProfit)
	}
}
