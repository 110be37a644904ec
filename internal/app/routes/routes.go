package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ravi1475/school-erp-backend/internal/app/controllers"
	"github.com/ravi1475/school-erp-backend/internal/app/models"
	"github.com/ravi1475/school-erp-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrls.Auth.Login)
	}

	students := v1.Group("/students")
	{
		// The admission form posts without a session; the form itself is the
		// front door of the system.
		students.POST("/admissions", ctrls.Students.Admit)
		students.GET("", ctrls.Students.ListStudents)
		students.GET("/:id", ctrls.Students.GetStudent)
		students.GET("/:id/payments", ctrls.Fees.ListPayments)
		students.GET("/:id/balance", ctrls.Fees.GetBalance)
		students.GET("/:id/certificates", ctrls.Certificates.GetForStudent)
	}

	v1.GET("/schools/:id", ctrls.Schools.Get)
	v1.GET("/fees/structures", ctrls.Fees.ListStructures)
	v1.GET("/fees/structures/:id", ctrls.Fees.GetStructure)
	v1.GET("/certificates", ctrls.Certificates.List)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	staff := authenticated.Group("")
	staff.Use(authMiddleware.RoleRequired(string(models.RoleAdmin), string(models.RoleSchool)))
	{
		staff.PUT("/students/:id", ctrls.Students.UpdateStudent)
		staff.DELETE("/students/:id", ctrls.Students.DeleteStudent)

		staff.POST("/students/:id/payments", ctrls.Fees.RecordPayment)
		staff.POST("/students/:id/certificates", ctrls.Certificates.Issue)

		staff.POST("/fees/structures", ctrls.Fees.CreateStructure)
		staff.PUT("/fees/structures/:id", ctrls.Fees.UpdateStructure)
		staff.DELETE("/fees/structures/:id", ctrls.Fees.DeleteStructure)
	}

	admin := authenticated.Group("")
	admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		admin.POST("/schools", ctrls.Schools.Create)
		admin.GET("/schools", ctrls.Schools.List)
	}
}
