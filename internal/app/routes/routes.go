package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eminekt/campuslib/internal/app/controllers"
	"github.com/eminekt/campuslib/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	bookController *controllers.BookController,
	studentController *controllers.StudentController,
	issueController *controllers.IssueController,
	chatController *controllers.ChatController,
) {
	// Welcome endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Welcome to Library Management System API",
			"docs_url": "/swagger/index.html",
		})
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// Book routes
	books := v1.Group("/books")
	{
		books.POST("", bookController.CreateBook)
		books.GET("", bookController.ListBooks)
		books.GET("/:id", bookController.GetBookByID)
		books.PUT("/:id", bookController.UpdateBook)
		books.DELETE("/:id", bookController.DeleteBook)
	}

	// Student routes
	students := v1.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.ListStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	// Issue routes
	issues := v1.Group("/issues")
	{
		issues.POST("", issueController.CreateIssue)
		issues.PUT("/:id/return", issueController.ReturnIssue)
		issues.GET("/active", issueController.ListActiveIssues)
		issues.GET("/overdue", issueController.ListOverdueIssues)
		issues.GET("/student/:id", issueController.ListStudentIssues)
		issues.GET("/student/:id/overdue", issueController.ListStudentOverdueIssues)
	}

	// Chat routes
	chat := v1.Group("/chat")
	{
		chat.POST("/ask", chatController.Ask)
	}
}
