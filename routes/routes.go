package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/config"
	"github.com/vnkhanh/quizmaster-backend/controllers"
	"github.com/vnkhanh/quizmaster-backend/middleware"
	"github.com/vnkhanh/quizmaster-backend/services"
	"gorm.io/gorm"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, cfg config.Config) *gin.Engine {
	users := services.NewUsers(db)
	sessions := services.NewSessions(db, cfg.TokenTTL)
	tokens := services.NewTokens(cfg.JWTSecret)
	catalog := services.NewCatalog(db)

	authCtl := controllers.NewAuthController(users, sessions, tokens)
	catalogCtl := controllers.NewCatalogController(catalog, services.NewExporter(db), sessions)
	userCtl := controllers.NewUserController(users, sessions)
	attemptCtl := controllers.NewAttemptController(catalog, services.NewScorer(db), services.NewHistory(db), sessions)

	requireLogin := middleware.AuthMiddleware(tokens, sessions, users)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck(db))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/logout", requireLogin, authCtl.Logout)
	}

	user := r.Group("/user")
	{
		user.Use(requireLogin)

		user.GET("/dashboard", attemptCtl.Dashboard)
		user.GET("/quiz/:quiz_id/attempt", attemptCtl.Sheet)
		user.POST("/quiz/:quiz_id/attempt", attemptCtl.Submit)
		user.GET("/quiz/:quiz_id/result", attemptCtl.Result)
	}

	admin := r.Group("/admin")
	{
		admin.Use(requireLogin, middleware.RequireAdmin(sessions))

		admin.GET("/dashboard", catalogCtl.Dashboard)

		// Subjects
		admin.GET("/subjects", catalogCtl.ListSubjects)
		admin.POST("/subjects/add", catalogCtl.CreateSubject)
		admin.GET("/subjects/edit/:id", catalogCtl.GetSubject)
		admin.POST("/subjects/edit/:id", catalogCtl.UpdateSubject)
		admin.POST("/subjects/delete/:id", catalogCtl.DeleteSubject)

		// Chapters
		admin.GET("/subjects/:id/chapters", catalogCtl.ListChapters)
		admin.POST("/subjects/:id/chapters/add", catalogCtl.CreateChapter)
		admin.GET("/chapters/edit/:id", catalogCtl.GetChapter)
		admin.POST("/chapters/edit/:id", catalogCtl.UpdateChapter)
		admin.POST("/chapters/delete/:id", catalogCtl.DeleteChapter)

		// Quizzes
		admin.GET("/quizzes", catalogCtl.QuizOverview)
		admin.GET("/quizzes/select_chapter", catalogCtl.SelectChapter)
		admin.GET("/chapters/:id/quizzes", catalogCtl.ListQuizzes)
		admin.POST("/chapters/:id/quizzes/add", catalogCtl.CreateQuiz)
		admin.GET("/quizzes/edit/:id", catalogCtl.GetQuiz)
		admin.POST("/quizzes/edit/:id", catalogCtl.UpdateQuiz)
		admin.POST("/quizzes/delete/:id", catalogCtl.DeleteQuiz)
		admin.GET("/quizzes/:id/scores/export", catalogCtl.ExportScores)

		// Questions
		admin.GET("/quizzes/:id/questions", catalogCtl.ListQuestions)
		admin.POST("/quizzes/:id/questions/add", catalogCtl.CreateQuestion)
		admin.GET("/questions/:id/edit", catalogCtl.GetQuestion)
		admin.POST("/questions/:id/edit", catalogCtl.UpdateQuestion)
		admin.POST("/questions/:id/delete", catalogCtl.DeleteQuestion)

		// Users
		admin.GET("/users", userCtl.List)
		admin.POST("/users/:id/delete", userCtl.Delete)
	}

	return r
}
