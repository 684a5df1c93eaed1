package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vnkhanh/quizmaster-backend/config"
	"github.com/vnkhanh/quizmaster-backend/routes"
	"github.com/vnkhanh/quizmaster-backend/services"
	"github.com/vnkhanh/quizmaster-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	db := config.InitDB(cfg)

	created, err := services.NewUsers(db).EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if !created {
		log.Println("admin account already present")
	}

	utils.StartCleanupJob(context.Background(), services.NewSessions(db, cfg.TokenTTL), cfg.SessionCleanupInterval)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Auth-Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Location"},
		AllowCredentials: true,
	}))
	r = routes.SetupRouter(r, db, cfg)

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Quiz server is running")
	})

	log.Println("Server running at Port:" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
