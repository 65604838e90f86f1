package main

import (
	"fmt"
	"log"
	"os"

	"petcare-backend/config"
	"petcare-backend/models"
	"petcare-backend/repository"
	"petcare-backend/routes"
	"petcare-backend/services"
	"petcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.Service{},
		&models.Booking{},
		&models.BookingItem{},
		&models.Payment{},
		&models.ReminderLog{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	store := repository.NewGormStore(config.DB)
	revoked := utils.NewRevocationStore()

	if os.Getenv("REMINDERS_ENABLED") == "true" {
		services.NewReminderService(store).StartScheduler()
	}

	r := routes.SetupRouter(store, revoked)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
