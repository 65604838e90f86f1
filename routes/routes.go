package routes

import (
	"os"
	"strings"

	"petcare-backend/config"
	"petcare-backend/controllers"
	"petcare-backend/repository"
	"petcare-backend/services"
	"petcare-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000"}
}

func SetupRouter(store repository.Store, revoked utils.RevocationStore) *gin.Engine {
	r := gin.Default()

	origins := allowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	bookingSvc := services.NewBookingService(store)
	paymentSvc := services.NewPaymentService(store)

	authController := controllers.NewAuthController(store, revoked)
	userController := controllers.NewUserController(store)
	petController := controllers.NewPetController(store)
	serviceController := controllers.NewServiceController(store)
	bookingController := controllers.NewBookingController(bookingSvc)
	paymentController := controllers.NewPaymentController(paymentSvc)
	dashboardController := controllers.NewDashboardController(store)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware(revoked))
		auth.POST("/logout", authController.Logout)
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(revoked))
	{
		// User routes
		users := api.Group("/users")
		{
			users.GET("", userController.List)
			users.GET("/:id", userController.Get)
			users.PUT("/:id", userController.Update)
			users.DELETE("/:id", userController.Delete)
		}

		// Pet routes
		pets := api.Group("/pets")
		{
			pets.POST("", petController.Create)
			pets.GET("", petController.List)
			pets.GET("/:id", petController.Get)
			pets.PUT("/:id", petController.Update)
			pets.DELETE("/:id", petController.Delete)
		}

		// Service catalog routes
		servicesGroup := api.Group("/services")
		{
			servicesGroup.POST("", serviceController.Create)
			servicesGroup.GET("", serviceController.List)
			servicesGroup.GET("/:id", serviceController.Get)
			servicesGroup.PUT("/:id", serviceController.Update)
			servicesGroup.DELETE("/:id", serviceController.Delete)
		}

		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", bookingController.Create)
			bookings.GET("", bookingController.List)
			bookings.GET("/:id", bookingController.Get)
			bookings.PUT("/:id", bookingController.Update)
			bookings.DELETE("/:id", bookingController.Cancel)
		}

		// Payment routes
		payments := api.Group("/payments")
		{
			payments.POST("", paymentController.Create)
			payments.GET("", paymentController.List)
			payments.GET("/:id", paymentController.Get)
			payments.PUT("/:id", paymentController.Update)
		}

		// Dashboard routes
		api.GET("/dashboard", dashboardController.Overview)
	}

	return r
}
