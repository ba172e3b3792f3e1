package main

import (
	"log"

	"lms/config"
	adminController "lms/controllers/admin"
	courseController "lms/controllers/course"
	instructorController "lms/controllers/instructor"
	paymentController "lms/controllers/payment"
	studentController "lms/controllers/student"
	userController "lms/controllers/user"
	"lms/database"
	adminRoutes "lms/routers/adminRoutes"
	courseRoutes "lms/routers/courseRoutes"
	instructorRoutes "lms/routers/instructorRoutes"
	paymentRoutes "lms/routers/paymentRoutes"
	userRoutes "lms/routers/userRoutes"
	"lms/services/catalog"
	"lms/services/payments"
	"lms/services/paypal"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	db := database.Connect()

	catalogService := catalog.NewService(db)
	paymentsService := payments.NewService(db, catalogService)
	paypalClient := paypal.NewClient(
		config.AppConfig.PayPalBaseURL,
		config.AppConfig.PayPalClientID,
		config.AppConfig.PayPalClientSecret,
	)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded lesson media
	app.Static("/uploads", config.AppConfig.UploadDir)

	userRoutes.SetupUserRoutes(app, userController.New(db), studentController.New(db))
	courseRoutes.SetupCourseRoutes(app, courseController.New(db))
	instructorRoutes.SetupInstructorRoutes(app, instructorController.New(catalogService))
	paymentRoutes.SetupPaymentRoutes(app, paymentController.New(db, paymentsService, paypalClient))
	adminRoutes.SetupAdminRoutes(app, adminController.New(db))

	utils.InitializePayoutScheduler(db, paypalClient)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
