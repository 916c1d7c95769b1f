package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carebook/hospital-api/internal/booking"
	"github.com/carebook/hospital-api/internal/handlers"
	"github.com/carebook/hospital-api/internal/middleware"
	"github.com/carebook/hospital-api/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(os.Getenv("MONGO_DATABASE"))
	log.Println("Successfully connected to MongoDB!")

	// --- Stores & Services ---
	st := store.NewMongoStore(db)
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
	log.Println("Appointment slot uniqueness index is in place.")

	bookingSvc := booking.NewService(st, st)
	h := handlers.NewHandler(st, st, bookingSvc)

	// --- Gin Router ---
	r := gin.Default()
	r.Use(middleware.RequestID())

	// --- Middleware ---
	origins := []string{"http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	apiRoutes := r.Group("/api")
	{
		// Booking wizard: department -> doctor -> date -> slot
		apiRoutes.GET("/departments", h.GetDepartments)
		apiRoutes.GET("/departments/:id/doctors", h.GetDepartmentDoctors)
		apiRoutes.GET("/doctors/:id/slots", h.GetDoctorSlots)

		// Appointment Routes
		apiRoutes.POST("/appointments", h.CreateAppointment)
		apiRoutes.GET("/appointments", h.GetAppointments)
		apiRoutes.GET("/appointments/:id", h.GetAppointment)
		apiRoutes.PATCH("/appointments/:id/status", h.UpdateAppointmentStatus)
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080" // Default port
	}
	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
