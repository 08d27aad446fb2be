package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"slotpark/internal/api"
	"slotpark/internal/auth"
	"slotpark/internal/repository"
	"slotpark/internal/service"
)

const defaultHourlyRate = 40.0

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	hourlyRate := defaultHourlyRate
	if v := os.Getenv("HOURLY_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatalf("Invalid HOURLY_RATE %q: %v", v, err)
		}
		hourlyRate = rate
	}

	slotRepo := repository.NewSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)

	notifier := service.NewNotifyService()
	slotSvc := service.NewSlotService(slotRepo)
	bookingSvc := service.NewBookingService(bookingRepo, slotSvc, notifier, hourlyRate)
	paymentSvc := service.NewPaymentService(paymentRepo, bookingRepo)
	userSvc := service.NewUserService(userRepo)
	jobSvc := service.NewJobService(jobRepo, bookingSvc)

	slotHandler := api.NewSlotHandler(slotSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	paymentHandler := api.NewPaymentHandler(paymentSvc)
	userHandler := api.NewUserHandler(userSvc)

	c := cron.New()
	c.AddFunc("@every 1m", jobSvc.RunUpcomingScan)
	c.AddFunc("@hourly", func() {
		if err := jobSvc.CompleteExpiredBookings(); err != nil {
			log.Printf("Expiry sweep failed: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/slotsing/available", slotHandler.ListAvailable).Methods("GET")
	r.HandleFunc("/api/slotsing/check", slotHandler.Check).Methods("POST")
	r.HandleFunc("/api/slotsing/book", slotHandler.Book).Methods("POST")

	r.HandleFunc("/api/payments/process", paymentHandler.Process).Methods("POST")
	r.HandleFunc("/api/payments/{paymentId}", paymentHandler.Delete).Methods("DELETE")

	r.HandleFunc("/api/users", userHandler.Create).Methods("POST")
	r.HandleFunc("/api/users/login", userHandler.Login).Methods("POST")
	r.HandleFunc("/api/users/{userId}", userHandler.Get).Methods("GET")
	r.HandleFunc("/api/users/{userId}", userHandler.Update).Methods("PUT")
	r.HandleFunc("/api/users/{userId}", userHandler.Delete).Methods("DELETE")

	r.HandleFunc("/api/bookings", bookingHandler.Create).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.ListByUser).Methods("GET").Queries("user_id", "{user_id}")
	r.HandleFunc("/api/bookings/slots", bookingHandler.SlotNames).Methods("GET")
	r.HandleFunc("/api/bookings/{id}", bookingHandler.Get).Methods("GET")
	r.HandleFunc("/api/bookings/{id}", bookingHandler.Update).Methods("PUT")
	r.HandleFunc("/api/bookings/{id}/status", bookingHandler.UpdateStatus).Methods("PUT")
	r.HandleFunc("/api/bookings/{id}/prepayment", bookingHandler.UpdatePrepayment).Methods("PUT")
	r.HandleFunc("/api/bookings/{id}/checkout", bookingHandler.Checkout).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Middleware)
	admin.HandleFunc("/bookings", bookingHandler.List).Methods("GET")
	admin.HandleFunc("/bookings/paid", bookingHandler.ListPaid).Methods("GET")
	admin.HandleFunc("/earnings", bookingHandler.Earnings).Methods("GET")
	admin.HandleFunc("/slots/release", bookingHandler.ReleaseSlot).Methods("POST")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}
