package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/clinicdesk/clinic-service/internal/adapters/cache"
	"github.com/clinicdesk/clinic-service/internal/adapters/handler"
	"github.com/clinicdesk/clinic-service/internal/adapters/middleware"
	"github.com/clinicdesk/clinic-service/internal/adapters/repository"
	"github.com/clinicdesk/clinic-service/internal/config"
	"github.com/clinicdesk/clinic-service/internal/core/domain"
	"github.com/clinicdesk/clinic-service/internal/core/services"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	tokenStore := cache.NewRedisTokenStore(redisClient)

	userRepo := repository.NewUserRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)

	authService := services.NewAuthService(userRepo, doctorRepo, patientRepo, tokenStore, cfg.JWTPrivateKey, cfg.JWTPublicKey)
	registrationService := services.NewRegistrationService(userRepo, doctorRepo, patientRepo, cfg.JWTPrivateKey)
	appointmentService := services.NewAppointmentService(apptRepo, doctorRepo)
	slotService := services.NewSlotService(doctorRepo, apptRepo, cfg.Slots)
	doctorService := services.NewDoctorService(doctorRepo, apptRepo)
	patientService := services.NewPatientService(patientRepo, apptRepo, prescriptionRepo)
	prescriptionService := services.NewPrescriptionService(prescriptionRepo, doctorRepo)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, tokenStore)

	authHandler := handler.NewAuthHandler(authService, registrationService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, slotService)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	patientHandler := handler.NewPatientHandler(patientService)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)

	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("POST /api/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(authHandler.Logout)),
	)
	mux.Handle("GET /api/auth/profile",
		authMiddleware.Authenticate(http.HandlerFunc(authHandler.Profile)),
	)

	// Doctors (public catalogue, protected profile management)
	mux.HandleFunc("GET /api/doctors", doctorHandler.List)
	mux.HandleFunc("GET /api/doctors/specializations", doctorHandler.Specializations)
	mux.Handle("GET /api/doctors/profile",
		authMiddleware.RequireRole(domain.RoleDoctor, http.HandlerFunc(doctorHandler.Profile)),
	)
	mux.Handle("GET /api/doctors/appointments",
		authMiddleware.RequireRole(domain.RoleDoctor, http.HandlerFunc(appointmentHandler.ListForDoctor)),
	)
	mux.Handle("PATCH /api/doctors/appointments/{id}",
		authMiddleware.RequireRole(domain.RoleDoctor, http.HandlerFunc(appointmentHandler.UpdateStatus)),
	)
	mux.HandleFunc("GET /api/doctors/user/{userId}", doctorHandler.GetByUser)
	mux.HandleFunc("GET /api/doctors/{id}", doctorHandler.Get)

	// /doctors/{id}/availability and /doctors/{id}/stats would each conflict
	// with /doctors/user/{userId} in the mux, so the two GET subresources
	// share one pattern and dispatch on the trailing segment.
	statsRoute := authMiddleware.RequireAnyRole([]domain.Role{domain.RoleDoctor, domain.RoleAdmin}, http.HandlerFunc(doctorHandler.Stats))
	mux.HandleFunc("GET /api/doctors/{id}/{sub}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("sub") {
		case "availability":
			doctorHandler.Availability(w, r)
		case "stats":
			statsRoute.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})

	mux.Handle("PUT /api/doctors/{id}",
		authMiddleware.RequireAnyRole([]domain.Role{domain.RoleDoctor, domain.RoleAdmin}, http.HandlerFunc(doctorHandler.Update)),
	)
	mux.Handle("PUT /api/doctors/{id}/availability",
		authMiddleware.RequireAnyRole([]domain.Role{domain.RoleDoctor, domain.RoleAdmin}, http.HandlerFunc(doctorHandler.UpdateAvailability)),
	)
	mux.Handle("POST /api/doctors/{id}/ratings",
		authMiddleware.RequireRole(domain.RolePatient, http.HandlerFunc(doctorHandler.Rate)),
	)

	// Appointments
	mux.Handle("GET /api/appointments/doctors/{id}/available-slots",
		authMiddleware.RequireAnyRole([]domain.Role{domain.RolePatient, domain.RoleDoctor}, http.HandlerFunc(appointmentHandler.AvailableSlots)),
	)

	// Patients
	mux.Handle("POST /api/patients/appointments",
		authMiddleware.RequireRole(domain.RolePatient, http.HandlerFunc(appointmentHandler.Book)),
	)
	mux.Handle("GET /api/patients/appointments",
		authMiddleware.RequireRole(domain.RolePatient, http.HandlerFunc(appointmentHandler.ListForPatient)),
	)
	mux.Handle("GET /api/patients/appointments/{id}",
		authMiddleware.RequireRole(domain.RolePatient, http.HandlerFunc(appointmentHandler.GetForPatient)),
	)
	mux.Handle("DELETE /api/patients/appointments/{id}",
		authMiddleware.RequireRole(domain.RolePatient, http.HandlerFunc(appointmentHandler.Cancel)),
	)
	mux.Handle("GET /api/patients/dashboard",
		authMiddleware.RequireRole(domain.RolePatient, http.HandlerFunc(patientHandler.Dashboard)),
	)
	mux.Handle("GET /api/patients/medical-records",
		authMiddleware.RequireRole(domain.RolePatient, http.HandlerFunc(patientHandler.MedicalRecords)),
	)
	mux.Handle("GET /api/patients/prescriptions",
		authMiddleware.RequireRole(domain.RolePatient, http.HandlerFunc(prescriptionHandler.List)),
	)
	mux.Handle("GET /api/patients",
		authMiddleware.RequireRole(domain.RoleDoctor, http.HandlerFunc(patientHandler.List)),
	)

	// Prescriptions
	mux.Handle("POST /api/prescriptions",
		authMiddleware.RequireRole(domain.RoleDoctor, http.HandlerFunc(prescriptionHandler.Create)),
	)
	mux.Handle("GET /api/prescriptions",
		authMiddleware.Authenticate(http.HandlerFunc(prescriptionHandler.List)),
	)
	mux.Handle("GET /api/prescriptions/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(prescriptionHandler.Get)),
	)
	mux.Handle("PUT /api/prescriptions/{id}",
		authMiddleware.RequireRole(domain.RoleDoctor, http.HandlerFunc(prescriptionHandler.Update)),
	)
	mux.Handle("DELETE /api/prescriptions/{id}",
		authMiddleware.RequireRole(domain.RoleDoctor, http.HandlerFunc(prescriptionHandler.Delete)),
	)

	corsOrigins := []string{"*"}
	root := middleware.CORS(corsOrigins)(middleware.Metrics(mux))

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, root); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
