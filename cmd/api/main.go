package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stayhub/internal/database"
	"stayhub/internal/domain"
	"stayhub/internal/middleware"
	"stayhub/internal/modules/auth"
	"stayhub/internal/modules/availability"
	"stayhub/internal/modules/booking"
	"stayhub/internal/modules/catalog"
	"stayhub/internal/modules/partner"
	"stayhub/internal/modules/payment"
	"stayhub/internal/modules/pricing"
	"stayhub/internal/modules/report"
	"stayhub/internal/notify"
	jwtsvc "stayhub/internal/pkg/jwt"
	"stayhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := database.Migrate(db); err != nil {
			log.Fatal(err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	availabilityService := availability.NewService(roomRepo, bookingRepo, roomTypeRepo)
	availabilityHandler := availability.NewHandler(availabilityService)

	pricingService := pricing.NewService(roomTypeRepo, couponRepo)

	partnerService := partner.NewService(db)
	partnerHandler := partner.NewHandler(partnerService)

	sender := notify.NewLogSender()

	bookingService := booking.NewService(
		bookingRepo,
		roomRepo,
		roomTypeRepo,
		propertyRepo,
		availabilityService,
		pricingService,
		couponRepo,
		userRepo,
		partnerService,
		incomeRepo,
		auditRepo,
		sender,
	)
	bookingHandler := booking.NewHandler(bookingService, pricingService)

	paymentService := payment.NewService(
		paymentRepo,
		bookingService,
		roomTypeRepo,
		propertyRepo,
		partnerService,
		payment.NewHTTPGateway(),
		log.Printf,
	)
	paymentHandler := payment.NewHandler(paymentService)

	catalogService := catalog.NewService(propertyRepo, roomTypeRepo, roomRepo, bookingRepo, couponRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reportService := report.NewService(db)
	reportHandler := report.NewHandler(reportService)

	ownership := middleware.NewOwnershipChecker(propertyRepo, roomTypeRepo)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public: auth, search, price quotes, public bookings, gateway callbacks
		authHandler.RegisterPublicRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)

			manage := protected.Group("/")
			manage.Use(middleware.RequireCapability(domain.CapManageCatalog))
			{
				catalogHandler.RegisterRoutes(manage, ownership.CheckPropertyOwnership(), ownership.CheckRoomTypeOwnership())
			}

			reports := protected.Group("/")
			reports.Use(middleware.RequireCapability(domain.CapViewReports))
			{
				reportHandler.RegisterRoutes(reports)
			}

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				catalogHandler.RegisterAdminRoutes(admin)
				partnerHandler.RegisterAdminRoutes(admin)
				paymentHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
