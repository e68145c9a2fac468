// Command reminder runs the periodic booking housekeeping: it cancels
// PENDING_PAYMENT bookings whose payment window expired and sends check-in
// reminders for tomorrow's arrivals. Intended to run from cron.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stayhub/internal/database"
	"stayhub/internal/modules/availability"
	"stayhub/internal/modules/booking"
	"stayhub/internal/modules/partner"
	"stayhub/internal/modules/pricing"
	"stayhub/internal/notify"
	"stayhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}
	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	availabilityService := availability.NewService(roomRepo, bookingRepo, roomTypeRepo)
	pricingService := pricing.NewService(roomTypeRepo, couponRepo)
	partnerService := partner.NewService(db)

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
		notify.NewLogSender(),
	)

	ttl := 30 * time.Minute
	if v := os.Getenv("PENDING_PAYMENT_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid PENDING_PAYMENT_TTL: %v", err)
		}
		ttl = parsed
	}

	ctx := context.Background()

	expired, err := bookingService.ExpireStalePending(ctx, ttl)
	if err != nil {
		log.Fatalf("stale booking expiry failed: %v", err)
	}

	sent, err := bookingService.SendCheckInReminders(ctx)
	if err != nil {
		log.Fatalf("check-in reminders failed: %v", err)
	}

	log.Printf("housekeeping completed: expired=%d reminders=%d", expired, sent)
}
