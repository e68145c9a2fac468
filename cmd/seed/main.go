package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"stayhub/internal/database"
	"stayhub/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "stayhub.db"
	}
	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data in FK-safe order.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM audit_logs")
	db.Exec("DELETE FROM cp_transactions")
	db.Exec("DELETE FROM channel_partners")
	db.Exec("DELETE FROM incomes")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM room_blocks")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM offers")
	db.Exec("DELETE FROM seasonal_rates")
	db.Exec("DELETE FROM coupons")
	db.Exec("DELETE FROM room_types")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM partner_levels")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@stayhub.in",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Platform Admin",
	}
	db.Create(&admin)

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owner := domain.User{
		Email:        "owner@seasidestays.in",
		PasswordHash: string(ownerHash),
		Role:         domain.RoleOwner,
		Name:         "Ravi Menon",
		Phone:        "+91 98470 11111",
	}
	db.Create(&owner)

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	staff := domain.User{
		Email:        "frontdesk@seasidestays.in",
		PasswordHash: string(staffHash),
		Role:         domain.RoleStaff,
		Name:         "Front Desk",
	}
	db.Create(&staff)

	guests := make([]domain.User, 0, 3)
	for i, email := range []string{"ananya@gmail.com", "vikram@outlook.com", "meera@yahoo.in"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
		g := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleGuest,
			Name:         fmt.Sprintf("Guest %d", i+1),
			Phone:        fmt.Sprintf("+91 98765 432%02d", i+10),
		}
		db.Create(&g)
		guests = append(guests, g)
	}

	partnerUserHash, _ := bcrypt.GenerateFromPassword([]byte("partner123"), bcrypt.DefaultCost)
	partnerUser := domain.User{
		Email:        "agent@travelworks.in",
		PasswordHash: string(partnerUserHash),
		Role:         domain.RolePartner,
		Name:         "TravelWorks Agency",
	}
	db.Create(&partnerUser)

	log.Println("Creating catalog...")
	beach := domain.Category{Name: "Beach Resort"}
	db.Create(&beach)

	property := domain.Property{
		OwnerID:        owner.ID,
		Name:           "Seaside Stays Varkala",
		Location:       "Varkala, Kerala",
		CategoryID:     &beach.ID,
		CommissionRate: decimal.NewFromInt(10),
		IsApproved:     true,
		IsActive:       true,
	}
	db.Create(&property)

	deluxe := domain.RoomType{
		PropertyID:      property.ID,
		Name:            "Deluxe Sea View",
		Description:     "King bed, balcony facing the cliff",
		BasePrice:       decimal.NewFromInt(4500),
		ExtraAdultPrice: decimal.NewFromInt(1000),
		ExtraChildPrice: decimal.NewFromInt(500),
		MaxAdults:       3,
		MaxChildren:     2,
		FreeChildren:    1,
		IsActive:        true,
	}
	db.Create(&deluxe)

	standard := domain.RoomType{
		PropertyID:  property.ID,
		Name:        "Standard Garden",
		Description: "Queen bed, garden side",
		BasePrice:   decimal.NewFromInt(2800),
		MaxAdults:   2,
		MaxChildren: 1,
		IsActive:    true,
	}
	db.Create(&standard)

	for i := 1; i <= 4; i++ {
		db.Create(&domain.Room{
			RoomTypeID: deluxe.ID,
			Number:     fmt.Sprintf("D%02d", i),
			Status:     domain.RoomAvailable,
			IsEnabled:  true,
		})
	}
	for i := 1; i <= 6; i++ {
		db.Create(&domain.Room{
			RoomTypeID: standard.ID,
			Number:     fmt.Sprintf("S%02d", i),
			Status:     domain.RoomAvailable,
			IsEnabled:  true,
		})
	}

	log.Println("Creating promotions...")
	now := time.Now().UTC()
	db.Create(&domain.Coupon{
		Code:             "WELCOME10",
		Type:             domain.CouponPercentage,
		Value:            decimal.NewFromInt(10),
		ValidFrom:        now.AddDate(0, -1, 0),
		ValidTo:          now.AddDate(0, 3, 0),
		UsageLimit:       100,
		MinBookingAmount: decimal.NewFromInt(2000),
		IsActive:         true,
	})
	db.Create(&domain.Offer{
		RoomTypeID:      deluxe.ID,
		Name:            "Monsoon Special",
		DiscountPercent: decimal.NewFromInt(15),
		StartDate:       now.AddDate(0, 0, -7),
		EndDate:         now.AddDate(0, 2, 0),
		IsActive:        true,
	})
	db.Create(&domain.SeasonalRate{
		Name:      "Peak Season",
		Kind:      domain.SeasonalPercent,
		Value:     decimal.NewFromInt(20),
		StartDate: now.AddDate(0, 3, 0),
		EndDate:   now.AddDate(0, 4, 0),
		IsActive:  true,
	})

	log.Println("Creating partner program...")
	db.Create(&domain.PartnerLevel{
		Name:           "Silver",
		MinPoints:      0,
		CommissionRate: decimal.NewFromInt(5),
	})
	db.Create(&domain.PartnerLevel{
		Name:           "Gold",
		MinPoints:      500,
		CommissionRate: decimal.NewFromInt(8),
	})
	db.Create(&domain.ChannelPartner{
		UserID:       partnerUser.ID,
		ReferralCode: "CP-DEMO01",
		IsActive:     true,
	})

	log.Println("Seed completed")
	log.Println("Admin: admin@stayhub.in / admin123")
	log.Println("Owner: owner@seasidestays.in / owner123")
	log.Println("Guests: ananya@gmail.com ... / guest123")
	log.Println("Partner referral code: CP-DEMO01")
}
