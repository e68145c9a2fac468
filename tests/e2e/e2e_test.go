package e2e

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

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

const (
	testKeySecret     = "e2e_key_secret"
	testWebhookSecret = "e2e_webhook_secret"
)

// stubGateway stands in for Razorpay: orders and refunds succeed immediately.
type stubGateway struct {
	orders int
}

func (g *stubGateway) CreateOrder(_ context.Context, _ decimal.Decimal, _, _ string) (string, error) {
	g.orders++
	return fmt.Sprintf("order_e2e_%04d", g.orders), nil
}

func (g *stubGateway) CreateRefund(_ context.Context, _ string, _ decimal.Decimal, _ string) (string, error) {
	return "rfnd_e2e_0001", nil
}

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service

	admin      *domain.User
	owner      *domain.User
	staff      *domain.User
	property   *domain.Property
	pendingPro *domain.Property
	deluxe     *domain.RoomType
}

type TestResponse struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_e2e")
	t.Setenv("RAZORPAY_KEY_SECRET", testKeySecret)
	t.Setenv("RAZORPAY_WEBHOOK_SECRET", testWebhookSecret)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	jwtService := jwtsvc.New("e2e_secret_key_32_characters_long", 24*time.Hour)

	authService := auth.NewService(userRepo, jwtService)
	authHandler := auth.NewHandler(authService)

	availabilityService := availability.NewService(roomRepo, bookingRepo, roomTypeRepo)
	availabilityHandler := availability.NewHandler(availabilityService)

	pricingService := pricing.NewService(roomTypeRepo, couponRepo)

	partnerService := partner.NewService(db)
	partnerHandler := partner.NewHandler(partnerService)

	bookingService := booking.NewService(
		bookingRepo, roomRepo, roomTypeRepo, propertyRepo,
		availabilityService, pricingService, couponRepo, userRepo,
		partnerService, incomeRepo, auditRepo, notify.NewLogSender(),
	)
	bookingHandler := booking.NewHandler(bookingService, pricingService)

	paymentService := payment.NewService(
		paymentRepo, bookingService, roomTypeRepo, propertyRepo,
		partnerService, &stubGateway{}, nil,
	)
	paymentHandler := payment.NewHandler(paymentService)

	catalogService := catalog.NewService(propertyRepo, roomTypeRepo, roomRepo, bookingRepo, couponRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reportService := report.NewService(db)
	reportHandler := report.NewHandler(reportService)

	ownership := middleware.NewOwnershipChecker(propertyRepo, roomTypeRepo)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)
	availabilityHandler.RegisterRoutes(v1)
	bookingHandler.RegisterPublicRoutes(v1)
	paymentHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
		paymentHandler.RegisterRoutes(protected)

		manage := protected.Group("/")
		manage.Use(middleware.RequireCapability(domain.CapManageCatalog))
		catalogHandler.RegisterRoutes(manage, ownership.CheckPropertyOwnership(), ownership.CheckRoomTypeOwnership())

		reports := protected.Group("/")
		reports.Use(middleware.RequireCapability(domain.CapViewReports))
		reportHandler.RegisterRoutes(reports)

		admin := protected.Group("/")
		admin.Use(middleware.AdminOnly())
		catalogHandler.RegisterAdminRoutes(admin)
		partnerHandler.RegisterAdminRoutes(admin)
		paymentHandler.RegisterAdminRoutes(admin)
	}

	suite := &E2ETestSuite{router: r, db: db, jwtService: jwtService}
	suite.seed(t)
	return suite
}

func (s *E2ETestSuite) seedUser(t *testing.T, email string, role domain.UserRole) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err)
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         string(role) + " user",
	}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

func (s *E2ETestSuite) seed(t *testing.T) {
	s.admin = s.seedUser(t, "admin@e2e.test", domain.RoleAdmin)
	s.owner = s.seedUser(t, "owner@e2e.test", domain.RoleOwner)
	s.staff = s.seedUser(t, "staff@e2e.test", domain.RoleStaff)

	s.property = &domain.Property{
		OwnerID:        s.owner.ID,
		Name:           "Seaside E2E Resort",
		Location:       "Varkala, Kerala",
		CommissionRate: decimal.NewFromInt(10),
		IsApproved:     true,
		IsActive:       true,
	}
	require.NoError(t, s.db.Create(s.property).Error)

	s.pendingPro = &domain.Property{
		OwnerID:        s.owner.ID,
		Name:           "Awaiting Approval",
		Location:       "Alleppey, Kerala",
		CommissionRate: decimal.NewFromInt(10),
		IsApproved:     false,
		IsActive:       true,
	}
	require.NoError(t, s.db.Create(s.pendingPro).Error)

	s.deluxe = &domain.RoomType{
		PropertyID:      s.property.ID,
		Name:            "Deluxe Sea View",
		BasePrice:       decimal.NewFromInt(4500),
		ExtraAdultPrice: decimal.NewFromInt(1000),
		ExtraChildPrice: decimal.NewFromInt(500),
		MaxAdults:       3,
		MaxChildren:     2,
		FreeChildren:    1,
		IsActive:        true,
	}
	require.NoError(t, s.db.Create(s.deluxe).Error)

	for i := 1; i <= 2; i++ {
		require.NoError(t, s.db.Create(&domain.Room{
			RoomTypeID: s.deluxe.ID,
			Number:     fmt.Sprintf("D%02d", i),
			Status:     domain.RoomAvailable,
			IsEnabled:  true,
		}).Error)
	}
}

func (s *E2ETestSuite) token(t *testing.T, u *domain.User) string {
	token, err := s.jwtService.GenerateToken(u.ID, string(u.Role))
	require.NoError(t, err)
	return token
}

func (s *E2ETestSuite) makeRequest(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "status %d body %s", w.Code, w.Body.String())
	return &resp
}

func dataMap(t *testing.T, resp *TestResponse) map[string]interface{} {
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected object data, got %T", resp.Data)
	return m
}

func amountEqual(t *testing.T, want string, got interface{}) {
	s, ok := got.(string)
	require.True(t, ok, "expected decimal string, got %T", got)
	assert.True(t, decimal.RequireFromString(want).Equal(decimal.RequireFromString(s)),
		"want %s got %s", want, s)
}

func sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestGuestRegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	var token string
	t.Run("register", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/auth/register", map[string]interface{}{
			"email":    "ananya@e2e.test",
			"password": "Password123!",
			"name":     "Ananya",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		token = dataMap(t, resp)["token"].(string)
		assert.NotEmpty(t, token)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/auth/register", map[string]interface{}{
			"email":    "ananya@e2e.test",
			"password": "Password123!",
			"name":     "Ananya Again",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "EMAIL_TAKEN", parseResponse(t, w).Error.Code)
	})

	t.Run("login", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "ananya@e2e.test",
			"password": "Password123!",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, dataMap(t, parseResponse(t, w))["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "ananya@e2e.test",
			"password": "WrongPassword1",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/auth/me", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ananya@e2e.test", dataMap(t, parseResponse(t, w))["email"])
	})
}

func TestSearchBookAndPay(t *testing.T) {
	suite := setupTestSuite(t)

	guest := suite.seedUser(t, "guest@e2e.test", domain.RoleGuest)
	guestToken := suite.token(t, guest)

	t.Run("check availability", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings/check-availability", map[string]interface{}{
			"roomTypeId":   suite.deluxe.ID,
			"checkInDate":  "2027-03-10",
			"checkOutDate": "2027-03-12",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, true, dataMap(t, parseResponse(t, w))["available"])
	})

	t.Run("search room types", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings/search", map[string]interface{}{
			"checkInDate":  "2027-03-10",
			"checkOutDate": "2027-03-12",
			"adults":       1,
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		types := dataMap(t, parseResponse(t, w))["availableRoomTypes"].([]interface{})
		assert.Len(t, types, 1)
	})

	t.Run("calculate price", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings/calculate-price", map[string]interface{}{
			"roomTypeId":   suite.deluxe.ID,
			"checkInDate":  "2027-03-10",
			"checkOutDate": "2027-03-12",
			"adultsCount":  1,
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// 2 nights at 4500 plus 18% GST.
		quote := dataMap(t, parseResponse(t, w))
		amountEqual(t, "9000", quote["baseAmount"])
		amountEqual(t, "1620", quote["taxAmount"])
		amountEqual(t, "10620", quote["totalAmount"])
	})

	var bookingID int64
	var orderID string

	t.Run("create booking", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
			"roomTypeId":   suite.deluxe.ID,
			"checkInDate":  "2027-03-10",
			"checkOutDate": "2027-03-12",
			"adultsCount":  1,
		}, guestToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		data := dataMap(t, parseResponse(t, w))
		bookingID = int64(data["id"].(float64))
		assert.Equal(t, string(domain.BookingPendingPayment), data["status"])
		assert.Regexp(t, `^BK-\d{8}-\d{4}$`, data["number"])
	})

	t.Run("initiate payment", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/payments/initiate", map[string]interface{}{
			"bookingId": bookingID,
		}, guestToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		data := dataMap(t, parseResponse(t, w))
		orderID = data["orderId"].(string)
		amountEqual(t, "10620", data["amount"])
	})

	t.Run("verify rejects a forged signature", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/payments/verify", map[string]interface{}{
			"razorpayOrderId":   orderID,
			"razorpayPaymentId": "pay_e2e_1",
			"razorpaySignature": "forged",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_SIGNATURE", parseResponse(t, w).Error.Code)
	})

	t.Run("initiate again after failed verify", func(t *testing.T) {
		// The forged verify marked the first order failed; a fresh order is
		// needed for the real capture.
		w := suite.makeRequest(t, "POST", "/api/v1/payments/initiate", map[string]interface{}{
			"bookingId": bookingID,
		}, guestToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		orderID = dataMap(t, parseResponse(t, w))["orderId"].(string)
	})

	t.Run("verify captures payment", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/payments/verify", map[string]interface{}{
			"razorpayOrderId":   orderID,
			"razorpayPaymentId": "pay_e2e_2",
			"razorpaySignature": sign(orderID+"|pay_e2e_2", testKeySecret),
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, string(domain.PaymentPaid), dataMap(t, parseResponse(t, w))["status"])
	})

	t.Run("booking is confirmed and fully paid", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, guestToken)
		require.Equal(t, http.StatusOK, w.Code)

		data := dataMap(t, parseResponse(t, w))
		assert.Equal(t, string(domain.BookingConfirmed), data["status"])
		assert.Equal(t, string(domain.BookingFull), data["payment_status"])
		amountEqual(t, "10620", data["paid_amount"])
	})

	t.Run("admin refunds the payment", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/payments/booking/%d", bookingID), nil, guestToken)
		require.Equal(t, http.StatusOK, w.Code)
		payments := parseResponse(t, w).Data.([]interface{})

		var paymentID int64
		for _, raw := range payments {
			p := raw.(map[string]interface{})
			if p["status"] == string(domain.PaymentPaid) {
				paymentID = int64(p["id"].(float64))
			}
		}
		require.NotZero(t, paymentID)

		w = suite.makeRequest(t, "POST", fmt.Sprintf("/api/v1/payments/%d/refund", paymentID),
			map[string]interface{}{"reason": "guest request"}, suite.token(t, suite.admin))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, guestToken)
		data := dataMap(t, parseResponse(t, w))
		assert.Equal(t, string(domain.BookingRefunded), data["status"])
	})
}

func TestWebhookCapture(t *testing.T) {
	suite := setupTestSuite(t)

	guest := suite.seedUser(t, "guest2@e2e.test", domain.RoleGuest)
	guestToken := suite.token(t, guest)

	w := suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
		"roomTypeId":   suite.deluxe.ID,
		"checkInDate":  "2027-04-01",
		"checkOutDate": "2027-04-03",
		"adultsCount":  1,
	}, guestToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := int64(dataMap(t, parseResponse(t, w))["id"].(float64))

	w = suite.makeRequest(t, "POST", "/api/v1/payments/initiate",
		map[string]interface{}{"bookingId": bookingID}, guestToken)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := dataMap(t, parseResponse(t, w))["orderId"].(string)

	body, err := json.Marshal(map[string]interface{}{
		"event": "payment.captured",
		"payload": map[string]interface{}{
			"payment": map[string]interface{}{
				"entity": map[string]interface{}{
					"order_id": orderID,
					"id":       "pay_e2e_hook",
					"method":   "upi",
				},
			},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/payments/webhook", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Razorpay-Signature", sign(string(body), testWebhookSecret))
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Redelivery of the same event stays a 200 no-op.
	req = httptest.NewRequest("POST", "/api/v1/payments/webhook", bytes.NewBuffer(body))
	req.Header.Set("X-Razorpay-Signature", sign(string(body), testWebhookSecret))
	rec = httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	w = suite.makeRequest(t, "GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, guestToken)
	data := dataMap(t, parseResponse(t, w))
	assert.Equal(t, string(domain.BookingConfirmed), data["status"])
	assert.Equal(t, string(domain.BookingFull), data["payment_status"])
}

func TestFrontDeskManualBooking(t *testing.T) {
	suite := setupTestSuite(t)

	staffToken := suite.token(t, suite.staff)
	guest := suite.seedUser(t, "walkin@e2e.test", domain.RoleGuest)

	t.Run("guest cannot override price", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
			"roomTypeId":    suite.deluxe.ID,
			"checkInDate":   "2027-05-10",
			"checkOutDate":  "2027-05-12",
			"adultsCount":   1,
			"overrideTotal": "8000",
		}, suite.token(t, guest))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	var bookingID int64
	t.Run("staff books with override", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
			"roomTypeId":    suite.deluxe.ID,
			"checkInDate":   "2027-05-10",
			"checkOutDate":  "2027-05-12",
			"adultsCount":   1,
			"overrideTotal": "8000",
		}, staffToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		data := dataMap(t, parseResponse(t, w))
		bookingID = int64(data["id"].(float64))
		assert.Equal(t, string(domain.BookingConfirmed), data["status"])
		assert.Equal(t, true, data["is_manual"])
		assert.Equal(t, true, data["is_price_overridden"])
		amountEqual(t, "8000", data["total_amount"])
	})

	t.Run("override below floor rejected", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", "/api/v1/bookings", map[string]interface{}{
			"roomTypeId":    suite.deluxe.ID,
			"checkInDate":   "2027-06-10",
			"checkOutDate":  "2027-06-12",
			"adultsCount":   1,
			"overrideTotal": "5000",
		}, staffToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "PRICE_OVERRIDE_TOO_LOW", parseResponse(t, w).Error.Code)
	})

	t.Run("check-in and check-out", func(t *testing.T) {
		w := suite.makeRequest(t, "POST", fmt.Sprintf("/api/v1/bookings/%d/check-in", bookingID), nil, staffToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, string(domain.BookingCheckedIn), dataMap(t, parseResponse(t, w))["status"])

		w = suite.makeRequest(t, "POST", fmt.Sprintf("/api/v1/bookings/%d/check-out", bookingID), nil, staffToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, string(domain.BookingCheckedOut), dataMap(t, parseResponse(t, w))["status"])

		// A second check-out hits the state machine.
		w = suite.makeRequest(t, "POST", fmt.Sprintf("/api/v1/bookings/%d/check-out", bookingID), nil, staffToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAdminOperations(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.token(t, suite.admin)

	t.Run("approve property", func(t *testing.T) {
		w := suite.makeRequest(t, "POST",
			fmt.Sprintf("/api/v1/properties/%d/approve", suite.pendingPro.ID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, true, dataMap(t, parseResponse(t, w))["is_approved"])
	})

	t.Run("owner cannot approve", func(t *testing.T) {
		w := suite.makeRequest(t, "POST",
			fmt.Sprintf("/api/v1/properties/%d/approve", suite.pendingPro.ID), nil, suite.token(t, suite.owner))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	var partnerID int64
	t.Run("create channel partner", func(t *testing.T) {
		agent := suite.seedUser(t, "agent@e2e.test", domain.RolePartner)

		w := suite.makeRequest(t, "POST", "/api/v1/partners",
			map[string]interface{}{"userId": agent.ID}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		data := dataMap(t, parseResponse(t, w))
		partnerID = int64(data["id"].(float64))
		assert.Regexp(t, `^CP-[A-Z0-9]{6}$`, data["referral_code"])
	})

	t.Run("wallet topup and deduct", func(t *testing.T) {
		w := suite.makeRequest(t, "POST",
			fmt.Sprintf("/api/v1/partners/%d/wallet/topup", partnerID),
			map[string]interface{}{"amount": "1000", "note": "opening balance"}, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest(t, "POST",
			fmt.Sprintf("/api/v1/partners/%d/wallet/deduct", partnerID),
			map[string]interface{}{"amount": "1500"}, adminToken)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "INSUFFICIENT_FUNDS", parseResponse(t, w).Error.Code)
	})

	t.Run("owner views reports", func(t *testing.T) {
		w := suite.makeRequest(t, "GET", "/api/v1/reports/dashboard", nil, suite.token(t, suite.owner))
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, parseResponse(t, w).Success)
	})

	t.Run("guest cannot view reports", func(t *testing.T) {
		guest := suite.seedUser(t, "nosy@e2e.test", domain.RoleGuest)
		w := suite.makeRequest(t, "GET", "/api/v1/reports/dashboard", nil, suite.token(t, guest))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
