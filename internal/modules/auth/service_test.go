package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stayhub/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func newAuthService() (*Service, *mockUserRepo, *mockTokenIssuer) {
	users := new(mockUserRepo)
	tokens := new(mockTokenIssuer)
	return NewService(users, tokens), users, tokens
}

func registerReq() RegisterRequest {
	return RegisterRequest{
		Email:    "guest@test.in",
		Password: "Password123!",
		Name:     "Guest",
		Phone:    "+911234567890",
	}
}

func TestRegister_NewGuest(t *testing.T) {
	svc, users, tokens := newAuthService()

	users.On("GetByEmail", mock.Anything, "guest@test.in").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "guest@test.in" &&
			u.Role == domain.RoleGuest &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Password123!")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 42
	}).Return(nil)
	tokens.On("GenerateToken", int64(42), string(domain.RoleGuest)).Return("tok", nil)

	resp, err := svc.Register(context.Background(), registerReq())

	assert.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, int64(42), resp.User.ID)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, users, _ := newAuthService()

	users.On("GetByEmail", mock.Anything, "guest@test.in").
		Return(&domain.User{ID: 7, Email: "guest@test.in", Role: domain.RoleGuest}, nil)

	_, err := svc.Register(context.Background(), registerReq())

	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create")
}

func TestRegister_ClaimsPlaceholderAccount(t *testing.T) {
	svc, users, tokens := newAuthService()

	// A public booking created this account; registering claims it.
	placeholder := &domain.User{
		ID:            7,
		Email:         "guest@test.in",
		Role:          domain.RoleGuest,
		IsPlaceholder: true,
	}
	users.On("GetByEmail", mock.Anything, "guest@test.in").Return(placeholder, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 7 && !u.IsPlaceholder && u.Name == "Guest" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Password123!")) == nil
	})).Return(nil)
	tokens.On("GenerateToken", int64(7), string(domain.RoleGuest)).Return("tok", nil)

	resp, err := svc.Register(context.Background(), registerReq())

	assert.NoError(t, err)
	assert.Equal(t, int64(7), resp.User.ID)
	users.AssertNotCalled(t, "Create")
}

func TestLogin_Success(t *testing.T) {
	svc, users, tokens := newAuthService()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "guest@test.in").Return(&domain.User{
		ID:           42,
		Email:        "guest@test.in",
		PasswordHash: string(hash),
		Role:         domain.RoleGuest,
	}, nil)
	tokens.On("GenerateToken", int64(42), string(domain.RoleGuest)).Return("tok", nil)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "guest@test.in", Password: "Password123!"})

	assert.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, _ := newAuthService()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "guest@test.in").Return(&domain.User{
		ID:           42,
		Email:        "guest@test.in",
		PasswordHash: string(hash),
		Role:         domain.RoleGuest,
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "guest@test.in", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, users, _ := newAuthService()

	users.On("GetByEmail", mock.Anything, "nobody@test.in").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@test.in", Password: "Password123!"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_PlaceholderCannotLogIn(t *testing.T) {
	svc, users, _ := newAuthService()

	users.On("GetByEmail", mock.Anything, "guest@test.in").Return(&domain.User{
		ID:            7,
		Email:         "guest@test.in",
		Role:          domain.RoleGuest,
		IsPlaceholder: true,
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "guest@test.in", Password: "Password123!"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
