package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"qual-store/internal/apperr"
	"qual-store/internal/identity"
	"qual-store/internal/logger"
	"qual-store/internal/models"
	"qual-store/internal/repository"
	"qual-store/internal/validation"
)

type JWTClaims struct {
	Role models.RoleName `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies access tokens. Order operations never call it;
// they only consume the identity.Caller it produces.
type AuthService struct {
	users        repository.UserRepo
	validator    validation.Validator
	jwtSecretKey []byte
	accessTTL    time.Duration
	now          func() time.Time
	log          *logger.Logger
}

func NewAuthService(log *logger.Logger, users repository.UserRepo, validator validation.Validator, jwtSecretKey string, accessTTL time.Duration) *AuthService {
	return &AuthService{
		users:        users,
		validator:    validator,
		jwtSecretKey: []byte(jwtSecretKey),
		accessTTL:    accessTTL,
		now:          time.Now,
		log:          log.With("service", "AuthService"),
	}
}

// Register creates a USER account.
func (as *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AppUser, error) {
	user := &models.AppUser{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.RoleUser,
	}
	if err := as.validator.Validate(user); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := as.users.Create(ctx, nil, user); err != nil {
		return nil, err
	}
	as.log.Info("User registered", "username", user.Username)
	return user, nil
}

// Login checks the credentials and returns a signed access token. Unknown users
// and wrong passwords are reported identically.
func (as *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := as.users.FindUserByUsername(ctx, nil, username)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return "", fmt.Errorf("%w: bad credentials", apperr.ErrUnauthorized)
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		as.log.Warn("Login failed", "username", username)
		return "", fmt.Errorf("%w: bad credentials", apperr.ErrUnauthorized)
	}
	return as.generateAccessToken(user)
}

func (as *AuthService) generateAccessToken(user *models.AppUser) (string, error) {
	now := as.now()
	claims := JWTClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.jwtSecretKey)
}

// ParseToken verifies tokenString and returns the caller it names.
func (as *AuthService) ParseToken(tokenString string) (identity.Caller, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return as.jwtSecretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return identity.Caller{}, fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return identity.Caller{}, fmt.Errorf("%w: invalid token claims", apperr.ErrUnauthorized)
	}
	return identity.Caller{Username: claims.Subject, Role: claims.Role}, nil
}

// EnsureAdmin creates username as ADMIN, or promotes an existing account.
func (as *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" {
		return nil
	}
	user, err := as.users.FindUserByUsername(ctx, nil, username)
	switch {
	case err == nil:
		if user.Role == models.RoleAdmin {
			return nil
		}
		as.log.Info("Promoting bootstrap user to admin", "username", username)
		return as.users.UpdateRole(ctx, nil, user.ID, models.RoleAdmin)
	case errors.Is(err, apperr.ErrUserNotFound):
		if password == "" {
			return fmt.Errorf("bootstrap admin %q needs a password", username)
		}
		created, err := as.Register(ctx, models.RegisterRequest{Username: username, Password: password})
		if err != nil {
			return err
		}
		as.log.Info("Bootstrap admin created", "username", username)
		return as.users.UpdateRole(ctx, nil, created.ID, models.RoleAdmin)
	default:
		return err
	}
}
