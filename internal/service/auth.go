package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hopeplates/internal/domain"
)

// Claims are the JWT claims issued at login.
type Claims struct {
	Role  domain.Role `json:"role"`
	NGOID string      `json:"ngo_id,omitempty"`
	jwt.RegisteredClaims
}

// AuthService handles registration and login.
type AuthService struct {
	state    *StateManager
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(state *StateManager, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		state:    state,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// RegisterRequest contains the parameters for registering an account.
// The profile fields are only used for the ngo role.
type RegisterRequest struct {
	Email         string
	Password      string
	Role          domain.Role
	Name          string
	ContactNumber string
	Location      string
	Latitude      *float64
	Longitude     *float64
}

// RegisterResponse contains the created user and, for NGOs, the profile.
type RegisterResponse struct {
	User *domain.User
	NGO  *domain.NGO
}

// Register creates a user. NGO accounts also get an active NGO profile with
// the default service radius and capacity.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if req.Password == "" {
		return nil, ErrInvalidPassword
	}
	if req.Role != domain.RoleDonor && req.Role != domain.RoleNGO {
		return nil, ErrInvalidRole
	}
	if err := validOptionalCoordinate(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    now,
	}

	var ngo *domain.NGO
	if req.Role == domain.RoleNGO {
		ngo = &domain.NGO{
			ID:            uuid.New().String(),
			UserID:        user.ID,
			Name:          req.Name,
			Email:         email,
			ContactNumber: req.ContactNumber,
			Location:      req.Location,
			Latitude:      req.Latitude,
			Longitude:     req.Longitude,
			ServiceRadius: domain.DefaultServiceRadiusKm,
			Capacity:      domain.DefaultCapacity,
			IsActive:      true,
			CreatedAt:     now,
		}
	}

	err = s.state.Update(ctx, func(state *domain.State) error {
		if state.FindUserByEmail(email) != nil {
			return ErrUserAlreadyExists
		}
		state.Users = append(state.Users, user)
		if ngo != nil {
			state.NGOs = append(state.NGOs, ngo)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{User: user, NGO: ngo}, nil
}

// LoginRequest contains the parameters for logging in.
type LoginRequest struct {
	Email    string
	Password string
	Role     domain.Role
}

// LoginResponse contains the issued token.
type LoginResponse struct {
	Token     string
	UserID    string
	Role      domain.Role
	NGOID     string
	ExpiresAt time.Time
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	state, err := s.state.Read(ctx)
	if err != nil {
		return nil, err
	}

	user := state.FindUserByEmail(normalizeEmail(req.Email))
	if user == nil || user.Role != req.Role {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	var ngoID string
	if user.Role == domain.RoleNGO {
		for _, n := range state.NGOs {
			if n.UserID == user.ID {
				ngoID = n.ID
				break
			}
		}
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:  user.Role,
		NGOID: ngoID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResponse{
		Token:     signed,
		UserID:    user.ID,
		Role:      user.Role,
		NGOID:     ngoID,
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken verifies a token issued by Login and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
