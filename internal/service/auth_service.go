package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/learnora/backend/config"
	"github.com/learnora/backend/internal/apperr"
	"github.com/learnora/backend/internal/authz"
	"github.com/learnora/backend/internal/dto"
	"github.com/learnora/backend/internal/model"
	"github.com/learnora/backend/internal/repository"
)

// AuthService covers registration, login and principal resolution. Role
// membership is assigned administratively, never self-served.
type AuthService interface {
	Register(req dto.RegisterDTO) (*dto.UserResponseDTO, error)
	Login(req dto.LoginDTO) (*dto.TokenResponseDTO, error)
	// PrincipalFromToken resolves a bearer token into a Principal with its
	// role enum set. Invalid tokens resolve to an error, not an anonymous
	// principal; the middleware decides how to degrade.
	PrincipalFromToken(token string) (authz.Principal, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Register(req dto.RegisterDTO) (*dto.UserResponseDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		Email:    req.Email,
		Password: string(hash),
		Phone:    req.Phone,
		City:     req.City,
	}
	if err := s.userRepo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a user with this email already exists")
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Register: failed to create user")
		return nil, fmt.Errorf("creating user: %w", err)
	}

	var resp dto.UserResponseDTO
	if err := copier.Copy(&resp, &user); err != nil {
		return nil, fmt.Errorf("preparing registration response: %w", err)
	}
	return &resp, nil
}

func (s *authService) Login(req dto.LoginDTO) (*dto.TokenResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authorization("invalid email or password")
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Authorization("invalid email or password")
	}

	ttl := time.Duration(s.cfg.JWT.TTLMinutes) * time.Minute
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", user.ID),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &dto.TokenResponseDTO{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}

func (s *authService) PrincipalFromToken(tokenString string) (authz.Principal, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return authz.Anonymous(), apperr.Authorization("invalid or expired token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return authz.Anonymous(), apperr.Authorization("invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return authz.Anonymous(), apperr.Authorization("token has no subject")
	}

	var userID uint
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil {
		return authz.Anonymous(), apperr.Authorization("malformed token subject")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return authz.Anonymous(), apperr.Authorization("token subject no longer exists")
	}

	principal := authz.Principal{
		UserID:        user.ID,
		Email:         user.Email,
		Authenticated: true,
	}
	for _, role := range user.Roles {
		if r, ok := authz.RoleFromName(role.Name); ok {
			principal.Roles = append(principal.Roles, r)
		}
	}
	return principal, nil
}
