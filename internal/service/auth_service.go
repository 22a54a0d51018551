package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/triautami12/aplikasi-lapor-fasilkom/config"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/repository"
)

// ErrInvalidCredentials deliberately covers both unknown identifiers and
// wrong passwords so the API cannot be used to enumerate users.
var ErrInvalidCredentials = errors.New("invalid identifier or password")

type AuthService struct {
	userRepo    *repository.UserRepository
	jwtConfig   config.JWTConfig
	adminConfig config.AdminConfig
}

func NewAuthService(userRepo *repository.UserRepository, jwtConfig config.JWTConfig, adminConfig config.AdminConfig) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtConfig:   jwtConfig,
		adminConfig: adminConfig,
	}
}

// Register creates a user with a bcrypt password hash. The identifier must be
// unique case-insensitively.
func (s *AuthService) Register(req *model.RegisterRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	identifier := strings.TrimSpace(req.Identifier)
	if name == "" || identifier == "" {
		return nil, errors.New("name and identifier are required")
	}
	if len(req.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	if !model.ValidRole(req.Role) || req.Role == model.RoleAdmin {
		return nil, errors.New("invalid role")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.StoredUser{
		Name:         name,
		Identifier:   identifier,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, errors.New("identifier already registered")
		}
		return nil, err
	}

	return &model.User{Name: user.Name, Identifier: user.Identifier, Role: user.Role}, nil
}

// Login checks the reserved admin pair first, then registered users. The
// identifier match is case-insensitive, the password match exact.
func (s *AuthService) Login(req *model.LoginRequest) (*model.LoginResponse, error) {
	if req.Identifier == s.adminConfig.Identifier && req.Password == s.adminConfig.Password {
		admin := model.User{
			Name:       s.adminConfig.Name,
			Identifier: s.adminConfig.Identifier,
			Role:       model.RoleAdmin,
		}
		token, err := s.generateToken(&admin)
		if err != nil {
			return nil, err
		}
		return &model.LoginResponse{Token: token, User: admin}, nil
	}

	stored, err := s.userRepo.FindByIdentifier(req.Identifier)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := model.User{Name: stored.Name, Identifier: stored.Identifier, Role: stored.Role}
	token, err := s.generateToken(&user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{Token: token, User: user}, nil
}

// ValidateToken parses a session token back into its user.
func (s *AuthService) ValidateToken(tokenString string) (*model.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	identifier, _ := claims["user_identifier"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if identifier == "" {
		return nil, errors.New("invalid claims")
	}

	return &model.User{Name: name, Identifier: identifier, Role: model.Role(role)}, nil
}

func (s *AuthService) generateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_identifier": user.Identifier,
		"name":            user.Name,
		"role":            string(user.Role),
		"exp":             time.Now().Add(time.Hour * time.Duration(s.jwtConfig.ExpirationHours)).Unix(),
		"iat":             time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}
