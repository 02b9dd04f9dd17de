package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/candystock-api/internal/application/dto"
	"github.com/jhoicas/candystock-api/internal/domain"
	"github.com/jhoicas/candystock-api/internal/domain/entity"
	"github.com/jhoicas/candystock-api/internal/domain/repository"
	"github.com/jhoicas/candystock-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de identidad. El núcleo solo necesita un handle de
// identidad estable por sesión: las sesiones de piso son anónimas (uuid
// generado, como el sign-in anónimo del sistema original); las cuentas de
// operador (email+password) existen solo para proteger la edición del cierre.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// AnonymousSession emite un token de sesión anónima con identidad generada.
func (uc *UseCase) AnonymousSession() (*dto.SessionResponse, error) {
	userID := uuid.New().String()
	token, err := jwt.Generate(uc.jwtCfg.Secret, userID, entity.RoleStaff, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{Token: token, UserID: userID, Role: entity.RoleStaff}, nil
}

// RegisterOperator crea una cuenta de operador: hashea el password con bcrypt
// y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *UseCase) RegisterOperator(ctx context.Context, in dto.RegisterRequest) (*dto.SessionResponse, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleOperador,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.sessionFor(user)
}

// Login verifica email/password y emite un token de operador.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	return uc.sessionFor(user)
}

func (uc *UseCase) sessionFor(user *entity.User) (*dto.SessionResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{Token: token, UserID: user.ID, Role: user.Role}, nil
}
