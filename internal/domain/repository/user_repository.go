package repository

import (
	"context"

	"github.com/jhoicas/candystock-api/internal/domain/entity"
)

// UserRepository cuentas de operador.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail devuelve nil (sin error) si el email no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
