package application

import (
	"context"

	"github.com/shopcore/services/internal/users/domain"
)

// UserRepository persists user accounts. Create returns ErrEmailTaken
// when the email is already registered.
type UserRepository interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
}
