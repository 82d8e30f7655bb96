package repositories

import (
	"context"

	"github.com/shashiranjanraj/cafepos/app/models"
	"github.com/shashiranjanraj/cafepos/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	gw *orm.Gateway
}

func NewUserRepository(gw *orm.Gateway) *UserRepository {
	return &UserRepository{gw: gw}
}

// FindByCredentials looks up a user whose username and password both match
// exactly.
func (r *UserRepository) FindByCredentials(ctx context.Context, username, password string) (models.User, bool, error) {
	var user models.User
	found, err := r.gw.QueryOne(ctx, &user,
		"SELECT * FROM users WHERE username = ? AND password = ?", username, password)
	return user, found, err
}

// SetToken overwrites the user's active session token.
func (r *UserRepository) SetToken(ctx context.Context, id uint, token string) error {
	_, err := r.gw.Exec(ctx, "UPDATE users SET token = ? WHERE id = ?", token, id)
	return err
}

// HasToken reports whether any user currently holds token.
func (r *UserRepository) HasToken(ctx context.Context, token string) (bool, error) {
	var user models.User
	return r.gw.QueryOne(ctx, &user, "SELECT * FROM users WHERE token = ?", token)
}
