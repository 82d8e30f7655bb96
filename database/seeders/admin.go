package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafepos/app/models"
	"github.com/shashiranjanraj/cafepos/pkg/logger"
	"github.com/shashiranjanraj/cafepos/pkg/orm"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the administrator account unless a user with that
// username already exists.
func SeedAdmin(ctx context.Context, db *gorm.DB, opts Options) error {
	gw := orm.New(db)

	var existing models.User
	found, err := gw.QueryOne(ctx, &existing, "SELECT * FROM users WHERE username = ?", opts.AdminUsername)
	if err != nil || found {
		return err
	}

	admin := models.User{Username: opts.AdminUsername, Password: opts.AdminPassword}
	if err := gw.Insert(ctx, &admin); err != nil {
		return err
	}
	logger.Info("seeder: admin created", "username", admin.Username)
	return nil
}
