package database

import (
	"context"
	"fmt"
	"strings"

	"stocks-api/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithRole inserts the user and attaches the named role in one
// transaction, so a failed role assignment leaves no orphaned account.
func (r *UserRepository) CreateWithRole(ctx context.Context, user *models.User, roleName string) error {
	return Transaction(ctx, r.db, func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("name = ?", roleName).First(&role).Error; err != nil {
			return fmt.Errorf("find role %s: %w", roleName, translate(err))
		}
		if err := tx.Omit("Roles").Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", translate(err))
		}
		if err := tx.Model(user).Association("Roles").Append(&role); err != nil {
			return fmt.Errorf("assign role %s: %w", roleName, translate(err))
		}
		return nil
	})
}

// FindByUsername looks a user up by its normalized (lower-case) username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("username = ?", strings.ToLower(username)).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
