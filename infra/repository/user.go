package repository

import (
	"context"

	"github.com/securebank/ledger/pkg/domain"
	repo "github.com/securebank/ledger/pkg/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository on the given session.
func NewUserRepository(db *gorm.DB) repo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	m := &User{
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return mapErr(err)
	}
	u.ID = m.ID
	u.CreatedAt = m.CreatedAt
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uint) (*domain.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return userToDomain(&m), nil
}

func (r *userRepository) GetByIdentity(ctx context.Context, identity string) (*domain.User, error) {
	var m User
	err := r.db.WithContext(ctx).
		First(&m, "username = ? OR email = ?", identity, identity).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return userToDomain(&m), nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, mapErr(err)
}
