package repository

import (
	"context"

	"github.com/securebank/ledger/pkg/domain"
	repo "github.com/securebank/ledger/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository on the given session.
func NewAccountRepository(db *gorm.DB) repo.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	m := accountFromDomain(a)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return mapErr(err)
	}
	a.ID = m.ID
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uint) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return accountToDomain(&m), nil
}

func (r *accountRepository) GetForUpdate(ctx context.Context, id uint) (*domain.Account, error) {
	var m Account
	q := r.db.WithContext(ctx)
	// sqlite has no row locks; its single-writer model serializes writes anyway.
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&m, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return accountToDomain(&m), nil
}

func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "account_number = ?", number).Error; err != nil {
		return nil, mapErr(err)
	}
	return accountToDomain(&m), nil
}

func (r *accountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).
		Where("account_number = ?", number).Count(&count).Error
	return count > 0, mapErr(err)
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Account, error) {
	var ms []Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, mapErr(err)
	}
	accounts := make([]*domain.Account, 0, len(ms))
	for i := range ms {
		accounts = append(accounts, accountToDomain(&ms[i]))
	}
	return accounts, nil
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Update("balance", balance)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) UpdateStatus(ctx context.Context, id uint, status domain.AccountStatus) error {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
