package repository

import (
	"context"
	"time"

	"github.com/securebank/ledger/pkg/domain"
	repo "github.com/securebank/ledger/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a ledger repository on the given session.
func NewTransactionRepository(db *gorm.DB) repo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	m := transactionFromDomain(t)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return mapErr(err)
	}
	t.ID = m.ID
	t.CreatedAt = m.CreatedAt
	return nil
}

// UpdateStatus performs the guarded ledger transition. The WHERE clause on the
// current status makes the guard atomic: a concurrent or repeated transition
// matches zero rows and surfaces as ErrInvalidState.
func (r *transactionRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.TransactionStatus) error {
	if !domain.CanTransitionTransaction(from, to) {
		return domain.ErrInvalidState
	}
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

func (r *transactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "transaction_id = ?", transactionID).Error; err != nil {
		return nil, mapErr(err)
	}
	return transactionToDomain(&m), nil
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountNumber string, offset, limit int) ([]*domain.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("from_account_number = ? OR to_account_number = ?", accountNumber, accountNumber).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, mapErr(err)
	}
	var ms []Transaction
	err := q.Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, 0, mapErr(err)
	}
	return toDomainSlice(ms), total, nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uint, f repo.TransactionFilter, offset, limit int) ([]*domain.Transaction, int64, error) {
	numbers := r.db.Model(&Account{}).Select("account_number").Where("user_id = ?", userID)
	q := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("from_account_number IN (?) OR to_account_number IN (?)", numbers, numbers)
	if f.Type != nil {
		q = q.Where("transaction_type = ?", string(*f.Type))
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.Start != nil {
		q = q.Where("created_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("created_at <= ?", *f.End)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, mapErr(err)
	}
	var ms []Transaction
	err := q.Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, 0, mapErr(err)
	}
	return toDomainSlice(ms), total, nil
}

func (r *transactionRepository) SumByTypeSince(ctx context.Context, accountNumber string, t domain.TransactionType, since time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&Transaction{}).
		Select("SUM(amount)").
		Where("from_account_number = ?", accountNumber).
		Where("transaction_type = ?", string(t)).
		Where("status = ?", string(domain.TransactionStatusCompleted)).
		Where("created_at >= ?", since).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, mapErr(err)
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *transactionRepository) CountByUserSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	numbers := r.db.Model(&Account{}).Select("account_number").Where("user_id = ?", userID)
	var count int64
	err := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("from_account_number IN (?) OR to_account_number IN (?)", numbers, numbers).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, mapErr(err)
}

func (r *transactionRepository) CountPendingByUser(ctx context.Context, userID uint) (int64, error) {
	numbers := r.db.Model(&Account{}).Select("account_number").Where("user_id = ?", userID)
	var count int64
	err := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("from_account_number IN (?) OR to_account_number IN (?)", numbers, numbers).
		Where("status = ?", string(domain.TransactionStatusPending)).
		Count(&count).Error
	return count, mapErr(err)
}

func toDomainSlice(ms []Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, 0, len(ms))
	for i := range ms {
		out = append(out, transactionToDomain(&ms[i]))
	}
	return out
}
