package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"userhub/internal/apperr"
	"userhub/internal/model"
	"userhub/internal/query"
)

// UserRepository is the only component touching the store. Store
// errors are classified here once; callers never see gorm values.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Find(ctx context.Context, p query.Params) ([]model.User, error) {
	order := p.SortColumn + " ASC"
	if p.SortDesc {
		order = p.SortColumn + " DESC"
	}

	users := []model.User{}
	tx := applySearch(r.db.WithContext(ctx).Model(&model.User{}), p.Search)
	if err := tx.Order(order).Limit(p.Limit).Offset(p.Offset).Find(&users).Error; err != nil {
		return nil, apperr.Store(err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context, search string) (int64, error) {
	var count int64
	tx := applySearch(r.db.WithContext(ctx).Model(&model.User{}), search)
	if err := tx.Count(&count).Error; err != nil {
		return 0, apperr.Store(err)
	}
	return count, nil
}

func (r *UserRepository) CountByActive(ctx context.Context, active bool) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&model.User{}).Where("is_active = ?", active)
	if err := tx.Count(&count).Error; err != nil {
		return 0, apperr.Store(err)
	}
	return count, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Store(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Store(err)
	}
	return &user, nil
}

// Create inserts the record; the unique index on email is the
// authoritative duplicate guard, so a translated duplicate-key error
// surfaces as a conflict even when the service-level pre-check raced.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Wrap(apperr.KindConflict, "User with this email already exists", err)
		}
		return apperr.Store(err)
	}
	return nil
}

// Update applies the given columns to the record and returns the
// refreshed row, or nil when the id is unknown.
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]any) (*model.User, error) {
	if len(fields) > 0 {
		tx := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
		if err := tx.Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Wrap(apperr.KindConflict, "Email already in use", err)
			}
			return nil, apperr.Store(err)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if err := tx.Error; err != nil {
		return false, apperr.Store(err)
	}
	return tx.RowsAffected > 0, nil
}

func applySearch(tx *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return tx
	}
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	return tx.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
