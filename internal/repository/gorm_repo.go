package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bill_tracker/internal/model"

	"gorm.io/gorm"
)

// NewGormStore creates a Store backed by gorm. The schema must already be migrated.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:  &gormUserRepository{db: db},
		Groups: &gormGroupRepository{db: db},
		Bills:  &gormBillRepository{db: db},
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("failed to create user: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *gormUserRepository) FindByName(ctx context.Context, name string) (*model.User, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *gormUserRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepository) first(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

type gormGroupRepository struct {
	db *gorm.DB
}

func (r *gormGroupRepository) Create(ctx context.Context, g *model.Group) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (r *gormGroupRepository) FindAll(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	if err := r.db.WithContext(ctx).Order("id").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	return groups, nil
}

func (r *gormGroupRepository) FindByID(ctx context.Context, id int) (*model.Group, error) {
	var g model.Group
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find group by ID: %w", err)
	}
	return &g, nil
}

type gormBillRepository struct {
	db *gorm.DB
}

func (r *gormBillRepository) Create(ctx context.Context, b *model.Bill) error {
	// The owning group is referenced through GroupID only.
	if err := r.db.WithContext(ctx).Omit("Group").Create(b).Error; err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

func (r *gormBillRepository) FindAll(ctx context.Context) ([]model.Bill, error) {
	var bills []model.Bill
	if err := r.db.WithContext(ctx).Preload("Group").Order("id").Find(&bills).Error; err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	return bills, nil
}

func (r *gormBillRepository) FindByGroup(ctx context.Context, groupID int) ([]model.Bill, error) {
	var bills []model.Bill
	if err := r.db.WithContext(ctx).Preload("Group").Where("group_id = ?", groupID).Order("id").Find(&bills).Error; err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	return bills, nil
}
