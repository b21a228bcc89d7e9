package gormdb

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"coin-wallet-service/internal/domain/wallet"
)

// UserRepo implements the wallet Repository interface on top of GORM.
// It works against any dialect the container opens (SQLite or PostgreSQL).
type UserRepo struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new instance of UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"`               // Unique identifier with auto-increment
	Username   string  `gorm:"size:80;not null;uniqueIndex"`           // Unique login name (required)
	CoinAmount float64 `gorm:"column:coin_amount;not null"`            // Coin holdings
	IsAdmin    bool    `gorm:"column:is_admin;not null;default:false"` // Administrative flag
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() wallet.User {
	return wallet.User{
		ID:         m.ID,
		Username:   m.Username,
		CoinAmount: m.CoinAmount,
		IsAdmin:    m.IsAdmin,
	}
}

// Migrate ensures the users table exists.
func (r *UserRepo) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&UserSchema{}); err != nil {
		r.log.Error("failed to migrate users table", zap.Error(err))
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

// Initialize migrates the schema and seeds the default users into an empty table.
// It is safe to call on every startup.
func (r *UserRepo) Initialize(ctx context.Context) (int, error) {
	if err := r.Migrate(ctx); err != nil {
		return 0, err
	}
	return r.Seed(ctx, wallet.SeedUsers())
}

// Count returns the number of stored users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&UserSchema{}).Count(&n).Error; err != nil {
		r.log.Error("failed to count users", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// Seed inserts users when the table is empty and returns how many rows were written.
// The count check and the inserts share one transaction.
func (r *UserRepo) Seed(ctx context.Context, users []wallet.User) (int, error) {
	inserted := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&UserSchema{}).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if n > 0 {
			r.log.Debug("users table already populated, skipping seed", zap.Int64("rows", n))
			return nil
		}

		models := make([]UserSchema, len(users))
		for i, u := range users {
			models[i] = UserSchema{
				Username:   u.Username,
				CoinAmount: u.CoinAmount,
				IsAdmin:    u.IsAdmin,
			}
		}
		if len(models) == 0 {
			return nil
		}
		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to insert seed users: %w", err)
		}

		inserted = len(models)
		return nil
	})
	if err != nil {
		r.log.Error("failed to seed users", zap.Error(err))
		return 0, err
	}

	if inserted > 0 {
		r.log.Info("seeded users table", zap.Int("rows", inserted))
	}
	return inserted, nil
}

// ListAll retrieves every stored user in primary key order.
func (r *UserRepo) ListAll(ctx context.Context) ([]wallet.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]wallet.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}

	return users, nil
}

// Ping checks that the underlying connection is usable.
func (r *UserRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
