package auth

import (
	"context"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	"gorm.io/gorm"
)

// Account is the role-agnostic view of a login record. Accounts live in
// per-role tables, so IDs are only unique within a role.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         enums.Role
}

// Repository resolves accounts across the per-role tables.
type Repository interface {
	FindAccountByEmail(ctx context.Context, role enums.Role, email string) (*Account, error)
	FindAccountByID(ctx context.Context, role enums.Role, id int64) (*Account, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an auth repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAccountByEmail(ctx context.Context, role enums.Role, email string) (*Account, error) {
	return r.find(ctx, role, "email = ?", email)
}

func (r *repository) FindAccountByID(ctx context.Context, role enums.Role, id int64) (*Account, error) {
	switch role {
	case enums.RoleAdmin:
		return r.find(ctx, role, "admin_id = ?", id)
	case enums.RoleDispatcher:
		return r.find(ctx, role, "dispatcher_id = ?", id)
	default:
		return r.find(ctx, role, "agent_id = ?", id)
	}
}

func (r *repository) find(ctx context.Context, role enums.Role, query string, arg any) (*Account, error) {
	switch role {
	case enums.RoleAdmin:
		var record models.Admin
		if err := r.db.WithContext(ctx).Where(query, arg).First(&record).Error; err != nil {
			return nil, err
		}
		return &Account{ID: record.ID, Name: record.Name, Email: record.Email, PasswordHash: record.PasswordHash, Role: role}, nil
	case enums.RoleDispatcher:
		var record models.Dispatcher
		if err := r.db.WithContext(ctx).Where(query, arg).First(&record).Error; err != nil {
			return nil, err
		}
		return &Account{ID: record.ID, Name: record.Name, Email: record.Email, PasswordHash: record.PasswordHash, Role: role}, nil
	default:
		var record models.FieldAgent
		if err := r.db.WithContext(ctx).Where(query, arg).First(&record).Error; err != nil {
			return nil, err
		}
		return &Account{ID: record.ID, Name: record.Name, Email: record.Email, PasswordHash: record.PasswordHash, Role: role}, nil
	}
}
