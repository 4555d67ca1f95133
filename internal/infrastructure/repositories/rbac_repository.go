package repositories

import (
	"context"
	"errors"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"gorm.io/gorm"
)

// DBRole represents the database model for a role.
type DBRole struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64;not null"`
}

func (DBRole) TableName() string { return "roles" }

// DBPermission represents the database model for a permission.
type DBPermission struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:128;not null"`
}

func (DBPermission) TableName() string { return "permissions" }

// RoleRepositoryImpl implements domain.RoleRepository using GORM
type RoleRepositoryImpl struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) domain.RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

// List implements domain.RoleRepository
func (r *RoleRepositoryImpl) List(ctx context.Context) ([]domain.Role, error) {
	var rows []DBRole
	if err := dbFrom(ctx, r.db).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	roles := make([]domain.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, domain.Role{ID: row.ID, Name: row.Name})
	}
	return roles, nil
}

// Create implements domain.RoleRepository
func (r *RoleRepositoryImpl) Create(ctx context.Context, role *domain.Role) error {
	row := &DBRole{Name: role.Name}
	if err := dbFrom(ctx, r.db).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict("a role with this name already exists")
		}
		return err
	}
	role.ID = row.ID
	return nil
}

// FindByID implements domain.RoleRepository
func (r *RoleRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Role, error) {
	var row DBRole
	if err := dbFrom(ctx, r.db).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("unable to find the role")
		}
		return nil, err
	}
	return &domain.Role{ID: row.ID, Name: row.Name}, nil
}

// FindByNames implements domain.RoleRepository
func (r *RoleRepositoryImpl) FindByNames(ctx context.Context, names []string) ([]domain.Role, error) {
	var rows []DBRole
	if err := dbFrom(ctx, r.db).Where("name IN ?", names).Find(&rows).Error; err != nil {
		return nil, err
	}
	roles := make([]domain.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, domain.Role{ID: row.ID, Name: row.Name})
	}
	return roles, nil
}

// Update implements domain.RoleRepository
func (r *RoleRepositoryImpl) Update(ctx context.Context, role *domain.Role) error {
	return dbFrom(ctx, r.db).Save(&DBRole{ID: role.ID, Name: role.Name}).Error
}

// Delete implements domain.RoleRepository
func (r *RoleRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := dbFrom(ctx, r.db).Delete(&DBRole{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("unable to find the role")
	}
	return nil
}

// PermissionRepositoryImpl implements domain.PermissionRepository using GORM
type PermissionRepositoryImpl struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *gorm.DB) domain.PermissionRepository {
	return &PermissionRepositoryImpl{db: db}
}

// List implements domain.PermissionRepository
func (r *PermissionRepositoryImpl) List(ctx context.Context) ([]domain.Permission, error) {
	var rows []DBPermission
	if err := dbFrom(ctx, r.db).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	permissions := make([]domain.Permission, 0, len(rows))
	for _, row := range rows {
		permissions = append(permissions, domain.Permission{ID: row.ID, Name: row.Name})
	}
	return permissions, nil
}

// Create implements domain.PermissionRepository
func (r *PermissionRepositoryImpl) Create(ctx context.Context, permission *domain.Permission) error {
	row := &DBPermission{Name: permission.Name}
	if err := dbFrom(ctx, r.db).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict("a permission with this name already exists")
		}
		return err
	}
	permission.ID = row.ID
	return nil
}

// FindByID implements domain.PermissionRepository
func (r *PermissionRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Permission, error) {
	var row DBPermission
	if err := dbFrom(ctx, r.db).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("unable to find the permission")
		}
		return nil, err
	}
	return &domain.Permission{ID: row.ID, Name: row.Name}, nil
}

// FindByNames implements domain.PermissionRepository
func (r *PermissionRepositoryImpl) FindByNames(ctx context.Context, names []string) ([]domain.Permission, error) {
	var rows []DBPermission
	if err := dbFrom(ctx, r.db).Where("name IN ?", names).Find(&rows).Error; err != nil {
		return nil, err
	}
	permissions := make([]domain.Permission, 0, len(rows))
	for _, row := range rows {
		permissions = append(permissions, domain.Permission{ID: row.ID, Name: row.Name})
	}
	return permissions, nil
}

// Update implements domain.PermissionRepository
func (r *PermissionRepositoryImpl) Update(ctx context.Context, permission *domain.Permission) error {
	return dbFrom(ctx, r.db).Save(&DBPermission{ID: permission.ID, Name: permission.Name}).Error
}

// Delete implements domain.PermissionRepository
func (r *PermissionRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := dbFrom(ctx, r.db).Delete(&DBPermission{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("unable to find the permission")
	}
	return nil
}
