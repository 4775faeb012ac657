package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inamhi-tic/helpdesk-service/internal/errs"
	"github.com/inamhi-tic/helpdesk-service/internal/model"
)

// RegisterUserInput carries the user-management form fields.
type RegisterUserInput struct {
	FullName string
	Email    string
	Password string
	Role     model.Role
}

// UpdateUserInput edits an existing user. Password empty means keep the
// current hash.
type UpdateUserInput struct {
	FullName string
	Email    string
	Password string
	Role     model.Role
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// registrable: the management screen only creates technicians and interns.
// Administrators are seeded out of band.
func registrable(r model.Role) bool {
	return r == model.RoleTechnician || r == model.RoleIntern
}

// Register creates a user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*model.User, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, errs.NewValidation("nombre_completo")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, errs.NewValidation("email")
	}
	if in.Password == "" {
		return nil, errs.NewValidation("password")
	}
	if !registrable(in.Role) {
		return nil, errs.NewValidation("rol")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: string(hash),
		Role:     in.Role,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// List returns all users. Password hashes never serialize (json:"-").
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update edits name, email and role; a non-empty password is re-hashed.
func (s *UserService) Update(ctx context.Context, id uint64, in UpdateUserInput) (*model.User, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, errs.NewValidation("nombre_completo")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, errs.NewValidation("email")
	}
	if !in.Role.Valid() {
		return nil, errs.NewValidation("rol")
	}

	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	u.FullName = strings.TrimSpace(in.FullName)
	u.Email = strings.ToLower(strings.TrimSpace(in.Email))
	u.Role = in.Role
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(hash)
	}
	if err := s.db.WithContext(ctx).Save(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

// Delete removes the user. Hard delete; tickets assigned by display name keep
// the stale name, as assignment is not by id.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// Login checks credentials and then the requested role against the stored
// one: an Administrador request is satisfied only by an Administrador row; a
// Tecnico request by Tecnico or Pasante. Credential failure and role failure
// stay distinguishable (401 vs 403 at the handler).
func (s *UserService) Login(ctx context.Context, email, password string, requested model.Role) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, errs.ErrBadCredentials
	}

	allowed := false
	switch requested {
	case model.RoleAdmin:
		allowed = u.Role == model.RoleAdmin
	case model.RoleTechnician:
		allowed = u.Role == model.RoleTechnician || u.Role == model.RoleIntern
	}
	if !allowed {
		return nil, errs.ErrRoleNotAllowed
	}
	return &u, nil
}

// Technicians lists the display names selectable for assignment: every user
// with the Tecnico or Pasante role.
func (s *UserService) Technicians(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("rol IN ?", []model.Role{model.RoleTechnician, model.RoleIntern}).
		Order("nombre_completo").
		Pluck("nombre_completo", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
