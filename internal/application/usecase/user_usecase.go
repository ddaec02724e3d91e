package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"github.com/alumasa/almoxarifado-api/internal/application/dto"
	"github.com/alumasa/almoxarifado-api/internal/domain"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
	"github.com/alumasa/almoxarifado-api/internal/domain/repository"
)

// UserUseCase casos de uso CRUD para usuarios del sistema.
type UserUseCase struct {
	repo    repository.UserRepository
	auditor Auditor
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, auditor Auditor) *UserUseCase {
	return &UserUseCase{repo: repo, auditor: auditor}
}

// Create crea un usuario: hashea la contraseña con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está en uso.
func (uc *UserUseCase) Create(in dto.CreateUserRequest, actingUser string) (*dto.UserResponse, error) {
	if in.Name == "" || in.Email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	profile := in.Profile
	if profile == "" {
		profile = entity.ProfileOperator
	}
	if !entity.ValidProfile(profile) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Profile:      profile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	uc.auditor.Record(actingUser, fmt.Sprintf("Criou o usuário %s.", user.Name))
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// Update actualiza nombre, email o perfil de un usuario.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest, actingUser string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.Email != nil && *in.Email != user.Email {
		other, err := uc.repo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Profile != nil {
		if !entity.ValidProfile(*in.Profile) {
			return nil, domain.ErrInvalidInput
		}
		user.Profile = *in.Profile
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	uc.auditor.Record(actingUser, fmt.Sprintf("Atualizou o usuário %s.", user.Name))
	return toUserResponse(user), nil
}

// ChangePassword cambia la contraseña (mínimo 6 caracteres).
func (uc *UserUseCase) ChangePassword(id string, in dto.ChangePasswordRequest, actingUser string) error {
	if len(in.NewPassword) < 6 {
		return domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return err
	}
	uc.auditor.Record(actingUser, fmt.Sprintf("Alterou a senha do usuário %s.", user.Name))
	return nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(id string, actingUser string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.auditor.Record(actingUser, fmt.Sprintf("Excluiu o usuário %s.", user.Name))
	return nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Profile:   u.Profile,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
