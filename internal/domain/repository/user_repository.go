package repository

import "github.com/Kentcsclass/smart-imventory/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	List() ([]*entity.User, error)
	UpdatePassword(id, passwordHash string) error
	Count() (int, error)
}
