package repository

import (
	"github.com/quidpay/quidpay/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Count() (int64, error)
}

// ProductRepository defines the interface for catalog operations
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	List(offset, limit int) ([]models.Product, error)
	Count() (int64, error)
}

// TransactionRepository defines the interface for transaction records
type TransactionRepository interface {
	Create(txn *models.Transaction) error
	GetByUserID(userID string) ([]models.Transaction, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Product     ProductRepository
	Transaction TransactionRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Product:     NewProductRepository(db),
		Transaction: NewTransactionRepository(db),
	}
}
