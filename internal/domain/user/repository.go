package user

import "context"

// Repository describes user persistence needs from use cases.
// Create returns ErrDuplicateIdentifier when email or phone is already taken.
type Repository interface {
	Create(ctx context.Context, item User) error
	GetByID(ctx context.Context, userID string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, item User) error
}
