package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blogem/boardhook/kvstore"
	"github.com/blogem/boardhook/models"
)

const usersIndexKey = "users:index"

var (
	// ErrStoreUnavailable is returned by writes that need durability when no store is configured
	ErrStoreUnavailable = errors.New("store not configured")
	// ErrUserExists is returned when registering an email twice
	ErrUserExists = errors.New("email already registered")
	// ErrUserNotFound is returned when no account exists for an email
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository interface defines account storage operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// userRepository implements UserRepository on the keyed store
type userRepository struct {
	kv kvstore.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(kv kvstore.Store) UserRepository {
	return &userRepository{kv: kv}
}

func userKey(email string) string { return "user:" + email }

// Create stores a new account. Adding the email to the users index is the
// claim: of two concurrent registrations only one gets past it.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if r.kv == nil {
		return ErrStoreUnavailable
	}

	added, err := r.kv.SAdd(ctx, usersIndexKey, user.Email)
	if err != nil {
		return fmt.Errorf("failed to index user %s: %w", user.Email, err)
	}
	if !added {
		return ErrUserExists
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if err := r.write(ctx, user); err != nil {
		if remErr := r.kv.SRem(ctx, usersIndexKey, user.Email); remErr != nil {
			log.Printf("Failed to release users index entry %s: %v", user.Email, remErr)
		}
		return err
	}
	return nil
}

// GetByEmail loads an account; ErrUserNotFound when it does not exist
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.kv == nil {
		return nil, ErrUserNotFound
	}

	fields, err := r.kv.HGetAll(ctx, userKey(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", email, err)
	}
	if len(fields) == 0 {
		return nil, ErrUserNotFound
	}

	user := &models.User{
		Email:        fields["email"],
		PasswordHash: fields["password"],
		Name:         fields["name"],
		Avatar:       fields["avatar"],
		TrelloToken:  fields["trelloToken"],
	}
	if user.Email == "" {
		user.Email = email
	}
	if createdAt, err := time.Parse(time.RFC3339Nano, fields["createdAt"]); err == nil {
		user.CreatedAt = createdAt
	}
	return user, nil
}

// Update overwrites the stored fields of an existing account
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if r.kv == nil {
		return ErrStoreUnavailable
	}
	return r.write(ctx, user)
}

func (r *userRepository) write(ctx context.Context, user *models.User) error {
	fields := []struct{ name, value string }{
		{"email", user.Email},
		{"password", user.PasswordHash},
		{"name", user.Name},
		{"avatar", user.Avatar},
		{"trelloToken", user.TrelloToken},
		{"createdAt", user.CreatedAt.UTC().Format(time.RFC3339Nano)},
	}
	for _, f := range fields {
		if err := r.kv.HSet(ctx, userKey(user.Email), f.name, f.value); err != nil {
			return fmt.Errorf("failed to save user %s: %w", user.Email, err)
		}
	}
	return nil
}
