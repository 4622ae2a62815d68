package postgres

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	crm "github.com/smdydx/bidua-crm"
	"github.com/smdydx/bidua-crm/entity"
)

// UserStore adds account lookups and credential handling on top of the
// generic repository.
type UserStore struct {
	*Repository[entity.User]
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{NewRepository[entity.User](db, entity.NameUser, entity.UserSchema)}
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.FindOne(ctx, crm.Filters{"email": email})
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.FindOne(ctx, crm.Filters{"username": username})
}

// CreateWithPassword bcrypt-hashes the plaintext and inserts the account
// with only the hash; the plaintext is never stored.
func (s *UserStore) CreateWithPassword(ctx context.Context, fields map[string]any, password string) (*entity.User, error) {
	if password == "" {
		return nil, crm.NewValidationError(entity.NameUser, "password", "must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, crm.NewStorageError(entity.NameUser, "hash password", err)
	}

	insert := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		insert[key] = value
	}
	insert["password_hash"] = string(hash)
	return s.Create(ctx, insert, nil)
}

// Authenticate resolves the account by email and checks the password
// against the stored hash. Unknown email and mismatch both come back as
// (nil, nil); only storage trouble is an error.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}
