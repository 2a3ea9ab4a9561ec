package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gitxyzlabs/levoyageur/internal/identity"
)

// Role controls what a user may write.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
)

// ErrNotEditor indicates a write reserved for editors.
var ErrNotEditor = errors.New("editor role required")

// ErrUserNotFound indicates a lookup by unknown user.
var ErrUserNotFound = errors.New("user not found")

// User is an account known to the store.
type User struct {
	ID        string
	Name      string
	Role      Role
	CreatedAt time.Time
}

func parseRole(raw string) Role {
	if Role(strings.ToLower(strings.TrimSpace(raw))) == RoleEditor {
		return RoleEditor
	}
	return RoleViewer
}

// EnsureUser returns the user with the given name, creating it with the
// given role when absent. An existing user's role is left unchanged.
func (s *Store) EnsureUser(ctx context.Context, name string, role Role) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, errors.New("user name is empty")
	}

	if user, err := s.GetUserByName(ctx, name); err == nil {
		return user, nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	user := User{
		ID:        identity.NewID(),
		Name:      name,
		Role:      parseRole(string(role)),
		CreatedAt: parseStamp(nowStamp()),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, role, created_at) VALUES (?, ?, ?, ?)`,
		user.ID, user.Name, string(user.Role), user.CreatedAt.UTC().Format(stampLayout))
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (User, error) {
	return s.getUser(ctx, `SELECT id, name, role, created_at FROM users WHERE id = ?`, id)
}

// GetUserByName fetches a user by name.
func (s *Store) GetUserByName(ctx context.Context, name string) (User, error) {
	return s.getUser(ctx, `SELECT id, name, role, created_at FROM users WHERE name = ?`, strings.TrimSpace(name))
}

func (s *Store) getUser(ctx context.Context, query, arg string) (User, error) {
	var (
		user      User
		role      string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Name, &role, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("%w: %s", ErrUserNotFound, arg)
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	user.Role = parseRole(role)
	user.CreatedAt = parseStamp(createdAt)
	return user, nil
}

// SetRole updates a user's role.
func (s *Store) SetRole(ctx context.Context, userID string, role Role) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`,
		string(parseRole(string(role))), userID)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return nil
}
