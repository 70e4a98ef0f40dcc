package services

import (
	"database/sql"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blacknews/blacknews-be/internal/models"
)

var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// NewUserInput carries the fields for creating an account. PasswordHash and
// Avatar arrive already derived; the store keeps no hidden behavior.
type NewUserInput struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Avatar       string
	Role         string
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetByID(id string) (models.User, error)
	GetByEmail(email string) (models.User, error)
	Create(input NewUserInput) (models.User, error)
	Update(id string, update models.UserUpdate) (models.User, error)
	SetPasswordHash(id, hash string) error
	SetAvatar(id, avatar string) error
	RecordLogin(id string) error
	Delete(id string) error
	Count() (int, error)
}

// UserService provides the persistent user collection.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, avatar, role,
	email_verified, created_at, updated_at, last_login`

func scanUser(row interface{ Scan(dest ...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Avatar, &u.Role, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin)
	return u, err
}

// GetByID retrieves a single user by their ID.
func (s *UserService) GetByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// GetByEmail retrieves a single user by their email, including the password
// hash. Lookup is case-insensitive: emails are stored lowercased.
func (s *UserService) GetByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)))
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// Create validates and inserts a new user, enforcing email uniqueness.
func (s *UserService) Create(input NewUserInput) (models.User, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if firstName == "" {
		return models.User{}, invalid("firstName", "first name is required")
	}
	if lastName == "" {
		return models.User{}, invalid("lastName", "last name is required")
	}
	if !emailShape.MatchString(email) {
		return models.User{}, invalid("email", "please provide a valid email")
	}
	if input.PasswordHash == "" {
		return models.User{}, invalid("password", "password is required")
	}
	role := input.Role
	if role == "" {
		role = models.RoleReader
	}
	if !models.ValidRole(role) {
		return models.User{}, invalid("role", "unknown role "+role)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: input.PasswordHash,
		Avatar:       input.Avatar,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := s.db.Exec(`INSERT INTO users
		(id, first_name, last_name, email, password_hash, avatar, role, email_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Avatar, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, invalid("email", "User already exists with this email")
		}
		return models.User{}, err
	}
	return user, nil
}

// Update applies a partial profile edit; nil fields are preserved, not
// nulled. Role is deliberately not editable through this path.
func (s *UserService) Update(id string, update models.UserUpdate) (models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return models.User{}, err
	}

	if update.FirstName != nil {
		if v := strings.TrimSpace(*update.FirstName); v != "" {
			user.FirstName = v
		} else {
			return models.User{}, invalid("firstName", "first name is required")
		}
	}
	if update.LastName != nil {
		if v := strings.TrimSpace(*update.LastName); v != "" {
			user.LastName = v
		} else {
			return models.User{}, invalid("lastName", "last name is required")
		}
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}
	user.UpdatedAt = time.Now().UTC()

	_, err = s.db.Exec(`UPDATE users SET first_name = ?, last_name = ?, avatar = ?, updated_at = ? WHERE id = ?`,
		user.FirstName, user.LastName, user.Avatar, user.UpdatedAt, id)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SetPasswordHash swaps the stored password hash.
func (s *UserService) SetPasswordHash(id, hash string) error {
	return s.exec("UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		hash, time.Now().UTC(), id)
}

// SetAvatar replaces the avatar URL.
func (s *UserService) SetAvatar(id, avatar string) error {
	return s.exec("UPDATE users SET avatar = ?, updated_at = ? WHERE id = ?",
		avatar, time.Now().UTC(), id)
}

// RecordLogin stamps the user's last successful login.
func (s *UserService) RecordLogin(id string) error {
	return s.exec("UPDATE users SET last_login = ? WHERE id = ?", time.Now().UTC(), id)
}

// Delete permanently removes a user record. Comments referencing the user
// are left in place.
func (s *UserService) Delete(id string) error {
	return s.exec("DELETE FROM users WHERE id = ?", id)
}

// Count returns the number of registered users.
func (s *UserService) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

func (s *UserService) exec(query string, args ...any) error {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "constraint")
}
