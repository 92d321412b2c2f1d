package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	db "foodgram/internal/user/db"
	"foodgram/internal/media"
	"foodgram/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicate         = errors.New("a user with that email or username already exists")
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrSamePassword      = errors.New("new password must differ from the current one")
	ErrTelegramTaken     = errors.New("telegram account is already linked to another user")
	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this user")
	ErrNotSubscribed     = errors.New("not subscribed to this user")
)

// User is a registered account.
type User struct {
	ID         int64
	Email      string
	Username   string
	FirstName  string
	LastName   string
	Avatar     string // path relative to the media root, "" when unset
	TelegramID int64  // 0 when no Telegram account is linked
	CreatedAt  time.Time

	passwordHash string
}

// CreateParams holds the fields accepted on sign-up.
type CreateParams struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

// Repository is a database-backed repository for users and subscriptions.
type Repository struct {
	queries *db.Queries
	media   *media.Store
}

// NewRepository creates a new Repository. Avatars are written to store.
func NewRepository(d *sql.DB, store *media.Store) *Repository {
	return &Repository{
		queries: db.New(d),
		media:   store,
	}
}

// Create validates params and registers a new user.
func (r *Repository) Create(ctx context.Context, p CreateParams) (*User, error) {
	p.Email = strings.TrimSpace(p.Email)
	p.Username = strings.TrimSpace(p.Username)

	if err := validation.Struct(&p); err != nil {
		return nil, err
	}
	if err := checkPasswordStrength(p.Password); err != nil {
		return nil, validation.Errors{"password": {err.Error()}}
	}

	n, err := r.queries.CountUsersByEmailOrUsername(ctx, db.CountUsersByEmailOrUsernameParams{
		Email:    p.Email,
		Username: p.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if n > 0 {
		return nil, ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := r.queries.InsertUser(ctx, db.InsertUserParams{
		Email:        p.Email,
		Username:     p.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return r.Get(ctx, id)
}

// Get retrieves a user by ID.
func (r *Repository) Get(ctx context.Context, id int64) (*User, error) {
	row, err := r.queries.GetUser(ctx, id)
	return fromRowErr(row, err)
}

// GetByEmail retrieves a user by email address.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row, err := r.queries.GetUserByEmail(ctx, strings.TrimSpace(email))
	return fromRowErr(row, err)
}

// GetByTelegramID retrieves the user linked to a Telegram account.
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	row, err := r.queries.GetUserByTelegramID(ctx, sql.NullInt64{Int64: telegramID, Valid: true})
	return fromRowErr(row, err)
}

// List returns one page of users ordered by username and the total count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]User, int, error) {
	rows, err := r.queries.ListUsers(ctx, db.ListUsersParams{Limit: int64(limit), Offset: int64(offset)})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	total, err := r.queries.CountUsers(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	users := make([]User, 0, len(rows))
	for _, row := range rows {
		users = append(users, fromRow(row))
	}
	return users, int(total), nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

// SetPassword replaces the password after verifying the current one.
func (r *Repository) SetPassword(ctx context.Context, id int64, current, next string) error {
	u, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if !u.CheckPassword(current) {
		return ErrWrongPassword
	}
	if current == next {
		return ErrSamePassword
	}
	if len(next) < 8 {
		return validation.Errors{"new_password": {"This password is too short. It must contain at least 8 characters."}}
	}
	if err := checkPasswordStrength(next); err != nil {
		return validation.Errors{"new_password": {err.Error()}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := r.queries.UpdatePasswordHash(ctx, db.UpdatePasswordHashParams{PasswordHash: string(hash), ID: id}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// SetAvatar stores a base64 data URI image as the user's avatar and
// returns its media path. A previous avatar file is removed.
func (r *Repository) SetAvatar(ctx context.Context, id int64, dataURI string) (string, error) {
	u, err := r.Get(ctx, id)
	if err != nil {
		return "", err
	}

	rel, err := r.media.SaveDataURI("users", dataURI)
	if err != nil {
		return "", err
	}
	if err := r.queries.UpdateAvatar(ctx, db.UpdateAvatarParams{Avatar: rel, ID: id}); err != nil {
		r.media.Remove(rel)
		return "", fmt.Errorf("failed to update avatar: %w", err)
	}
	if err := r.media.Remove(u.Avatar); err != nil {
		return rel, fmt.Errorf("failed to remove previous avatar: %w", err)
	}
	return rel, nil
}

// DeleteAvatar clears the avatar and removes its file.
func (r *Repository) DeleteAvatar(ctx context.Context, id int64) error {
	u, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.Avatar == "" {
		return nil
	}
	if err := r.queries.UpdateAvatar(ctx, db.UpdateAvatarParams{Avatar: "", ID: id}); err != nil {
		return fmt.Errorf("failed to clear avatar: %w", err)
	}
	return r.media.Remove(u.Avatar)
}

// LinkTelegram associates a Telegram account with the user. A zero
// telegramID unlinks it.
func (r *Repository) LinkTelegram(ctx context.Context, id, telegramID int64) error {
	if telegramID != 0 {
		other, err := r.GetByTelegramID(ctx, telegramID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if other != nil && other.ID != id {
			return ErrTelegramTaken
		}
	}

	if err := r.queries.UpdateTelegramID(ctx, db.UpdateTelegramIDParams{
		TelegramID: sql.NullInt64{Int64: telegramID, Valid: telegramID != 0},
		ID:         id,
	}); err != nil {
		return fmt.Errorf("failed to link telegram account: %w", err)
	}
	return nil
}

func checkPasswordStrength(password string) error {
	if strings.Trim(password, "0123456789") == "" {
		return errors.New("This password is entirely numeric.")
	}
	return nil
}

func fromRowErr(row db.User, err error) (*User, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u := fromRow(row)
	return &u, nil
}

func fromRow(row db.User) User {
	return User{
		ID:           row.ID,
		Email:        row.Email,
		Username:     row.Username,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Avatar:       row.Avatar,
		TelegramID:   row.TelegramID.Int64,
		CreatedAt:    row.CreatedAt,
		passwordHash: row.PasswordHash,
	}
}
