package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pinspire/internal/model"
	"pinspire/pkg/apierror"
)

const userColumns = `id, username, email, password_hash,
	pinterest_connected, pinterest_access_token, pinterest_refresh_token,
	pinterest_token_expiry, pinterest_oauth_state, pinterest_username,
	pinterest_app_id, pinterest_app_secret, pinterest_redirect_uri,
	created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Pinterest.Connected, &u.Pinterest.AccessToken, &u.Pinterest.RefreshToken,
		&u.Pinterest.TokenExpiry, &u.Pinterest.OAuthState, &u.Pinterest.Username,
		&u.Pinterest.AppID, &u.Pinterest.AppSecret, &u.Pinterest.RedirectURI,
		&u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apierror.NotFound("user not found", id)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`,
		strings.TrimSpace(username)))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// ExistsByUsernameOrEmail checks for identity collisions, optionally ignoring
// one user id (for profile updates).
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username string, email string, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM users
			WHERE (lower(username) = lower($1) OR lower(email) = lower($2))
			  AND id <> $3
		)`,
		strings.TrimSpace(username), strings.TrimSpace(email), excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Create(ctx context.Context, u model.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, username string, email string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET username = $2, email = $3, updated_at = $4 WHERE id = $1`,
		id, username, email, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("user not found", id)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		id, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("user not found", id)
	}
	return nil
}

// SetOAuthState stores a fresh anti-forgery nonce, overwriting any prior one.
func (r *UserRepository) SetOAuthState(ctx context.Context, id string, state string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET pinterest_oauth_state = $2, updated_at = $3 WHERE id = $1`,
		id, state, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set oauth state: %w", err)
	}
	return nil
}

// SaveLinkage persists a successful OAuth callback: connected flag, token
// bundle, absolute expiry, display username, nonce cleared. One statement.
func (r *UserRepository) SaveLinkage(ctx context.Context, id string, accessToken string, refreshToken string, expiry time.Time, username string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET pinterest_connected = TRUE,
			pinterest_access_token = $2,
			pinterest_refresh_token = $3,
			pinterest_token_expiry = $4,
			pinterest_username = $5,
			pinterest_oauth_state = '',
			updated_at = $6
		 WHERE id = $1`,
		id, accessToken, refreshToken, expiry, username, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save pinterest linkage: %w", err)
	}
	return nil
}

// UpdateTokens replaces the stored bundle after a refresh. Last write wins.
func (r *UserRepository) UpdateTokens(ctx context.Context, id string, accessToken string, refreshToken string, expiry time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET pinterest_access_token = $2,
			pinterest_refresh_token = $3,
			pinterest_token_expiry = $4,
			updated_at = $5
		 WHERE id = $1`,
		id, accessToken, refreshToken, expiry, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update pinterest tokens: %w", err)
	}
	return nil
}

// ClearLinkage disconnects the Pinterest account. Safe when already cleared.
func (r *UserRepository) ClearLinkage(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET pinterest_connected = FALSE,
			pinterest_access_token = '',
			pinterest_refresh_token = '',
			pinterest_token_expiry = NULL,
			pinterest_username = '',
			pinterest_oauth_state = '',
			updated_at = $2
		 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("clear pinterest linkage: %w", err)
	}
	return nil
}

func (r *UserRepository) SaveAppCredentials(ctx context.Context, id string, appID string, appSecret string, redirectURI string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET pinterest_app_id = $2,
			pinterest_app_secret = $3,
			pinterest_redirect_uri = $4,
			updated_at = $5
		 WHERE id = $1`,
		id, appID, appSecret, redirectURI, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save app credentials: %w", err)
	}
	return nil
}

func (r *UserRepository) ClearAppCredentials(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET pinterest_app_id = '',
			pinterest_app_secret = '',
			pinterest_redirect_uri = '',
			updated_at = $2
		 WHERE id = $1`,
		id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("clear app credentials: %w", err)
	}
	return nil
}
