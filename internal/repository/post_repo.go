package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pinspire/internal/model"
)

const postColumns = `id, user_id, caption, image_url, image_data, boards,
	scheduled_time, status, ai_generated_caption, ai_generated_image,
	pinterest_pin_ids, published_boards, created_at, updated_at, published_at`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row pgx.Row) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.UserID, &p.Caption, &p.ImageURL, &p.ImageData, &p.Boards,
		&p.ScheduledTime, &p.Status, &p.AIGeneratedCaption, &p.AIGeneratedImage,
		&p.PinterestPinIDs, &p.PublishedBoards, &p.CreatedAt, &p.UpdatedAt, &p.PublishedAt)
	return p, err
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]model.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT 100`, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// FindByID scopes the lookup to the owning user; a post belonging to someone
// else is indistinguishable from a missing one.
func (r *PostRepository) FindByID(ctx context.Context, id string, userID string) (model.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Post{}, model.ErrPostNotFound
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("find post: %w", err)
	}
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, p model.Post) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts (id, user_id, caption, image_url, image_data, boards,
			scheduled_time, status, ai_generated_caption, ai_generated_image,
			created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.UserID, p.Caption, p.ImageURL, p.ImageData, p.Boards,
		p.ScheduledTime, p.Status, p.AIGeneratedCaption, p.AIGeneratedImage,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *PostRepository) Update(ctx context.Context, p model.Post) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET caption = $3, image_url = $4, boards = $5,
			scheduled_time = $6, status = $7, updated_at = $8
		 WHERE id = $1 AND user_id = $2`,
		p.ID, p.UserID, p.Caption, p.ImageURL, p.Boards,
		p.ScheduledTime, p.Status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM posts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// MarkPublished stamps the forward transition to published with the pin ids
// and the board ids actually targeted.
func (r *PostRepository) MarkPublished(ctx context.Context, id string, userID string, pinIDs []string, boardIDs []string, publishedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET status = $3, pinterest_pin_ids = $4, published_boards = $5,
			published_at = $6, updated_at = $7
		 WHERE id = $1 AND user_id = $2`,
		id, userID, model.PostStatusPublished, pinIDs, boardIDs, publishedAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark post published: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}
