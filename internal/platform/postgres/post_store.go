package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/store"
	"github.com/google/uuid"
)

// PostgresPostStore implements the store.PostStore interface using a
// PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the
// PostStore interface.
func NewPostgresPostStore(db store.DBTX, log *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: log.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// Create implements store.PostStore.Create
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO posts (id, author_id, content, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		post.ID,
		post.AuthorID,
		post.Content,
		post.CreatedAt,
		post.UpdatedAt,
		post.DeletedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	log.Info("post created",
		slog.String("post_id", post.ID.String()),
		slog.String("author_id", post.AuthorID.String()))
	return nil
}

const postColumns = `p.id, p.author_id, p.content, p.created_at, p.updated_at, p.deleted_at, u.email, pr.id, pr.name, pr.bio`

// postBaseQuery joins the author account and its optional profile so every
// read path carries the author summary.
const postBaseQuery = `
	SELECT ` + postColumns + `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN profiles pr ON pr.user_id = u.id
`

func scanPostWithAuthor(row rowScanner) (*domain.PostWithAuthor, error) {
	var post domain.PostWithAuthor
	var deletedAt sql.NullTime
	var profileID uuid.NullUUID
	var profileName, profileBio sql.NullString

	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
		&deletedAt,
		&post.Author.Email,
		&profileID,
		&profileName,
		&profileBio,
	)
	if err != nil {
		return nil, err
	}

	post.DeletedAt = nullTimePtr(deletedAt)
	post.Author.ID = post.AuthorID
	if profileID.Valid {
		post.Author.Profile = &domain.ProfileSummary{
			ID:   profileID.UUID,
			Name: profileName.String,
			Bio:  profileBio.String,
		}
	}
	return &post, nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostgresPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PostWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := postBaseQuery + `WHERE p.id = $1 AND p.deleted_at IS NULL`

	post, err := scanPostWithAuthor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return nil, err
	}
	return post, nil
}

// GetAny implements store.PostStore.GetAny
func (s *PostgresPostStore) GetAny(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, author_id, content, created_at, updated_at, deleted_at
		FROM posts
		WHERE id = $1
	`

	var post domain.Post
	var deletedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return nil, err
	}

	post.DeletedAt = nullTimePtr(deletedAt)
	return &post, nil
}

// ListByAuthor implements store.PostStore.ListByAuthor
func (s *PostgresPostStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.PostWithAuthor, error) {
	query := postBaseQuery + `
		WHERE p.author_id = $1 AND p.deleted_at IS NULL
		ORDER BY p.created_at DESC
	`
	return s.listPosts(ctx, query, authorID)
}

// ListByAuthors implements store.PostStore.ListByAuthors
func (s *PostgresPostStore) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]domain.PostWithAuthor, error) {
	if len(authorIDs) == 0 {
		return []domain.PostWithAuthor{}, nil
	}

	placeholders := make([]string, len(authorIDs))
	args := make([]any, len(authorIDs))
	for i, id := range authorIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := postBaseQuery + `
		WHERE p.author_id IN (` + strings.Join(placeholders, ", ") + `) AND p.deleted_at IS NULL
		ORDER BY p.created_at DESC
	`
	return s.listPosts(ctx, query, args...)
}

// ListAll implements store.PostStore.ListAll
func (s *PostgresPostStore) ListAll(ctx context.Context) ([]domain.PostWithAuthor, error) {
	query := postBaseQuery + `ORDER BY p.created_at DESC`
	return s.listPosts(ctx, query)
}

func (s *PostgresPostStore) listPosts(ctx context.Context, query string, args ...any) ([]domain.PostWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	posts := []domain.PostWithAuthor{}
	for rows.Next() {
		post, err := scanPostWithAuthor(rows)
		if err != nil {
			log.Error("failed to scan post row", slog.String("error", err.Error()))
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

// UpdateContent implements store.PostStore.UpdateContent
func (s *PostgresPostStore) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if content == "" {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyPostContent)
	}
	if len(content) > domain.MaxPostContentLength {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrPostContentTooLong)
	}

	query := `
		UPDATE posts
		SET content = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, content, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrPostNotFound
	}

	log.Info("post updated", slog.String("post_id", id.String()))
	return nil
}

// SoftDelete implements store.PostStore.SoftDelete
// An already-deleted post is re-stamped rather than rejected.
func (s *PostgresPostStore) SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE posts
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, deletedAt, id)
	if err != nil {
		log.Error("failed to soft-delete post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrPostNotFound
	}

	log.Info("post soft-deleted", slog.String("post_id", id.String()))
	return nil
}
