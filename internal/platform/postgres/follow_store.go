package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/store"
	"github.com/google/uuid"
)

// PostgresFollowStore implements the store.FollowStore interface using a
// PostgreSQL database as the storage backend.
type PostgresFollowStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFollowStore creates a new PostgreSQL implementation of the
// FollowStore interface.
func NewPostgresFollowStore(db store.DBTX, log *slog.Logger) *PostgresFollowStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresFollowStore{
		db:     db,
		logger: log.With(slog.String("component", "follow_store")),
	}
}

// Ensure PostgresFollowStore implements store.FollowStore interface
var _ store.FollowStore = (*PostgresFollowStore)(nil)

// Create implements store.FollowStore.Create
func (s *PostgresFollowStore) Create(ctx context.Context, follow *domain.Follow) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := follow.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO follows (follower_id, following_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, follow.FollowerID, follow.FollowingID, follow.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("follow edge already exists",
				slog.String("follower_id", follow.FollowerID.String()),
				slog.String("following_id", follow.FollowingID.String()))
			return store.ErrFollowExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to create follow edge",
			slog.String("error", err.Error()),
			slog.String("follower_id", follow.FollowerID.String()))
		return err
	}

	log.Info("follow edge created",
		slog.String("follower_id", follow.FollowerID.String()),
		slog.String("following_id", follow.FollowingID.String()))
	return nil
}

// Delete implements store.FollowStore.Delete
func (s *PostgresFollowStore) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`

	result, err := s.db.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		log.Error("failed to delete follow edge",
			slog.String("error", err.Error()),
			slog.String("follower_id", followerID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrFollowNotFound
	}

	log.Info("follow edge deleted",
		slog.String("follower_id", followerID.String()),
		slog.String("following_id", followingID.String()))
	return nil
}

// Exists implements store.FollowStore.Exists
func (s *PostgresFollowStore) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, followerID, followingID).Scan(&exists); err != nil {
		log.Error("failed to check follow edge",
			slog.String("error", err.Error()),
			slog.String("follower_id", followerID.String()))
		return false, err
	}
	return exists, nil
}

// followEdgeColumns selects the edge plus the counterpart account summary.
const followEdgeColumns = `f.follower_id, f.following_id, f.created_at, u.id, u.email, pr.id, pr.name, pr.bio`

// ListFollowers implements store.FollowStore.ListFollowers
func (s *PostgresFollowStore) ListFollowers(ctx context.Context, userID uuid.UUID) ([]domain.FollowEdge, error) {
	query := `
		SELECT ` + followEdgeColumns + `
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		LEFT JOIN profiles pr ON pr.user_id = u.id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`
	return s.listEdges(ctx, query, userID)
}

// ListFollowing implements store.FollowStore.ListFollowing
func (s *PostgresFollowStore) ListFollowing(ctx context.Context, userID uuid.UUID) ([]domain.FollowEdge, error) {
	query := `
		SELECT ` + followEdgeColumns + `
		FROM follows f
		JOIN users u ON u.id = f.following_id
		LEFT JOIN profiles pr ON pr.user_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`
	return s.listEdges(ctx, query, userID)
}

func (s *PostgresFollowStore) listEdges(ctx context.Context, query string, userID uuid.UUID) ([]domain.FollowEdge, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list follow edges", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	edges := []domain.FollowEdge{}
	for rows.Next() {
		var edge domain.FollowEdge
		var profileID uuid.NullUUID
		var profileName, profileBio sql.NullString

		err := rows.Scan(
			&edge.FollowerID,
			&edge.FollowingID,
			&edge.CreatedAt,
			&edge.Account.ID,
			&edge.Account.Email,
			&profileID,
			&profileName,
			&profileBio,
		)
		if err != nil {
			log.Error("failed to scan follow edge row", slog.String("error", err.Error()))
			return nil, err
		}

		if profileID.Valid {
			edge.Account.Profile = &domain.ProfileSummary{
				ID:   profileID.UUID,
				Name: profileName.String,
				Bio:  profileBio.String,
			}
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

// ListFollowingIDs implements store.FollowStore.ListFollowingIDs
func (s *PostgresFollowStore) ListFollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT following_id FROM follows WHERE follower_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list following IDs", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
