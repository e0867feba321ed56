package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"seedble/internal/database"
	"seedble/internal/domain/review"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrReviewNotFound = errors.New("peer review not found")

type PeerReview struct {
	ID          uuid.UUID
	ReviewerID  uuid.UUID
	RevieweeID  uuid.UUID
	ProjectID   uuid.UUID
	Status      review.Status
	Scores      *review.Scores
	Overall     *float64
	Feedback    string
	FlagReason  string
	CreatedAt   time.Time
	CompletedAt *time.Time
	ValidatedAt *time.Time
}

type PeerReviewRepository interface {
	Create(ctx context.Context, reviewerID, revieweeID, projectID uuid.UUID) (*PeerReview, error)
	FindByID(ctx context.Context, id uuid.UUID) (*PeerReview, error)
	SetStatus(ctx context.Context, id uuid.UUID, from, to review.Status) error
	CompleteTx(ctx context.Context, id uuid.UUID, scores review.Scores, feedback string, ratings []review.SkillRating, flagged bool, flagReason string, completedAt time.Time) error
	Validate(ctx context.Context, id uuid.UUID, validatedAt time.Time) error
	Flag(ctx context.Context, id uuid.UUID, reason string) error
	ListByReviewerID(ctx context.Context, reviewerID uuid.UUID) ([]PeerReview, error)
	ListByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]PeerReview, error)
	ListCompletedScoresByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]float64, error)
	CountPendingByReviewerID(ctx context.Context, reviewerID uuid.UUID) (int, error)
}

type PostgresPeerReviewRepository struct {
	db database.DB
}

func NewPostgresPeerReviewRepository(db database.DB) *PostgresPeerReviewRepository {
	return &PostgresPeerReviewRepository{db: db}
}

func (r *PostgresPeerReviewRepository) Create(ctx context.Context, reviewerID, revieweeID, projectID uuid.UUID) (*PeerReview, error) {
	pr := &PeerReview{
		ID:         uuid.New(),
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		ProjectID:  projectID,
		Status:     review.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO peer_reviews (id, reviewer_id, reviewee_id, project_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		pr.ID, pr.ReviewerID, pr.RevieweeID, pr.ProjectID, pr.Status, pr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return pr, nil
}

const peerReviewSelect = `
SELECT id, reviewer_id, reviewee_id, project_id, status,
       technical_score, soft_score, process_score, innovation_score, overall_score,
       COALESCE(feedback, ''), COALESCE(flag_reason, ''),
       created_at, completed_at, validated_at
FROM peer_reviews`

func (r *PostgresPeerReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*PeerReview, error) {
	row := r.db.QueryRow(ctx, peerReviewSelect+` WHERE id = $1`, id)
	pr, err := scanPeerReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return pr, nil
}

// SetStatus moves a review from one status to another; the WHERE clause on
// the current status makes concurrent transitions lose cleanly.
func (r *PostgresPeerReviewRepository) SetStatus(ctx context.Context, id uuid.UUID, from, to review.Status) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE peer_reviews SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// CompleteTx persists the category scores plus every individual rating in a
// single transaction so a failed detail insert never leaves a half-completed
// review behind.
func (r *PostgresPeerReviewRepository) CompleteTx(ctx context.Context, id uuid.UUID, scores review.Scores, feedback string, ratings []review.SkillRating, flagged bool, flagReason string, completedAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	status := review.StatusCompleted
	if flagged {
		status = review.StatusFlagged
	}

	affected, err := tx.Exec(ctx,
		`UPDATE peer_reviews
		 SET status = $2, technical_score = $3, soft_score = $4, process_score = $5,
		     innovation_score = $6, overall_score = $7, feedback = $8,
		     flag_reason = NULLIF($9, ''), completed_at = $10, updated_at = now()
		 WHERE id = $1 AND status IN ('pending', 'in_progress')`,
		id, status, scores.Technical, scores.Soft, scores.Process, scores.Innovation,
		scores.Overall(), feedback, flagReason, completedAt,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}

	for _, rating := range ratings {
		_, err := tx.Exec(ctx,
			`INSERT INTO review_details (id, review_id, skill_id, category, score, feedback)
			 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`,
			uuid.New(), id, rating.SkillID, rating.Category, rating.Score, rating.Feedback,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresPeerReviewRepository) Validate(ctx context.Context, id uuid.UUID, validatedAt time.Time) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE peer_reviews SET status = 'validated', validated_at = $2, updated_at = now()
		 WHERE id = $1 AND status = 'completed'`,
		id, validatedAt,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *PostgresPeerReviewRepository) Flag(ctx context.Context, id uuid.UUID, reason string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE peer_reviews SET status = 'flagged', flag_reason = $2, updated_at = now()
		 WHERE id = $1 AND status = 'completed'`,
		id, reason,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *PostgresPeerReviewRepository) ListByReviewerID(ctx context.Context, reviewerID uuid.UUID) ([]PeerReview, error) {
	return r.list(ctx, peerReviewSelect+` WHERE reviewer_id = $1 ORDER BY created_at DESC`, reviewerID)
}

func (r *PostgresPeerReviewRepository) ListByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]PeerReview, error) {
	return r.list(ctx, peerReviewSelect+` WHERE reviewee_id = $1 ORDER BY created_at DESC`, revieweeID)
}

func (r *PostgresPeerReviewRepository) ListCompletedScoresByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]float64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT overall_score FROM peer_reviews
		 WHERE reviewee_id = $1 AND status IN ('completed', 'validated') AND overall_score IS NOT NULL
		 ORDER BY completed_at DESC`,
		revieweeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]float64, 0)
	for rows.Next() {
		var s float64
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPeerReviewRepository) CountPendingByReviewerID(ctx context.Context, reviewerID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM peer_reviews
		 WHERE reviewer_id = $1 AND status IN ('pending', 'in_progress')`,
		reviewerID,
	)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresPeerReviewRepository) list(ctx context.Context, query string, arg any) ([]PeerReview, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PeerReview, 0)
	for rows.Next() {
		pr, err := scanPeerReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPeerReview(row database.Row) (*PeerReview, error) {
	var pr PeerReview
	var technical, soft, process, innovation, overall sql.NullFloat64
	var completedAt, validatedAt sql.NullTime

	err := row.Scan(&pr.ID, &pr.ReviewerID, &pr.RevieweeID, &pr.ProjectID, &pr.Status,
		&technical, &soft, &process, &innovation, &overall,
		&pr.Feedback, &pr.FlagReason, &pr.CreatedAt, &completedAt, &validatedAt)
	if err != nil {
		return nil, err
	}

	if technical.Valid || soft.Valid || process.Valid || innovation.Valid {
		pr.Scores = &review.Scores{
			Technical:  technical.Float64,
			Soft:       soft.Float64,
			Process:    process.Float64,
			Innovation: innovation.Float64,
		}
	}
	if overall.Valid {
		v := overall.Float64
		pr.Overall = &v
	}
	if completedAt.Valid {
		t := completedAt.Time
		pr.CompletedAt = &t
	}
	if validatedAt.Valid {
		t := validatedAt.Time
		pr.ValidatedAt = &t
	}
	return &pr, nil
}
