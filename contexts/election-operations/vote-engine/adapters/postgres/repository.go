package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ballotbox/contexts/election-operations/vote-engine/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/vote-engine/domain/errors"
	"ballotbox/internal/platform/db"

	"gorm.io/gorm"
)

type Repository struct {
	pg     *db.Postgres
	logger *slog.Logger
}

func NewRepository(pg *db.Postgres, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		pg:     pg,
		logger: logger,
	}
}

func (r *Repository) GetVoterByToken(ctx context.Context, token string) (entities.Voter, error) {
	var row voterModel
	err := r.pg.DB.WithContext(ctx).
		Where("token = ?", strings.TrimSpace(token)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, domainerrors.ErrVoterNotFound
		}
		return entities.Voter{}, r.logError("engine_repo_get_voter_by_token_failed", err)
	}
	return row.toEntity()
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionModel
	err := r.pg.DB.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("engine_repo_get_election_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPositions(ctx context.Context, electionID string) ([]entities.Position, error) {
	var rows []positionModel
	if err := r.pg.DB.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Find(&rows).Error; err != nil {
		return nil, r.logError("engine_repo_list_positions_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Position, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error) {
	var rows []candidateModel
	if err := r.pg.DB.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Find(&rows).Error; err != nil {
		return nil, r.logError("engine_repo_list_candidates_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// CastBallot runs the vote as one serializable transaction: re-read the
// voter, bail out if the flag is already set, write the selections and bump
// each chosen candidate's tally server-side. The transaction helper retries
// serialization conflicts; persistent conflicts surface as
// ErrTransactionConflict.
func (r *Repository) CastBallot(ctx context.Context, electionID string, studentID string, candidateIDs []string) error {
	votes, err := json.Marshal(candidateIDs)
	if err != nil {
		return err
	}

	err = r.pg.RunSerializable(ctx, func(tx *gorm.DB) error {
		var voter voterModel
		if err := tx.
			Where("election_id = ?", strings.TrimSpace(electionID)).
			Where("student_id = ?", strings.TrimSpace(studentID)).
			First(&voter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrVoterNotFound
			}
			return err
		}
		if voter.Voted {
			return domainerrors.ErrAlreadyVoted
		}

		update := tx.Model(&voterModel{}).
			Where("election_id = ?", voter.ElectionID).
			Where("student_id = ?", voter.StudentID).
			Updates(map[string]any{
				"voted": true,
				"votes": string(votes),
			})
		if update.Error != nil {
			return update.Error
		}

		for _, candidateID := range candidateIDs {
			bump := tx.Model(&candidateModel{}).
				Where("id = ?", candidateID).
				Where("election_id = ?", voter.ElectionID).
				Update("num_votes", gorm.Expr("num_votes + ?", 1))
			if bump.Error != nil {
				return bump.Error
			}
			if bump.RowsAffected == 0 {
				return domainerrors.ErrUnknownCandidate
			}
		}
		return nil
	})
	if errors.Is(err, db.ErrSerializationConflict) {
		r.logger.Warn("vote transaction exhausted retries",
			"event", "engine_repo_cast_conflict",
			"module", "election-operations/vote-engine",
			"layer", "adapter",
			"election_id", strings.TrimSpace(electionID),
			"student_id", strings.TrimSpace(studentID),
		)
		return domainerrors.ErrTransactionConflict
	}
	return err
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/vote-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("vote engine repository operation failed", fields...)
	return err
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
