package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"ballotbox/contexts/election-operations/election-admin/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/election-admin/domain/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"title":       row.Title,
			"description": row.Description,
			"start_date":  row.StartDate,
			"end_date":    row.EndDate,
			"can_vote":    row.CanVote,
			"finished":    row.Finished,
			"updated_at":  row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("admin_repo_save_election_failed", create.Error,
			"election_id", strings.TrimSpace(election.ElectionID),
		)
	}
	return nil
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("admin_repo_get_election_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListElections(ctx context.Context) ([]entities.Election, error) {
	var rows []electionModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("admin_repo_list_elections_failed", err)
	}
	items := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListUnfinishedElections(ctx context.Context) ([]entities.Election, error) {
	var rows []electionModel
	if err := r.db.WithContext(ctx).
		Where("finished = ?", false).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("admin_repo_list_unfinished_elections_failed", err)
	}
	items := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SavePosition(ctx context.Context, position entities.Position) error {
	row := positionModelFromEntity(position)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":             row.Name,
			"votes_per_person": row.VotesPerPerson,
			"updated_at":       row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("admin_repo_save_position_failed", create.Error,
			"position_id", strings.TrimSpace(position.PositionID),
			"election_id", strings.TrimSpace(position.ElectionID),
		)
	}
	return nil
}

func (r *Repository) GetPosition(ctx context.Context, positionID string) (entities.Position, error) {
	var row positionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(positionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Position{}, domainerrors.ErrPositionNotFound
		}
		return entities.Position{}, r.logError("admin_repo_get_position_failed", err,
			"position_id", strings.TrimSpace(positionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPositionsByElection(ctx context.Context, electionID string) ([]entities.Position, error) {
	var rows []positionModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("admin_repo_list_positions_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Position, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SaveCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := candidateModelFromEntity(candidate)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":        row.Name,
			"description": row.Description,
			"avatar_url":  row.AvatarURL,
			"updated_at":  row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("admin_repo_save_candidate_failed", create.Error,
			"candidate_id", strings.TrimSpace(candidate.CandidateID),
			"position_id", strings.TrimSpace(candidate.PositionID),
		)
	}
	return nil
}

func (r *Repository) ListCandidatesByPosition(ctx context.Context, positionID string) ([]entities.Candidate, error) {
	var rows []candidateModel
	if err := r.db.WithContext(ctx).
		Where("position_id = ?", strings.TrimSpace(positionID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("admin_repo_list_candidates_failed", err,
			"position_id", strings.TrimSpace(positionID),
		)
	}
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/election-admin",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("election admin repository operation failed", fields...)
	return err
}
