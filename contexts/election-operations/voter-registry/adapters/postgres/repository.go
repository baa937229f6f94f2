package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ballotbox/contexts/election-operations/voter-registry/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/voter-registry/domain/errors"
	"ballotbox/contexts/election-operations/voter-registry/ports"
	"ballotbox/internal/shared/outbox"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	mailStatusPending = "pending"
	mailStatusSent    = "sent"
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

// CreateVoterIfAbsent relies on the composite primary key: a concurrent
// insert for the same (election, student) pair is a no-op and the winning
// record is re-read afterwards.
func (r *Repository) CreateVoterIfAbsent(ctx context.Context, voter entities.Voter) (entities.Voter, bool, error) {
	row, err := voterModelFromEntity(voter)
	if err != nil {
		return entities.Voter{}, false, err
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "election_id"}, {Name: "student_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return entities.Voter{}, false, r.logError("registry_repo_create_voter_failed", create.Error,
			"election_id", strings.TrimSpace(voter.ElectionID),
			"student_id", strings.TrimSpace(voter.StudentID),
		)
	}
	created := create.RowsAffected > 0

	stored, err := r.GetVoter(ctx, voter.ElectionID, voter.StudentID)
	if err != nil {
		return entities.Voter{}, false, err
	}
	return stored, created, nil
}

func (r *Repository) GetVoter(ctx context.Context, electionID string, studentID string) (entities.Voter, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Where("student_id = ?", strings.TrimSpace(studentID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, domainerrors.ErrVoterNotFound
		}
		return entities.Voter{}, r.logError("registry_repo_get_voter_failed", err,
			"election_id", strings.TrimSpace(electionID),
			"student_id", strings.TrimSpace(studentID),
		)
	}
	return row.toEntity()
}

func (r *Repository) GetVoterByToken(ctx context.Context, token string) (entities.Voter, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("token = ?", strings.TrimSpace(token)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, domainerrors.ErrVoterNotFound
		}
		return entities.Voter{}, r.logError("registry_repo_get_voter_by_token_failed", err)
	}
	return row.toEntity()
}

// RecordEmailSent increments the counter server-side so two concurrent sends
// never collapse into one, then re-reads the row for the strong-consistency
// contract.
func (r *Repository) RecordEmailSent(ctx context.Context, electionID string, studentID string, sentAt time.Time) (entities.Voter, error) {
	update := r.db.WithContext(ctx).Model(&voterModel{}).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Where("student_id = ?", strings.TrimSpace(studentID)).
		Updates(map[string]any{
			"email_count":      gorm.Expr("email_count + ?", 1),
			"last_notified_at": sentAt.UTC(),
		})
	if update.Error != nil {
		return entities.Voter{}, r.logError("registry_repo_record_email_sent_failed", update.Error,
			"election_id", strings.TrimSpace(electionID),
			"student_id", strings.TrimSpace(studentID),
		)
	}
	if update.RowsAffected == 0 {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return r.GetVoter(ctx, electionID, studentID)
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (ports.ElectionProjection, error) {
	var row electionProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ElectionProjection{}, domainerrors.ErrElectionNotFound
		}
		return ports.ElectionProjection{}, r.logError("registry_repo_get_election_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return row.toProjection(), nil
}

func (r *Repository) AppendMail(ctx context.Context, email ports.OutboundEmail) error {
	if strings.TrimSpace(email.MailID) == "" || strings.TrimSpace(email.To) == "" {
		return domainerrors.ErrInvalidMail
	}
	payload, err := json.Marshal(email)
	if err != nil {
		return err
	}
	row := mailOutboxModel{
		ID:        strings.TrimSpace(email.MailID),
		EventType: "voter.email.queued",
		Payload:   payload,
		Status:    mailStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("registry_repo_append_mail_failed", create.Error,
			"mail_id", row.ID,
		)
	}
	return nil
}

func (r *Repository) ListPendingMail(ctx context.Context, limit int) ([]outbox.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []mailOutboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", mailStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("registry_repo_list_pending_mail_failed", err)
	}
	items := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toMessage())
	}
	return items, nil
}

func (r *Repository) MarkMailSent(ctx context.Context, mailID string, sentAt time.Time) error {
	sentAtUTC := sentAt.UTC()
	update := r.db.WithContext(ctx).Model(&mailOutboxModel{}).
		Where("id = ?", strings.TrimSpace(mailID)).
		Updates(map[string]any{
			"status":  mailStatusSent,
			"sent_at": sentAtUTC,
		})
	if update.Error != nil {
		return r.logError("registry_repo_mark_mail_sent_failed", update.Error,
			"mail_id", strings.TrimSpace(mailID),
		)
	}
	if update.RowsAffected == 0 {
		return domainerrors.ErrMailNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/voter-registry",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("voter registry repository operation failed", fields...)
	return err
}
