package postgresadapter

import (
	"encoding/json"
	"time"

	"ballotbox/contexts/election-operations/voter-registry/domain/entities"
	"ballotbox/contexts/election-operations/voter-registry/ports"
	"ballotbox/internal/shared/outbox"
)

type voterModel struct {
	ElectionID     string     `gorm:"column:election_id;primaryKey"`
	StudentID      string     `gorm:"column:student_id;primaryKey"`
	Token          string     `gorm:"column:token;uniqueIndex"`
	Voted          bool       `gorm:"column:voted"`
	Votes          string     `gorm:"column:votes"`
	EmailCount     int        `gorm:"column:email_count"`
	LastNotifiedAt *time.Time `gorm:"column:last_notified_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (voterModel) TableName() string { return "voters" }

func (m voterModel) toEntity() (entities.Voter, error) {
	var votes []string
	if m.Votes != "" {
		if err := json.Unmarshal([]byte(m.Votes), &votes); err != nil {
			return entities.Voter{}, err
		}
	}
	return entities.Voter{
		ElectionID:     m.ElectionID,
		StudentID:      m.StudentID,
		Token:          m.Token,
		Voted:          m.Voted,
		Votes:          votes,
		EmailCount:     m.EmailCount,
		LastNotifiedAt: m.LastNotifiedAt,
		CreatedAt:      m.CreatedAt,
	}, nil
}

func voterModelFromEntity(v entities.Voter) (voterModel, error) {
	votes := ""
	if len(v.Votes) > 0 {
		raw, err := json.Marshal(v.Votes)
		if err != nil {
			return voterModel{}, err
		}
		votes = string(raw)
	}
	return voterModel{
		ElectionID:     v.ElectionID,
		StudentID:      v.StudentID,
		Token:          v.Token,
		Voted:          v.Voted,
		Votes:          votes,
		EmailCount:     v.EmailCount,
		LastNotifiedAt: v.LastNotifiedAt,
		CreatedAt:      v.CreatedAt.UTC(),
	}, nil
}

type mailOutboxModel struct {
	ID         string     `gorm:"column:id;primaryKey"`
	EventType  string     `gorm:"column:event_type"`
	Payload    []byte     `gorm:"column:payload"`
	Status     string     `gorm:"column:status;index"`
	RetryCount int        `gorm:"column:retry_count"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	SentAt     *time.Time `gorm:"column:sent_at"`
}

func (mailOutboxModel) TableName() string { return "mail_outbox" }

func (m mailOutboxModel) toMessage() outbox.Message {
	return outbox.Message{
		ID:         m.ID,
		EventType:  m.EventType,
		Payload:    m.Payload,
		Status:     m.Status,
		RetryCount: m.RetryCount,
		CreatedAt:  m.CreatedAt,
	}
}

type electionProjectionModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Title     string    `gorm:"column:title"`
	CanVote   bool      `gorm:"column:can_vote"`
	Finished  bool      `gorm:"column:finished"`
	StartDate time.Time `gorm:"column:start_date"`
	EndDate   time.Time `gorm:"column:end_date"`
}

func (electionProjectionModel) TableName() string { return "elections" }

func (m electionProjectionModel) toProjection() ports.ElectionProjection {
	return ports.ElectionProjection{
		ElectionID: m.ID,
		Title:      m.Title,
		CanVote:    m.CanVote,
		Finished:   m.Finished,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
	}
}
