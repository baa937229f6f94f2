package postgresadapter

import (
	"time"

	"ballotbox/contexts/election-operations/election-admin/domain/entities"
)

type electionModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	StartDate   time.Time `gorm:"column:start_date"`
	EndDate     time.Time `gorm:"column:end_date"`
	CanVote     bool      `gorm:"column:can_vote"`
	Finished    bool      `gorm:"column:finished"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (electionModel) TableName() string { return "elections" }

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ElectionID:  m.ID,
		Title:       m.Title,
		Description: m.Description,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		CanVote:     m.CanVote,
		Finished:    m.Finished,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func electionModelFromEntity(e entities.Election) electionModel {
	return electionModel{
		ID:          e.ElectionID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate.UTC(),
		EndDate:     e.EndDate.UTC(),
		CanVote:     e.CanVote,
		Finished:    e.Finished,
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

type positionModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	ElectionID     string    `gorm:"column:election_id;index"`
	Name           string    `gorm:"column:name"`
	VotesPerPerson int       `gorm:"column:votes_per_person"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (positionModel) TableName() string { return "positions" }

func (m positionModel) toEntity() entities.Position {
	return entities.Position{
		PositionID:     m.ID,
		ElectionID:     m.ElectionID,
		Name:           m.Name,
		VotesPerPerson: m.VotesPerPerson,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func positionModelFromEntity(p entities.Position) positionModel {
	return positionModel{
		ID:             p.PositionID,
		ElectionID:     p.ElectionID,
		Name:           p.Name,
		VotesPerPerson: p.VotesPerPerson,
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}
}

type candidateModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	PositionID  string    `gorm:"column:position_id;index"`
	ElectionID  string    `gorm:"column:election_id;index"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	AvatarURL   string    `gorm:"column:avatar_url"`
	NumVotes    int       `gorm:"column:num_votes"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (candidateModel) TableName() string { return "candidates" }

func (m candidateModel) toEntity() entities.Candidate {
	return entities.Candidate{
		CandidateID: m.ID,
		PositionID:  m.PositionID,
		ElectionID:  m.ElectionID,
		Name:        m.Name,
		Description: m.Description,
		AvatarURL:   m.AvatarURL,
		NumVotes:    m.NumVotes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func candidateModelFromEntity(c entities.Candidate) candidateModel {
	return candidateModel{
		ID:          c.CandidateID,
		PositionID:  c.PositionID,
		ElectionID:  c.ElectionID,
		Name:        c.Name,
		Description: c.Description,
		AvatarURL:   c.AvatarURL,
		NumVotes:    c.NumVotes,
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
}
