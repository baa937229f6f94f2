package postgresadapter

import (
	"encoding/json"
	"time"

	"ballotbox/contexts/election-operations/vote-engine/domain/entities"
)

type voterModel struct {
	ElectionID string `gorm:"column:election_id;primaryKey"`
	StudentID  string `gorm:"column:student_id;primaryKey"`
	Token      string `gorm:"column:token"`
	Voted      bool   `gorm:"column:voted"`
	Votes      string `gorm:"column:votes"`
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
		ElectionID: m.ElectionID,
		StudentID:  m.StudentID,
		Token:      m.Token,
		Voted:      m.Voted,
		Votes:      votes,
	}, nil
}

type electionModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	CanVote     bool      `gorm:"column:can_vote"`
	Finished    bool      `gorm:"column:finished"`
	StartDate   time.Time `gorm:"column:start_date"`
	EndDate     time.Time `gorm:"column:end_date"`
}

func (electionModel) TableName() string { return "elections" }

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ElectionID:  m.ID,
		Title:       m.Title,
		Description: m.Description,
		CanVote:     m.CanVote,
		Finished:    m.Finished,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
	}
}

type positionModel struct {
	ID             string `gorm:"column:id;primaryKey"`
	ElectionID     string `gorm:"column:election_id;index"`
	Name           string `gorm:"column:name"`
	VotesPerPerson int    `gorm:"column:votes_per_person"`
}

func (positionModel) TableName() string { return "positions" }

func (m positionModel) toEntity() entities.Position {
	return entities.Position{
		PositionID:     m.ID,
		ElectionID:     m.ElectionID,
		Name:           m.Name,
		VotesPerPerson: m.VotesPerPerson,
	}
}

type candidateModel struct {
	ID          string `gorm:"column:id;primaryKey"`
	PositionID  string `gorm:"column:position_id;index"`
	ElectionID  string `gorm:"column:election_id;index"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description"`
	AvatarURL   string `gorm:"column:avatar_url"`
	NumVotes    int    `gorm:"column:num_votes"`
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
	}
}
