package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "ballotbox/contexts/election-operations/election-admin/application"
	"ballotbox/contexts/election-operations/election-admin/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/election-admin/domain/errors"
	"ballotbox/contexts/election-operations/election-admin/ports"
)

// CreateElectionCommand is the write-model input for election creation.
type CreateElectionCommand struct {
	ActorEmail  string
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	CanVote     bool
}

type UpdateElectionCommand struct {
	ActorEmail  string
	ElectionID  string
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	CanVote     bool
}

type CreatePositionCommand struct {
	ActorEmail     string
	ElectionID     string
	Name           string
	VotesPerPerson int
}

type CreateCandidateCommand struct {
	ActorEmail  string
	PositionID  string
	Name        string
	Description string
	AvatarURL   string
}

// AdminUseCase owns election/position/candidate administration. The admin
// allowlist is injected at construction and read-only for the process
// lifetime.
type AdminUseCase struct {
	Elections   ports.ElectionRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	AdminEmails []string
	Logger      *slog.Logger
}

func (uc AdminUseCase) CreateElection(ctx context.Context, cmd CreateElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.requireAdmin(cmd.ActorEmail); err != nil {
		return entities.Election{}, err
	}
	if strings.TrimSpace(cmd.Title) == "" || !cmd.EndDate.After(cmd.StartDate) {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}

	electionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	now := uc.now()
	election := entities.Election{
		ElectionID:  electionID,
		Title:       strings.TrimSpace(cmd.Title),
		Description: strings.TrimSpace(cmd.Description),
		StartDate:   cmd.StartDate.UTC(),
		EndDate:     cmd.EndDate.UTC(),
		CanVote:     cmd.CanVote,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.Elections.SaveElection(ctx, election); err != nil {
		return entities.Election{}, err
	}
	logger.Info("election created",
		"event", "admin_election_created",
		"module", "election-operations/election-admin",
		"layer", "application",
		"election_id", election.ElectionID,
		"title", election.Title,
	)
	return election, nil
}

func (uc AdminUseCase) UpdateElection(ctx context.Context, cmd UpdateElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.requireAdmin(cmd.ActorEmail); err != nil {
		return entities.Election{}, err
	}
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return entities.Election{}, err
	}
	if strings.TrimSpace(cmd.Title) == "" || !cmd.EndDate.After(cmd.StartDate) {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}

	election.Title = strings.TrimSpace(cmd.Title)
	election.Description = strings.TrimSpace(cmd.Description)
	election.StartDate = cmd.StartDate.UTC()
	election.EndDate = cmd.EndDate.UTC()
	election.CanVote = cmd.CanVote
	election.UpdatedAt = uc.now()
	if err := uc.Elections.SaveElection(ctx, election); err != nil {
		return entities.Election{}, err
	}
	logger.Info("election updated",
		"event", "admin_election_updated",
		"module", "election-operations/election-admin",
		"layer", "application",
		"election_id", election.ElectionID,
	)
	return election, nil
}

func (uc AdminUseCase) CreatePosition(ctx context.Context, cmd CreatePositionCommand) (entities.Position, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.requireAdmin(cmd.ActorEmail); err != nil {
		return entities.Position{}, err
	}
	if strings.TrimSpace(cmd.Name) == "" || cmd.VotesPerPerson < 1 {
		return entities.Position{}, domainerrors.ErrInvalidPositionInput
	}
	if _, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID)); err != nil {
		return entities.Position{}, err
	}

	positionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Position{}, err
	}
	now := uc.now()
	position := entities.Position{
		PositionID:     positionID,
		ElectionID:     strings.TrimSpace(cmd.ElectionID),
		Name:           strings.TrimSpace(cmd.Name),
		VotesPerPerson: cmd.VotesPerPerson,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.Elections.SavePosition(ctx, position); err != nil {
		return entities.Position{}, err
	}
	logger.Info("position created",
		"event", "admin_position_created",
		"module", "election-operations/election-admin",
		"layer", "application",
		"election_id", position.ElectionID,
		"position_id", position.PositionID,
		"votes_per_person", position.VotesPerPerson,
	)
	return position, nil
}

func (uc AdminUseCase) CreateCandidate(ctx context.Context, cmd CreateCandidateCommand) (entities.Candidate, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.requireAdmin(cmd.ActorEmail); err != nil {
		return entities.Candidate{}, err
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return entities.Candidate{}, domainerrors.ErrInvalidCandidateInput
	}
	position, err := uc.Elections.GetPosition(ctx, strings.TrimSpace(cmd.PositionID))
	if err != nil {
		return entities.Candidate{}, err
	}

	candidateID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Candidate{}, err
	}
	now := uc.now()
	candidate := entities.Candidate{
		CandidateID: candidateID,
		PositionID:  position.PositionID,
		ElectionID:  position.ElectionID,
		Name:        strings.TrimSpace(cmd.Name),
		Description: strings.TrimSpace(cmd.Description),
		AvatarURL:   strings.TrimSpace(cmd.AvatarURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.Elections.SaveCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	logger.Info("candidate created",
		"event", "admin_candidate_created",
		"module", "election-operations/election-admin",
		"layer", "application",
		"election_id", candidate.ElectionID,
		"position_id", candidate.PositionID,
		"candidate_id", candidate.CandidateID,
	)
	return candidate, nil
}

// FinishDueElections flips the finished flag on every election whose end date
// has passed. The transition is one-way and re-running the sweep is a no-op.
func (uc AdminUseCase) FinishDueElections(ctx context.Context, now time.Time) (int, error) {
	logger := application.ResolveLogger(uc.Logger)
	elections, err := uc.Elections.ListUnfinishedElections(ctx)
	if err != nil {
		return 0, err
	}

	finished := 0
	for _, election := range elections {
		if !election.Due(now) {
			continue
		}
		election.Finished = true
		election.UpdatedAt = now.UTC()
		if err := uc.Elections.SaveElection(ctx, election); err != nil {
			return finished, err
		}
		finished++
		logger.Info("election finished",
			"event", "admin_election_finished",
			"module", "election-operations/election-admin",
			"layer", "application",
			"election_id", election.ElectionID,
			"end_date", election.EndDate.Format(time.RFC3339),
		)
	}
	return finished, nil
}

func (uc AdminUseCase) requireAdmin(actorEmail string) error {
	email := strings.ToLower(strings.TrimSpace(actorEmail))
	for _, allowed := range uc.AdminEmails {
		if strings.ToLower(strings.TrimSpace(allowed)) == email && email != "" {
			return nil
		}
	}
	return domainerrors.ErrAdminOnly
}

func (uc AdminUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
