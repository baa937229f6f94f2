package commands

import (
	"context"
	"log/slog"
	"strings"

	application "ballotbox/contexts/election-operations/vote-engine/application"
	"ballotbox/contexts/election-operations/vote-engine/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/vote-engine/domain/errors"
	"ballotbox/contexts/election-operations/vote-engine/domain/services"
	"ballotbox/contexts/election-operations/vote-engine/ports"
)

type CastVoteCommand struct {
	Token        string
	CandidateIDs []string
}

// CastVoteUseCase validates a ballot against the election's rules and hands
// it to the atomic caster. Validation happens outside the transaction; the
// voted flag is re-checked inside it, so a voter who double-submits loses the
// race exactly once.
type CastVoteUseCase struct {
	Reader ports.BallotReader
	Caster ports.BallotCaster
	Logger *slog.Logger
}

func (uc CastVoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.Voter, error) {
	logger := application.ResolveLogger(uc.Logger)

	token := strings.TrimSpace(cmd.Token)
	if token == "" {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	voter, err := uc.Reader.GetVoterByToken(ctx, token)
	if err != nil {
		return entities.Voter{}, err
	}
	if voter.Voted {
		return entities.Voter{}, domainerrors.ErrAlreadyVoted
	}

	positions, err := uc.Reader.ListPositions(ctx, voter.ElectionID)
	if err != nil {
		return entities.Voter{}, err
	}
	candidates, err := uc.Reader.ListCandidates(ctx, voter.ElectionID)
	if err != nil {
		return entities.Voter{}, err
	}
	if err := services.ValidateBallot(positions, candidates, cmd.CandidateIDs); err != nil {
		return entities.Voter{}, err
	}

	if err := uc.Caster.CastBallot(ctx, voter.ElectionID, voter.StudentID, cmd.CandidateIDs); err != nil {
		logger.Error("ballot cast failed",
			"event", "vote_cast_failed",
			"module", "election-operations/vote-engine",
			"layer", "application",
			"election_id", voter.ElectionID,
			"student_id", voter.StudentID,
			"error", err.Error(),
		)
		return entities.Voter{}, err
	}

	logger.Info("ballot cast",
		"event", "vote_cast",
		"module", "election-operations/vote-engine",
		"layer", "application",
		"election_id", voter.ElectionID,
		"student_id", voter.StudentID,
		"selections", len(cmd.CandidateIDs),
	)

	voter.Voted = true
	voter.Votes = cmd.CandidateIDs
	return voter, nil
}
