package services

import (
	"ballotbox/contexts/election-operations/vote-engine/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/vote-engine/domain/errors"
)

// ValidateBallot checks a ballot's candidate selections against the
// election's positions. It is pure: all state arrives as arguments.
//
// A ballot is rejected when it is empty, names the same candidate twice,
// names a candidate outside the election, or selects more candidates for a
// position than that position allows.
func ValidateBallot(
	positions []entities.Position,
	candidates []entities.Candidate,
	candidateIDs []string,
) error {
	if len(candidateIDs) == 0 {
		return domainerrors.ErrInvalidBallotInput
	}

	byCandidate := make(map[string]entities.Candidate, len(candidates))
	for _, candidate := range candidates {
		byCandidate[candidate.CandidateID] = candidate
	}
	byPosition := make(map[string]entities.Position, len(positions))
	for _, position := range positions {
		byPosition[position.PositionID] = position
	}

	seen := make(map[string]struct{}, len(candidateIDs))
	perPosition := make(map[string]int, len(positions))
	for _, candidateID := range candidateIDs {
		if candidateID == "" {
			return domainerrors.ErrInvalidBallotInput
		}
		if _, dup := seen[candidateID]; dup {
			return domainerrors.ErrInvalidBallotInput
		}
		seen[candidateID] = struct{}{}

		candidate, ok := byCandidate[candidateID]
		if !ok {
			return domainerrors.ErrUnknownCandidate
		}
		perPosition[candidate.PositionID]++
	}

	for positionID, selected := range perPosition {
		position, ok := byPosition[positionID]
		if !ok {
			return domainerrors.ErrUnknownCandidate
		}
		if selected > position.VotesPerPerson {
			return domainerrors.TooManyVotesError{
				PositionName: position.Name,
				Limit:        position.VotesPerPerson,
				Selected:     selected,
			}
		}
	}
	return nil
}
