package queries

import (
	"context"
	"sort"
	"strings"

	"ballotbox/contexts/election-operations/vote-engine/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/vote-engine/domain/errors"
	"ballotbox/contexts/election-operations/vote-engine/ports"
)

type BallotQueryUseCase struct {
	Reader ports.BallotReader
}

// VotePage assembles the voting page for a token: the election, the voter's
// current state and every position with its candidates. An already-voted
// voter still gets the page so the UI can show what they chose.
func (uc BallotQueryUseCase) VotePage(ctx context.Context, token string) (entities.VotePage, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.VotePage{}, domainerrors.ErrVoterNotFound
	}
	voter, err := uc.Reader.GetVoterByToken(ctx, token)
	if err != nil {
		return entities.VotePage{}, err
	}
	election, err := uc.Reader.GetElection(ctx, voter.ElectionID)
	if err != nil {
		return entities.VotePage{}, err
	}
	positions, err := uc.positionBallots(ctx, voter.ElectionID)
	if err != nil {
		return entities.VotePage{}, err
	}
	return entities.VotePage{
		Election:  election,
		Voter:     voter,
		Positions: positions,
	}, nil
}

// ElectionResults returns each position's candidates ordered by tally,
// highest first, with name as the tiebreak.
func (uc BallotQueryUseCase) ElectionResults(ctx context.Context, electionID string) (entities.ElectionResults, error) {
	election, err := uc.Reader.GetElection(ctx, electionID)
	if err != nil {
		return entities.ElectionResults{}, err
	}
	positions, err := uc.positionBallots(ctx, election.ElectionID)
	if err != nil {
		return entities.ElectionResults{}, err
	}

	results := entities.ElectionResults{
		Election:  election,
		Positions: make([]entities.PositionResult, 0, len(positions)),
	}
	for _, ballot := range positions {
		ranked := make([]entities.Candidate, len(ballot.Candidates))
		copy(ranked, ballot.Candidates)
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].NumVotes != ranked[j].NumVotes {
				return ranked[i].NumVotes > ranked[j].NumVotes
			}
			return ranked[i].Name < ranked[j].Name
		})
		results.Positions = append(results.Positions, entities.PositionResult{
			Position:   ballot.Position,
			Candidates: ranked,
		})
	}
	return results, nil
}

func (uc BallotQueryUseCase) positionBallots(ctx context.Context, electionID string) ([]entities.PositionBallot, error) {
	positions, err := uc.Reader.ListPositions(ctx, electionID)
	if err != nil {
		return nil, err
	}
	candidates, err := uc.Reader.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, err
	}

	byPosition := make(map[string][]entities.Candidate, len(positions))
	for _, candidate := range candidates {
		byPosition[candidate.PositionID] = append(byPosition[candidate.PositionID], candidate)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Name < positions[j].Name })

	ballots := make([]entities.PositionBallot, 0, len(positions))
	for _, position := range positions {
		members := byPosition[position.PositionID]
		sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		ballots = append(ballots, entities.PositionBallot{
			Position:   position,
			Candidates: members,
		})
	}
	return ballots, nil
}
