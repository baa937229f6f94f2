package queries

import (
	"context"
	"sort"
	"strings"
	"time"

	"ballotbox/contexts/election-operations/election-admin/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/election-admin/domain/errors"
	"ballotbox/contexts/election-operations/election-admin/ports"
)

type CatalogUseCase struct {
	Elections ports.ElectionRepository
	Clock     ports.Clock
}

// AvailableElections lists elections open for registration and voting.
func (uc CatalogUseCase) AvailableElections(ctx context.Context) ([]entities.Election, error) {
	elections, err := uc.Elections.ListElections(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	items := make([]entities.Election, 0, len(elections))
	for _, election := range elections {
		if election.Open(now) {
			items = append(items, election)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].StartDate.Before(items[j].StartDate)
	})
	return items, nil
}

// ElectionDetail returns the election with its positions and candidates, the
// deep shape served on register and vote pages.
func (uc CatalogUseCase) ElectionDetail(ctx context.Context, electionID string) (entities.ElectionDetail, error) {
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return entities.ElectionDetail{}, err
	}

	positions, err := uc.Elections.ListPositionsByElection(ctx, election.ElectionID)
	if err != nil {
		return entities.ElectionDetail{}, err
	}

	detail := entities.ElectionDetail{Election: election}
	for _, position := range positions {
		candidates, err := uc.Elections.ListCandidatesByPosition(ctx, position.PositionID)
		if err != nil {
			return entities.ElectionDetail{}, err
		}
		detail.Positions = append(detail.Positions, entities.PositionDetail{
			Position:   position,
			Candidates: candidates,
		})
	}
	return detail, nil
}

// RegisterPage is ElectionDetail gated on the voting window, mirroring the
// register page's 404 on closed elections.
func (uc CatalogUseCase) RegisterPage(ctx context.Context, electionID string) (entities.ElectionDetail, error) {
	detail, err := uc.ElectionDetail(ctx, electionID)
	if err != nil {
		return entities.ElectionDetail{}, err
	}
	if !detail.Election.Open(uc.now()) {
		return entities.ElectionDetail{}, domainerrors.ErrVotingClosed
	}
	return detail, nil
}

func (uc CatalogUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
