package queries

import (
	"context"
	"strings"

	"ballotbox/contexts/election-operations/voter-registry/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/voter-registry/domain/errors"
	"ballotbox/contexts/election-operations/voter-registry/ports"
)

type ResolveUseCase struct {
	Voters ports.VoterRepository
}

// ResolveToken authenticates an access token. Misses are reported uniformly
// regardless of why the token is unknown, and the lookup has no side effects.
func (uc ResolveUseCase) ResolveToken(ctx context.Context, token string) (entities.Voter, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return uc.Voters.GetVoterByToken(ctx, token)
}
