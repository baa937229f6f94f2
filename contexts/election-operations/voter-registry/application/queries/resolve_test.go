package queries

import (
	"context"
	"errors"
	"testing"

	"ballotbox/contexts/election-operations/voter-registry/adapters/memory"
	"ballotbox/contexts/election-operations/voter-registry/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/voter-registry/domain/errors"
)

func TestResolveTokenReturnsVoter(t *testing.T) {
	store := memory.NewStore()
	store.SetVoter(entities.Voter{
		ElectionID: "el-1",
		StudentID:  "s001",
		Token:      "token-s001",
	})
	uc := ResolveUseCase{Voters: store}

	voter, err := uc.ResolveToken(context.Background(), "token-s001")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if voter.StudentID != "s001" || voter.ElectionID != "el-1" {
		t.Fatalf("unexpected voter: %+v", voter)
	}
}

func TestResolveTokenMissesAreUniform(t *testing.T) {
	store := memory.NewStore()
	uc := ResolveUseCase{Voters: store}

	// Blank, malformed and unknown tokens all fail identically so callers
	// cannot probe which tokens exist.
	for _, token := range []string{"", "   ", "nope", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"} {
		_, err := uc.ResolveToken(context.Background(), token)
		if !errors.Is(err, domainerrors.ErrVoterNotFound) {
			t.Fatalf("token %q: expected ErrVoterNotFound, got %v", token, err)
		}
	}
}
