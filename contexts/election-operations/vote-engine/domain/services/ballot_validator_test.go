package services

import (
	"errors"
	"testing"

	"ballotbox/contexts/election-operations/vote-engine/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/vote-engine/domain/errors"
)

func fixturePositions() []entities.Position {
	return []entities.Position{
		{PositionID: "pos-president", ElectionID: "el-1", Name: "President", VotesPerPerson: 1},
		{PositionID: "pos-board", ElectionID: "el-1", Name: "Board", VotesPerPerson: 2},
	}
}

func fixtureCandidates() []entities.Candidate {
	return []entities.Candidate{
		{CandidateID: "cand-a", PositionID: "pos-president", ElectionID: "el-1", Name: "Alice"},
		{CandidateID: "cand-b", PositionID: "pos-president", ElectionID: "el-1", Name: "Bob"},
		{CandidateID: "cand-c", PositionID: "pos-board", ElectionID: "el-1", Name: "Carol"},
		{CandidateID: "cand-d", PositionID: "pos-board", ElectionID: "el-1", Name: "Dave"},
		{CandidateID: "cand-e", PositionID: "pos-board", ElectionID: "el-1", Name: "Eve"},
	}
}

func TestValidateBallot(t *testing.T) {
	cases := []struct {
		name    string
		ballot  []string
		wantErr error
	}{
		{name: "single selection per position", ballot: []string{"cand-a", "cand-c"}, wantErr: nil},
		{name: "position limit used exactly", ballot: []string{"cand-c", "cand-d"}, wantErr: nil},
		{name: "empty ballot", ballot: nil, wantErr: domainerrors.ErrInvalidBallotInput},
		{name: "blank candidate id", ballot: []string{""}, wantErr: domainerrors.ErrInvalidBallotInput},
		{name: "duplicate candidate", ballot: []string{"cand-a", "cand-a"}, wantErr: domainerrors.ErrInvalidBallotInput},
		{name: "unknown candidate", ballot: []string{"cand-zz"}, wantErr: domainerrors.ErrUnknownCandidate},
		{name: "over position limit", ballot: []string{"cand-a", "cand-b"}, wantErr: domainerrors.ErrTooManyVotes},
		{name: "over limit on larger position", ballot: []string{"cand-c", "cand-d", "cand-e"}, wantErr: domainerrors.ErrTooManyVotes},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBallot(fixturePositions(), fixtureCandidates(), tc.ballot)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected valid ballot, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateBallotReportsPositionDetail(t *testing.T) {
	err := ValidateBallot(fixturePositions(), fixtureCandidates(), []string{"cand-a", "cand-b"})

	var detail domainerrors.TooManyVotesError
	if !errors.As(err, &detail) {
		t.Fatalf("expected TooManyVotesError, got %v", err)
	}
	if detail.PositionName != "President" {
		t.Fatalf("expected President, got %q", detail.PositionName)
	}
	if detail.Limit != 1 || detail.Selected != 2 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}
