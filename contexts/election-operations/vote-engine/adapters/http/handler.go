package httpadapter

import (
	"context"
	"log/slog"

	"ballotbox/contexts/election-operations/vote-engine/application/commands"
	"ballotbox/contexts/election-operations/vote-engine/application/queries"
	"ballotbox/contexts/election-operations/vote-engine/domain/entities"
	httptransport "ballotbox/contexts/election-operations/vote-engine/transport/http"
)

type Handler struct {
	Cast   commands.CastVoteUseCase
	Ballot queries.BallotQueryUseCase
	Logger *slog.Logger
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	token string,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	if _, err := h.Cast.CastVote(ctx, commands.CastVoteCommand{
		Token:        token,
		CandidateIDs: req.Votes,
	}); err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{Ok: true}, nil
}

func (h Handler) VotePageHandler(ctx context.Context, token string) (httptransport.VotePageResponse, error) {
	page, err := h.Ballot.VotePage(ctx, token)
	if err != nil {
		return httptransport.VotePageResponse{}, err
	}
	resp := httptransport.VotePageResponse{
		ElectionID:    page.Election.ElectionID,
		ElectionTitle: page.Election.Title,
		StudentID:     page.Voter.StudentID,
		Voted:         page.Voter.Voted,
		Votes:         page.Voter.Votes,
		Positions:     make([]httptransport.PositionBallotResponse, 0, len(page.Positions)),
	}
	for _, ballot := range page.Positions {
		resp.Positions = append(resp.Positions, positionBallotResponse(ballot.Position, ballot.Candidates))
	}
	return resp, nil
}

func (h Handler) ElectionResultsHandler(ctx context.Context, electionID string) (httptransport.ElectionResultsResponse, error) {
	results, err := h.Ballot.ElectionResults(ctx, electionID)
	if err != nil {
		return httptransport.ElectionResultsResponse{}, err
	}
	resp := httptransport.ElectionResultsResponse{
		ElectionID:    results.Election.ElectionID,
		ElectionTitle: results.Election.Title,
		Finished:      results.Election.Finished,
		Positions:     make([]httptransport.PositionBallotResponse, 0, len(results.Positions)),
	}
	for _, position := range results.Positions {
		resp.Positions = append(resp.Positions, positionBallotResponse(position.Position, position.Candidates))
	}
	return resp, nil
}

func positionBallotResponse(position entities.Position, candidates []entities.Candidate) httptransport.PositionBallotResponse {
	item := httptransport.PositionBallotResponse{
		PositionID:     position.PositionID,
		Name:           position.Name,
		VotesPerPerson: position.VotesPerPerson,
		Candidates:     make([]httptransport.CandidateResponse, 0, len(candidates)),
	}
	for _, candidate := range candidates {
		item.Candidates = append(item.Candidates, httptransport.CandidateResponse{
			CandidateID: candidate.CandidateID,
			PositionID:  candidate.PositionID,
			Name:        candidate.Name,
			Description: candidate.Description,
			AvatarURL:   candidate.AvatarURL,
			NumVotes:    candidate.NumVotes,
		})
	}
	return item
}
