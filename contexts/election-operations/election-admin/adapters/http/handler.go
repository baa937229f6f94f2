package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"ballotbox/contexts/election-operations/election-admin/application/commands"
	"ballotbox/contexts/election-operations/election-admin/application/queries"
	"ballotbox/contexts/election-operations/election-admin/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/election-admin/domain/errors"
	httptransport "ballotbox/contexts/election-operations/election-admin/transport/http"
)

type Handler struct {
	Admin   commands.AdminUseCase
	Catalog queries.CatalogUseCase
	Logger  *slog.Logger
}

func (h Handler) CreateElectionHandler(
	ctx context.Context,
	actorEmail string,
	req httptransport.CreateElectionRequest,
) (httptransport.ElectionResponse, error) {
	startDate, endDate, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	election, err := h.Admin.CreateElection(ctx, commands.CreateElectionCommand{
		ActorEmail:  actorEmail,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		CanVote:     req.CanVote,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return electionResponse(election), nil
}

func (h Handler) UpdateElectionHandler(
	ctx context.Context,
	actorEmail string,
	electionID string,
	req httptransport.UpdateElectionRequest,
) (httptransport.ElectionResponse, error) {
	startDate, endDate, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	election, err := h.Admin.UpdateElection(ctx, commands.UpdateElectionCommand{
		ActorEmail:  actorEmail,
		ElectionID:  electionID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		CanVote:     req.CanVote,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return electionResponse(election), nil
}

func (h Handler) CreatePositionHandler(
	ctx context.Context,
	actorEmail string,
	electionID string,
	req httptransport.CreatePositionRequest,
) (httptransport.PositionResponse, error) {
	position, err := h.Admin.CreatePosition(ctx, commands.CreatePositionCommand{
		ActorEmail:     actorEmail,
		ElectionID:     electionID,
		Name:           req.Name,
		VotesPerPerson: req.VotesPerPerson,
	})
	if err != nil {
		return httptransport.PositionResponse{}, err
	}
	return positionResponse(position), nil
}

func (h Handler) CreateCandidateHandler(
	ctx context.Context,
	actorEmail string,
	positionID string,
	req httptransport.CreateCandidateRequest,
) (httptransport.CandidateResponse, error) {
	candidate, err := h.Admin.CreateCandidate(ctx, commands.CreateCandidateCommand{
		ActorEmail:  actorEmail,
		PositionID:  positionID,
		Name:        req.Name,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return candidateResponse(candidate), nil
}

func (h Handler) UpdateElectionStatusHandler(ctx context.Context) (httptransport.UpdateElectionStatusResponse, error) {
	now := time.Now().UTC()
	if h.Admin.Clock != nil {
		now = h.Admin.Clock.Now().UTC()
	}
	finished, err := h.Admin.FinishDueElections(ctx, now)
	if err != nil {
		return httptransport.UpdateElectionStatusResponse{}, err
	}
	return httptransport.UpdateElectionStatusResponse{FinishedCount: finished}, nil
}

func (h Handler) AvailableElectionsHandler(ctx context.Context) (httptransport.ElectionListResponse, error) {
	elections, err := h.Catalog.AvailableElections(ctx)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	resp := httptransport.ElectionListResponse{
		Items: make([]httptransport.ElectionResponse, 0, len(elections)),
	}
	for _, election := range elections {
		resp.Items = append(resp.Items, electionResponse(election))
	}
	return resp, nil
}

func (h Handler) RegisterPageHandler(ctx context.Context, electionID string) (httptransport.ElectionDetailResponse, error) {
	detail, err := h.Catalog.RegisterPage(ctx, electionID)
	if err != nil {
		return httptransport.ElectionDetailResponse{}, err
	}
	return electionDetailResponse(detail), nil
}

func parseWindow(start string, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, domainerrors.ErrInvalidElectionInput
	}
	endDate, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, domainerrors.ErrInvalidElectionInput
	}
	return startDate, endDate, nil
}

func electionResponse(e entities.Election) httptransport.ElectionResponse {
	return httptransport.ElectionResponse{
		ElectionID:  e.ElectionID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate.UTC().Format(time.RFC3339),
		EndDate:     e.EndDate.UTC().Format(time.RFC3339),
		CanVote:     e.CanVote,
		Finished:    e.Finished,
	}
}

func positionResponse(p entities.Position) httptransport.PositionResponse {
	return httptransport.PositionResponse{
		PositionID:     p.PositionID,
		ElectionID:     p.ElectionID,
		Name:           p.Name,
		VotesPerPerson: p.VotesPerPerson,
	}
}

func candidateResponse(c entities.Candidate) httptransport.CandidateResponse {
	return httptransport.CandidateResponse{
		CandidateID: c.CandidateID,
		PositionID:  c.PositionID,
		ElectionID:  c.ElectionID,
		Name:        c.Name,
		Description: c.Description,
		AvatarURL:   c.AvatarURL,
		NumVotes:    c.NumVotes,
	}
}

func electionDetailResponse(d entities.ElectionDetail) httptransport.ElectionDetailResponse {
	resp := httptransport.ElectionDetailResponse{
		Election:  electionResponse(d.Election),
		Positions: make([]httptransport.PositionDetailResponse, 0, len(d.Positions)),
	}
	for _, position := range d.Positions {
		item := httptransport.PositionDetailResponse{
			Position:   positionResponse(position.Position),
			Candidates: make([]httptransport.CandidateResponse, 0, len(position.Candidates)),
		}
		for _, candidate := range position.Candidates {
			item.Candidates = append(item.Candidates, candidateResponse(candidate))
		}
		resp.Positions = append(resp.Positions, item)
	}
	return resp
}
