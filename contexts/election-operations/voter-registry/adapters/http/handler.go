package httpadapter

import (
	"context"
	"log/slog"

	"ballotbox/contexts/election-operations/voter-registry/application/commands"
	"ballotbox/contexts/election-operations/voter-registry/application/queries"
	"ballotbox/contexts/election-operations/voter-registry/domain/entities"
	httptransport "ballotbox/contexts/election-operations/voter-registry/transport/http"
)

type Handler struct {
	Notify  commands.NotifyUseCase
	Resolve queries.ResolveUseCase
	Logger  *slog.Logger
}

func (h Handler) SendVotingEmailHandler(
	ctx context.Context,
	req httptransport.SendVotingEmailRequest,
) (httptransport.SendVotingEmailResponse, error) {
	result, err := h.Notify.SendVotingEmail(ctx, commands.SendVotingEmailCommand{
		ElectionID: req.ElectionID,
		StudentID:  req.StudentID,
		Forced:     req.ForcedSend,
	})
	if err != nil {
		return httptransport.SendVotingEmailResponse{}, err
	}
	return httptransport.SendVotingEmailResponse{
		IsSent:       result.Sent,
		RestWaitTime: result.WaitMinutes,
		Voted:        result.Voted,
	}, nil
}

func (h Handler) ResolveTokenHandler(ctx context.Context, token string) (httptransport.VoterResponse, error) {
	voter, err := h.Resolve.ResolveToken(ctx, token)
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return voterResponse(voter), nil
}

func voterResponse(v entities.Voter) httptransport.VoterResponse {
	return httptransport.VoterResponse{
		ElectionID: v.ElectionID,
		StudentID:  v.StudentID,
		Voted:      v.Voted,
		Votes:      v.Votes,
		EmailCount: v.EmailCount,
	}
}
