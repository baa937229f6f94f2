package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	application "ballotbox/contexts/election-operations/voter-registry/application"
	"ballotbox/contexts/election-operations/voter-registry/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/voter-registry/domain/errors"
	"ballotbox/contexts/election-operations/voter-registry/ports"
)

// SendVotingEmailCommand requests a (re-)send of the voting token email.
type SendVotingEmailCommand struct {
	ElectionID string
	StudentID  string
	Forced     bool
}

// SendVotingEmailResult mirrors the send-email API contract: whether an email
// went out in this request, the remaining backoff in whole minutes, and the
// voter's voted flag.
type SendVotingEmailResult struct {
	Sent        bool
	WaitMinutes int
	Voted       bool
	Voter       entities.Voter
}

// MailSettings carries the address and link construction config, initialized
// once per process and read-only thereafter.
type MailSettings struct {
	FromAddress       string
	HelpAddress       string
	StudentMailDomain string
	PublicBaseURL     string
}

// NotifyUseCase owns voter registration and the voting-email flow: lazy
// get-or-create with token allocation, per-voter exponential backoff, and the
// mail outbox append that travels with the email counter update.
type NotifyUseCase struct {
	Voters    ports.VoterRepository
	Elections ports.ElectionDirectory
	Mail      ports.MailOutbox
	Clock     ports.Clock
	Tokens    ports.TokenGenerator
	IDGen     ports.IDGenerator
	Settings  MailSettings
	Logger    *slog.Logger
}

// GetOrCreateVoter registers the student for the election on first contact.
// The student id must already be lowercase; repeated calls return the same
// record and token.
func (uc NotifyUseCase) GetOrCreateVoter(ctx context.Context, electionID string, studentID string) (entities.Voter, error) {
	logger := application.ResolveLogger(uc.Logger)
	electionID = strings.TrimSpace(electionID)
	studentID = strings.TrimSpace(studentID)
	if studentID == "" || studentID != strings.ToLower(studentID) {
		return entities.Voter{}, domainerrors.ErrInvalidStudentID
	}

	if _, err := uc.Elections.GetElection(ctx, electionID); err != nil {
		return entities.Voter{}, err
	}

	token, err := uc.Tokens.NewToken(ctx)
	if err != nil {
		return entities.Voter{}, err
	}
	voter, created, err := uc.Voters.CreateVoterIfAbsent(ctx, entities.Voter{
		ElectionID: electionID,
		StudentID:  studentID,
		Token:      token,
		CreatedAt:  uc.now(),
	})
	if err != nil {
		return entities.Voter{}, err
	}
	if created {
		logger.Info("voter registered",
			"event", "registry_voter_created",
			"module", "election-operations/voter-registry",
			"layer", "application",
			"election_id", electionID,
			"student_id", studentID,
		)
	}
	return voter, nil
}

// SendVotingEmail gates the email on the voter's backoff state and appends
// the token email to the mail outbox. The counter update is persisted before
// returning so an immediate re-read observes it.
func (uc NotifyUseCase) SendVotingEmail(ctx context.Context, cmd SendVotingEmailCommand) (SendVotingEmailResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	voter, err := uc.GetOrCreateVoter(ctx, cmd.ElectionID, cmd.StudentID)
	if err != nil {
		return SendVotingEmailResult{}, err
	}
	if voter.Voted {
		return SendVotingEmailResult{Voted: true, Voter: voter}, nil
	}

	now := uc.now()
	wait := voter.NextSendWait(now)
	waitMinutes := int(math.Ceil(wait.Minutes()))

	// First contact always sends; after that only an explicit resend request
	// once the backoff window has elapsed.
	if voter.EmailCount > 0 && !(cmd.Forced && wait == 0) {
		logger.Info("voting email suppressed by backoff",
			"event", "registry_email_suppressed",
			"module", "election-operations/voter-registry",
			"layer", "application",
			"election_id", voter.ElectionID,
			"student_id", voter.StudentID,
			"email_count", voter.EmailCount,
			"rest_wait_minutes", waitMinutes,
			"forced", cmd.Forced,
		)
		return SendVotingEmailResult{WaitMinutes: waitMinutes, Voter: voter}, nil
	}

	election, err := uc.Elections.GetElection(ctx, voter.ElectionID)
	if err != nil {
		return SendVotingEmailResult{}, err
	}
	email, err := uc.composeVotingEmail(ctx, election, voter)
	if err != nil {
		return SendVotingEmailResult{}, err
	}
	if err := uc.Mail.AppendMail(ctx, email); err != nil {
		return SendVotingEmailResult{}, err
	}

	voter, err = uc.Voters.RecordEmailSent(ctx, voter.ElectionID, voter.StudentID, now)
	if err != nil {
		return SendVotingEmailResult{}, err
	}

	logger.Info("voting email queued",
		"event", "registry_email_queued",
		"module", "election-operations/voter-registry",
		"layer", "application",
		"election_id", voter.ElectionID,
		"student_id", voter.StudentID,
		"email_count", voter.EmailCount,
		"to", email.To,
	)
	return SendVotingEmailResult{Sent: true, WaitMinutes: waitMinutes, Voter: voter}, nil
}

func (uc NotifyUseCase) composeVotingEmail(
	ctx context.Context,
	election ports.ElectionProjection,
	voter entities.Voter,
) (ports.OutboundEmail, error) {
	mailID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return ports.OutboundEmail{}, err
	}
	votingLink := strings.TrimRight(uc.Settings.PublicBaseURL, "/") + "/vote/" + voter.Token
	htmlBody := fmt.Sprintf(
		"<h3>Hello %s:</h3>"+
			"<p>Thank you for taking part in %s.<br>"+
			"<h4><a href='%s'>Click here to vote</a></h4><br>"+
			"If you did not request this email, please delete it.<br>"+
			"Questions? Write to: %s<br></p>",
		voter.StudentID, election.Title, votingLink, uc.Settings.HelpAddress,
	)
	return ports.OutboundEmail{
		MailID:   mailID,
		To:       voter.StudentID + "@" + uc.Settings.StudentMailDomain,
		From:     uc.Settings.FromAddress,
		Subject:  election.Title + " voting verification",
		HTMLBody: htmlBody,
		TextBody: "Vote here: " + votingLink,
	}, nil
}

func (uc NotifyUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
