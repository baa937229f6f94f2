package commands

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ballotbox/contexts/election-operations/voter-registry/adapters/memory"
	"ballotbox/contexts/election-operations/voter-registry/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/voter-registry/domain/errors"
	"ballotbox/contexts/election-operations/voter-registry/ports"
)

func newFixture(t *testing.T) (NotifyUseCase, *memory.Store, *time.Time) {
	t.Helper()
	store := memory.NewStore()
	store.SetElection(ports.ElectionProjection{
		ElectionID: "el-1",
		Title:      "Student Council 2026",
		CanVote:    true,
	})

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	store.SetNow(func() time.Time { return now })

	uc := NotifyUseCase{
		Voters:    store,
		Elections: store,
		Mail:      store,
		Clock:     store,
		Tokens:    store,
		IDGen:     store,
		Settings: MailSettings{
			FromAddress:       "elections@example.edu",
			HelpAddress:       "help@example.edu",
			StudentMailDomain: "example.edu",
			PublicBaseURL:     "https://vote.example.edu",
		},
	}
	return uc, store, &now
}

func pendingEmails(t *testing.T, store *memory.Store) []ports.OutboundEmail {
	t.Helper()
	rows, err := store.ListPendingMail(context.Background(), 0)
	if err != nil {
		t.Fatalf("list pending mail: %v", err)
	}
	emails := make([]ports.OutboundEmail, 0, len(rows))
	for _, row := range rows {
		var email ports.OutboundEmail
		if err := json.Unmarshal(row.Payload, &email); err != nil {
			t.Fatalf("decode mail payload: %v", err)
		}
		emails = append(emails, email)
	}
	return emails
}

func TestGetOrCreateVoterIsIdempotent(t *testing.T) {
	uc, _, _ := newFixture(t)

	first, err := uc.GetOrCreateVoter(context.Background(), "el-1", "s001")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Token == "" {
		t.Fatalf("expected token assigned")
	}

	second, err := uc.GetOrCreateVoter(context.Background(), "el-1", "s001")
	if err != nil {
		t.Fatalf("repeat: %v", err)
	}
	if second.Token != first.Token {
		t.Fatalf("expected same token, got %q and %q", first.Token, second.Token)
	}
}

func TestGetOrCreateVoterConcurrentSingleToken(t *testing.T) {
	uc, _, _ := newFixture(t)

	const callers = 12
	tokens := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			voter, err := uc.GetOrCreateVoter(context.Background(), "el-1", "s001")
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			tokens <- voter.Token
		}()
	}
	wg.Wait()
	close(tokens)

	seen := make(map[string]struct{})
	for token := range tokens {
		seen[token] = struct{}{}
	}
	if len(seen) != 1 {
		t.Fatalf("expected one token for all callers, got %d", len(seen))
	}
}

func TestGetOrCreateVoterRejectsNonLowercaseID(t *testing.T) {
	uc, _, _ := newFixture(t)

	for _, studentID := range []string{"", "S001", "John.Doe"} {
		_, err := uc.GetOrCreateVoter(context.Background(), "el-1", studentID)
		if !errors.Is(err, domainerrors.ErrInvalidStudentID) {
			t.Fatalf("student %q: expected ErrInvalidStudentID, got %v", studentID, err)
		}
	}
}

func TestGetOrCreateVoterUnknownElection(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.GetOrCreateVoter(context.Background(), "el-missing", "s001")
	if !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("expected ErrElectionNotFound, got %v", err)
	}
}

func TestSendVotingEmailFirstContact(t *testing.T) {
	uc, store, _ := newFixture(t)

	result, err := uc.SendVotingEmail(context.Background(), SendVotingEmailCommand{
		ElectionID: "el-1",
		StudentID:  "s001",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !result.Sent {
		t.Fatalf("expected first contact to send, got %+v", result)
	}
	if result.Voter.EmailCount != 1 {
		t.Fatalf("expected email count 1, got %d", result.Voter.EmailCount)
	}

	emails := pendingEmails(t, store)
	if len(emails) != 1 {
		t.Fatalf("expected 1 queued email, got %d", len(emails))
	}
	email := emails[0]
	if email.To != "s001@example.edu" {
		t.Fatalf("unexpected recipient %q", email.To)
	}
	if !strings.Contains(email.HTMLBody, "/vote/"+result.Voter.Token) {
		t.Fatalf("email body missing voting link: %s", email.HTMLBody)
	}
	if !strings.Contains(email.Subject, "Student Council 2026") {
		t.Fatalf("unexpected subject %q", email.Subject)
	}
}

func TestSendVotingEmailSuppressedInsideBackoffWindow(t *testing.T) {
	uc, store, now := newFixture(t)

	if _, err := uc.SendVotingEmail(context.Background(), SendVotingEmailCommand{
		ElectionID: "el-1", StudentID: "s001",
	}); err != nil {
		t.Fatalf("first send: %v", err)
	}

	// 4m30s into the 10 minute window; remaining 5m30s rounds up to 6.
	*now = now.Add(4*time.Minute + 30*time.Second)

	for _, forced := range []bool{false, true} {
		result, err := uc.SendVotingEmail(context.Background(), SendVotingEmailCommand{
			ElectionID: "el-1", StudentID: "s001", Forced: forced,
		})
		if err != nil {
			t.Fatalf("forced=%v: %v", forced, err)
		}
		if result.Sent {
			t.Fatalf("forced=%v: expected suppression inside window", forced)
		}
		if result.WaitMinutes != 6 {
			t.Fatalf("forced=%v: expected 6 minute wait, got %d", forced, result.WaitMinutes)
		}
	}

	if emails := pendingEmails(t, store); len(emails) != 1 {
		t.Fatalf("expected 1 queued email, got %d", len(emails))
	}
}

func TestSendVotingEmailForcedResendAfterWindow(t *testing.T) {
	uc, store, now := newFixture(t)

	if _, err := uc.SendVotingEmail(context.Background(), SendVotingEmailCommand{
		ElectionID: "el-1", StudentID: "s001",
	}); err != nil {
		t.Fatalf("first send: %v", err)
	}

	*now = now.Add(10 * time.Minute)

	// Elapsed window alone is not enough; the resend must be explicit.
	result, err := uc.SendVotingEmail(context.Background(), SendVotingEmailCommand{
		ElectionID: "el-1", StudentID: "s001",
	})
	if err != nil {
		t.Fatalf("unforced: %v", err)
	}
	if result.Sent {
		t.Fatalf("unforced resend must stay suppressed")
	}

	result, err = uc.SendVotingEmail(context.Background(), SendVotingEmailCommand{
		ElectionID: "el-1", StudentID: "s001", Forced: true,
	})
	if err != nil {
		t.Fatalf("forced: %v", err)
	}
	if !result.Sent {
		t.Fatalf("expected forced resend after window, got %+v", result)
	}
	if result.Voter.EmailCount != 2 {
		t.Fatalf("expected email count 2, got %d", result.Voter.EmailCount)
	}
	if emails := pendingEmails(t, store); len(emails) != 2 {
		t.Fatalf("expected 2 queued emails, got %d", len(emails))
	}

	// Second email doubles the window: 20 minutes from creation.
	*now = now.Add(5 * time.Minute)
	result, err = uc.SendVotingEmail(context.Background(), SendVotingEmailCommand{
		ElectionID: "el-1", StudentID: "s001", Forced: true,
	})
	if err != nil {
		t.Fatalf("third attempt: %v", err)
	}
	if result.Sent || result.WaitMinutes != 5 {
		t.Fatalf("expected suppression with 5 minutes left, got %+v", result)
	}
}

func TestSendVotingEmailVotedVoter(t *testing.T) {
	uc, store, _ := newFixture(t)

	store.SetVoter(entities.Voter{
		ElectionID: "el-1",
		StudentID:  "s001",
		Token:      "token-s001",
		Voted:      true,
		CreatedAt:  store.Now(),
	})

	result, err := uc.SendVotingEmail(context.Background(), SendVotingEmailCommand{
		ElectionID: "el-1", StudentID: "s001",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !result.Voted || result.Sent {
		t.Fatalf("expected voted short-circuit, got %+v", result)
	}
	if emails := pendingEmails(t, store); len(emails) != 0 {
		t.Fatalf("voted voter must not receive mail, got %d", len(emails))
	}
}
