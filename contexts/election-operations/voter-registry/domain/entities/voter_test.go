package entities

import (
	"testing"
	"time"
)

func TestNextSendWaitDoublesPerEmail(t *testing.T) {
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		emailCount int
		elapsed    time.Duration
		want       time.Duration
	}{
		{name: "first email always allowed", emailCount: 0, elapsed: 0, want: 0},
		{name: "one email, immediately", emailCount: 1, elapsed: 0, want: 10 * time.Minute},
		{name: "one email, halfway", emailCount: 1, elapsed: 4 * time.Minute, want: 6 * time.Minute},
		{name: "one email, window elapsed", emailCount: 1, elapsed: 10 * time.Minute, want: 0},
		{name: "two emails, window doubles", emailCount: 2, elapsed: 0, want: 20 * time.Minute},
		{name: "two emails, partly elapsed", emailCount: 2, elapsed: 15 * time.Minute, want: 5 * time.Minute},
		{name: "three emails, window doubles again", emailCount: 3, elapsed: 0, want: 40 * time.Minute},
		{name: "long idle voter", emailCount: 3, elapsed: 2 * time.Hour, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			voter := Voter{
				ElectionID: "el-1",
				StudentID:  "s001",
				EmailCount: tc.emailCount,
				CreatedAt:  created,
			}
			got := voter.NextSendWait(created.Add(tc.elapsed))
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
