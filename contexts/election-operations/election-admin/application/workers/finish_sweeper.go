package workers

import (
	"context"
	"log/slog"
	"time"

	application "ballotbox/contexts/election-operations/election-admin/application"
	"ballotbox/contexts/election-operations/election-admin/application/commands"
	"ballotbox/contexts/election-operations/election-admin/ports"
)

// FinishSweeper periodically flips the finished flag on elections whose
// voting window has ended.
type FinishSweeper struct {
	Admin  commands.AdminUseCase
	Clock  ports.Clock
	Logger *slog.Logger
}

func (s FinishSweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(s.Logger)
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}

	finished, err := s.Admin.FinishDueElections(ctx, now)
	if err != nil {
		logger.Error("election finish sweep failed",
			"event", "admin_finish_sweep_failed",
			"module", "election-operations/election-admin",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if finished > 0 {
		logger.Info("election finish sweep completed",
			"event", "admin_finish_sweep_completed",
			"module", "election-operations/election-admin",
			"layer", "worker",
			"finished_count", finished,
		)
	}
	return nil
}
