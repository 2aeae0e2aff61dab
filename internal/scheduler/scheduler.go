// Package scheduler runs the background milestone reconciler. The donate path
// settles milestones inline; the reconciler is a safety net that sweeps every
// project and settles any flag a lost write could have left behind.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/fundflow/fundflow/internal/ledger"
	"github.com/fundflow/fundflow/internal/metrics"
	"github.com/fundflow/fundflow/internal/repo"
	"github.com/robfig/cron/v3"
)

// Run starts the reconciler on the given cron spec (e.g. "@every 1h") and
// blocks. An empty spec disables it; an invalid spec is logged and ignored.
func Run(projectRepo *repo.ProjectRepo, cronSpec string) {
	if cronSpec == "" {
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cronSpec, func() { Reconcile(context.Background(), projectRepo) }); err != nil {
		slog.Error("scheduler: invalid cron spec", "spec", cronSpec, "error", err)
		return
	}

	slog.Info("scheduler: milestone reconciler started", "spec", cronSpec)
	c.Run()
}

// Reconcile settles milestone flags for every project whose raised total has
// moved past an unreached milestone. The list read only picks candidates;
// each fix re-reads its row under the same lock the donate path takes and
// writes milestones alone, so a donation landing mid-sweep is never lost.
func Reconcile(ctx context.Context, projectRepo *repo.ProjectRepo) {
	projects, err := projectRepo.List(ctx)
	if err != nil {
		slog.Error("reconcile: list projects", "error", err)
		return
	}

	fixed := 0
	for i := range projects {
		p := &projects[i]
		if !ledger.Unsettled(p) {
			continue
		}
		changed, err := projectRepo.SettleMilestones(ctx, p.ID)
		if err != nil {
			slog.Error("reconcile: settle project", "project_id", p.ID, "error", err)
			continue
		}
		if changed {
			fixed++
			metrics.MilestonesReconciled.Inc()
		}
	}

	if fixed > 0 {
		slog.Info("reconcile: settled stale milestones", "projects_fixed", fixed)
	}
}
