// Package ledger owns the donation settlement rules: raised amounts only
// grow, and a milestone flips to reached exactly once, when the running
// total meets its amount.
package ledger

import "github.com/fundflow/fundflow/internal/models"

// Apply credits amount to the project's raised total and settles milestones.
// It mutates p in place; persistence is the caller's concern.
func Apply(p *models.Project, amount float64) {
	p.Raised += amount
	Settle(p)
}

// Settle marks every milestone whose amount the raised total has met, in
// sequence order. A reached milestone is never unset, so Settle is idempotent
// as long as Raised never decreases.
func Settle(p *models.Project) {
	for i := range p.Milestones {
		if p.Raised >= p.Milestones[i].Amount {
			p.Milestones[i].Reached = true
		}
	}
}

// Unsettled reports whether any milestone should be reached but is not,
// which can only happen if a write was lost outside the donate path.
func Unsettled(p *models.Project) bool {
	for i := range p.Milestones {
		if !p.Milestones[i].Reached && p.Raised >= p.Milestones[i].Amount {
			return true
		}
	}
	return false
}
