package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fundflow/fundflow/internal/ledger"
	"github.com/fundflow/fundflow/internal/models"
)

// ErrProjectNotFound is returned when a referenced project id does not exist.
var ErrProjectNotFound = errors.New("project not found")

// ==========================
// ProjectRepo
// ==========================
type ProjectRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{DB: db}
}

const projectColumns = `id, title, description, goal, raised, category, milestones, owner, social_links`

func scanProject(row *sql.Row) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Goal, &p.Raised,
		&p.Category, &p.Milestones, &p.Owner, &p.SocialLinks,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ==========================
// Create Project
// ==========================
func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	query := `
		INSERT INTO projects (title, description, goal, category, milestones, owner, social_links)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + projectColumns

	// Milestones persist verbatim; reached always starts false.
	for i := range p.Milestones {
		p.Milestones[i].Reached = false
	}

	row := r.DB.QueryRowContext(ctx, query,
		p.Title, p.Description, p.Goal, p.Category, p.Milestones, p.Owner, p.SocialLinks,
	)
	return scanProject(row)
}

// ==========================
// Get By ID
// ==========================
func (r *ProjectRepo) GetByID(ctx context.Context, id int) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	p, err := scanProject(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ==========================
// List Projects (owner name resolved)
// ==========================
func (r *ProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	query := `
		SELECT p.id, p.title, p.description, p.goal, p.raised, p.category,
		       p.milestones, p.owner, p.social_links, u.name
		FROM projects p
		JOIN users u ON u.id = p.owner
		ORDER BY p.id
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Goal, &p.Raised,
			&p.Category, &p.Milestones, &p.Owner, &p.SocialLinks, &p.OwnerName,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// ==========================
// Donate
// ==========================

// Donate credits amount to a project and settles its milestones, persisting
// the whole row as one document. The row is locked for the duration of the
// transaction, so concurrent donations to the same project serialize instead
// of losing updates.
func (r *ProjectRepo) Donate(ctx context.Context, id int, amount float64) (*models.Project, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p := &models.Project{}
	err = tx.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id,
	).Scan(
		&p.ID, &p.Title, &p.Description, &p.Goal, &p.Raised,
		&p.Category, &p.Milestones, &p.Owner, &p.SocialLinks,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	ledger.Apply(p, amount)

	_, err = tx.ExecContext(ctx,
		`UPDATE projects SET raised = $1, milestones = $2 WHERE id = $3`,
		p.Raised, p.Milestones, p.ID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return p, nil
}

// ==========================
// Settle Milestones
// ==========================

// SettleMilestones re-reads a project under a row lock and persists any
// milestone flags its raised total has already crossed. Only the milestones
// column is written; raised stays untouched, so a caller working from a stale
// snapshot can never clobber a donation that committed in the meantime.
// Reports whether a flag changed.
func (r *ProjectRepo) SettleMilestones(ctx context.Context, id int) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	p := &models.Project{}
	err = tx.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id,
	).Scan(
		&p.ID, &p.Title, &p.Description, &p.Goal, &p.Raised,
		&p.Category, &p.Milestones, &p.Owner, &p.SocialLinks,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrProjectNotFound
	}
	if err != nil {
		return false, err
	}

	if !ledger.Unsettled(p) {
		return false, nil
	}

	ledger.Settle(p)

	_, err = tx.ExecContext(ctx,
		`UPDATE projects SET milestones = $1 WHERE id = $2`,
		p.Milestones, p.ID,
	)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}
