package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hephzi-centre/admin-api/internal/models"
)

// SessionRepository reads the static session catalog. The catalog is seeded
// at migration time and never written at runtime.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// ListByCategory returns every catalog entry of one category.
func (r *SessionRepository) ListByCategory(ctx context.Context, category models.Category) ([]models.SessionCatalogEntry, error) {
	const query = `SELECT id, category, name, grade, concepts, techniques, type_label
        FROM session_catalog WHERE category = $1 ORDER BY name ASC`
	var entries []models.SessionCatalogEntry
	if err := r.db.SelectContext(ctx, &entries, query, category); err != nil {
		return nil, fmt.Errorf("list sessions for %s: %w", category, err)
	}
	return entries, nil
}

// ListByCategoryAndGrade returns academic entries matching an exact grade.
func (r *SessionRepository) ListByCategoryAndGrade(ctx context.Context, category models.Category, grade int) ([]models.SessionCatalogEntry, error) {
	const query = `SELECT id, category, name, grade, concepts, techniques, type_label
        FROM session_catalog WHERE category = $1 AND grade = $2 ORDER BY name ASC`
	var entries []models.SessionCatalogEntry
	if err := r.db.SelectContext(ctx, &entries, query, category, grade); err != nil {
		return nil, fmt.Errorf("list sessions for %s grade %d: %w", category, grade, err)
	}
	return entries, nil
}

// FindByID fetches a single catalog entry.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.SessionCatalogEntry, error) {
	const query = `SELECT id, category, name, grade, concepts, techniques, type_label
        FROM session_catalog WHERE id = $1`
	var entry models.SessionCatalogEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByIDs fetches catalog entries for the given id set.
func (r *SessionRepository) FindByIDs(ctx context.Context, ids []string) ([]models.SessionCatalogEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, category, name, grade, concepts, techniques, type_label
        FROM session_catalog WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build session id query: %w", err)
	}
	query = r.db.Rebind(query)
	var entries []models.SessionCatalogEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("find sessions by ids: %w", err)
	}
	return entries, nil
}
