// Command seed creates the directory tables and loads the static session
// catalog. Run once against a fresh database before starting the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hephzi-centre/admin-api/internal/models"
	"github.com/hephzi-centre/admin-api/pkg/config"
	"github.com/hephzi-centre/admin-api/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS students (
    id            UUID PRIMARY KEY,
    name          TEXT NOT NULL,
    mentor_id     UUID,
    grade         INT NOT NULL,
    date_of_birth TIMESTAMPTZ,
    address       TEXT NOT NULL DEFAULT '',
    contact       TEXT NOT NULL DEFAULT '',
    grades        JSONB NOT NULL DEFAULT '{}',
    batches       JSONB NOT NULL DEFAULT '{}',
    abc_profile   JSONB NOT NULL DEFAULT '{}',
    tags          TEXT[] NOT NULL DEFAULT '{}',
    is_active     BOOLEAN NOT NULL DEFAULT TRUE,
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS mentors (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL,
    role        TEXT NOT NULL DEFAULT '',
    email       TEXT NOT NULL DEFAULT '',
    contact     TEXT NOT NULL DEFAULT '',
    student_ids TEXT[] NOT NULL DEFAULT '{}',
    is_active   BOOLEAN NOT NULL DEFAULT TRUE,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS session_catalog (
    id         TEXT PRIMARY KEY,
    category   TEXT NOT NULL,
    name       TEXT NOT NULL,
    grade      INT,
    concepts   TEXT[] NOT NULL DEFAULT '{}',
    techniques TEXT[] NOT NULL DEFAULT '{}',
    type_label TEXT
);

CREATE INDEX IF NOT EXISTS idx_students_mentor ON students (mentor_id);
CREATE INDEX IF NOT EXISTS idx_catalog_category_grade ON session_catalog (category, grade);
`

type catalogRow struct {
	ID         string
	Category   models.Category
	Name       string
	Grade      *int
	Concepts   []string
	Techniques []string
	TypeLabel  *string
}

func grade(n int) *int { return &n }

func label(s string) *string { return &s }

func academicRows() []catalogRow {
	rows := []catalogRow{}
	subjects := map[models.Category][]string{
		models.CategoryEnglish: {"Phonics", "Reading Comprehension", "Creative Writing"},
		models.CategoryMath:    {"Number Sense", "Fractions", "Geometry Basics"},
		models.CategoryScience: {"Living Things", "Matter and Materials", "Simple Machines"},
	}
	for category, names := range subjects {
		for g := 1; g <= 8; g++ {
			for i, name := range names {
				rows = append(rows, catalogRow{
					ID:       fmt.Sprintf("%s-g%d-%d", category, g, i+1),
					Category: category,
					Name:     fmt.Sprintf("%s (Grade %d)", name, g),
					Grade:    grade(g),
					Concepts: []string{name},
				})
			}
		}
	}
	return rows
}

func nonAcademicRows() []catalogRow {
	return []catalogRow{
		{ID: "body-yoga", Category: models.CategoryBody, Name: "Yoga", Techniques: []string{"breathing", "stretching"}, TypeLabel: label("fitness")},
		{ID: "body-drills", Category: models.CategoryBody, Name: "Movement Drills", TypeLabel: label("fitness")},
		{ID: "mind-focus", Category: models.CategoryMind, Name: "Focus Exercises", Techniques: []string{"timers", "sorting"}, TypeLabel: label("cognitive")},
		{ID: "mind-memory", Category: models.CategoryMind, Name: "Memory Games", TypeLabel: label("cognitive")},
		{ID: "cbcs-group", Category: models.CategoryCBCS, Name: "Group Circle", TypeLabel: label("social")},
		{ID: "cbcs-turn", Category: models.CategoryCBCS, Name: "Turn Taking Practice", TypeLabel: label("social")},
		{ID: "life-money", Category: models.CategoryLifeSkills, Name: "Handling Money", TypeLabel: label("independence")},
		{ID: "life-kitchen", Category: models.CategoryLifeSkills, Name: "Kitchen Safety", TypeLabel: label("independence")},
	}
}

func main() {
	var withSchema bool
	flag.BoolVar(&withSchema, "schema", true, "create tables before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if withSchema {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			log.Fatalf("failed to create schema: %v", err)
		}
	}

	rows := append(academicRows(), nonAcademicRows()...)
	inserted, err := seedCatalog(ctx, db, rows)
	if err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}
	log.Printf("session catalog seeded: %d rows inserted, %d total", inserted, len(rows))
}

func seedCatalog(ctx context.Context, db *sqlx.DB, rows []catalogRow) (int, error) {
	const query = `INSERT INTO session_catalog (id, category, name, grade, concepts, techniques, type_label)
        VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (id) DO NOTHING`
	inserted := 0
	for _, row := range rows {
		concepts := row.Concepts
		if concepts == nil {
			concepts = []string{}
		}
		techniques := row.Techniques
		if techniques == nil {
			techniques = []string{}
		}
		res, err := db.ExecContext(ctx, query, row.ID, row.Category, row.Name, row.Grade,
			pq.StringArray(concepts), pq.StringArray(techniques), row.TypeLabel)
		if err != nil {
			return inserted, fmt.Errorf("insert %s: %w", row.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}
