package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/internal/util"
)

const politiciansSchema = `
CREATE TABLE IF NOT EXISTS politicians (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	name_kana   TEXT,
	party       TEXT,
	district    TEXT,
	chamber     TEXT NOT NULL,
	photo_url   TEXT,
	term_end    TEXT,
	profile_url TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_politicians_chamber ON politicians (chamber);
`

const upsertPolitician = `
INSERT INTO politicians (id, name, name_kana, party, district, chamber, photo_url, term_end, profile_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
ON CONFLICT (id) DO UPDATE SET
	name        = EXCLUDED.name,
	name_kana   = EXCLUDED.name_kana,
	party       = EXCLUDED.party,
	district    = EXCLUDED.district,
	chamber     = EXCLUDED.chamber,
	photo_url   = EXCLUDED.photo_url,
	term_end    = EXCLUDED.term_end,
	profile_url = EXCLUDED.profile_url,
	updated_at  = EXCLUDED.updated_at
`

// politicianRow is a MemberRecord as bound to the upsert statement.
type politicianRow struct {
	ID         string
	Name       string
	NameKana   sql.NullString
	Party      sql.NullString
	District   sql.NullString
	Chamber    string
	PhotoURL   sql.NullString
	TermEnd    sql.NullString
	ProfileURL sql.NullString
}

func (r politicianRow) args(now time.Time) []any {
	return []any{r.ID, r.Name, r.NameKana, r.Party, r.District, r.Chamber, r.PhotoURL, r.TermEnd, r.ProfileURL, now}
}

// LoadSummary reports what an upsert did, or would do in a dry run.
type LoadSummary struct {
	Total     int
	Loaded    int
	Skipped   int
	ByChamber map[domain.Chamber]int
}

type PoliticianRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPoliticianRepository(postgres *PostgresService, logger *zap.Logger) *PoliticianRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PoliticianRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

func (r *PoliticianRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, politiciansSchema); err != nil {
		return fmt.Errorf("failed to create politicians schema: %w", err)
	}
	return nil
}

// Upsert writes records in one transaction. Records lacking an id, a name or
// a chamber are skipped.
func (r *PoliticianRepository) Upsert(ctx context.Context, records []domain.MemberRecord) (*LoadSummary, error) {
	rows, summary := prepareRows(records)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertPolitician)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := util.NowJST()
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row.args(now)...); err != nil {
			return nil, fmt.Errorf("failed to upsert politician %s: %w", row.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit politicians: %w", err)
	}

	summary.Loaded = len(rows)

	r.logger.Info("Politicians loaded",
		zap.Int("loaded", summary.Loaded),
		zap.Int("skipped", summary.Skipped),
	)

	return summary, nil
}

// Count returns the number of stored politicians, optionally for one chamber.
func (r *PoliticianRepository) Count(ctx context.Context, chamber domain.Chamber) (int, error) {
	var (
		count int
		err   error
	)
	if chamber == "" {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM politicians`).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM politicians WHERE chamber = $1`, chamber.String()).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count politicians: %w", err)
	}
	return count, nil
}

// Summarize tallies what Upsert would load, for dry runs.
func Summarize(records []domain.MemberRecord) *LoadSummary {
	_, summary := prepareRows(records)
	return summary
}

// prepareRows converts records to bindable rows. Loaded is left for the
// caller to fill after a commit.
func prepareRows(records []domain.MemberRecord) ([]politicianRow, *LoadSummary) {
	summary := &LoadSummary{
		Total:     len(records),
		ByChamber: make(map[domain.Chamber]int),
	}
	rows := make([]politicianRow, 0, len(records))

	for _, record := range records {
		if record.ID == "" || record.Name == "" || record.Chamber == "" {
			summary.Skipped++
			continue
		}
		rows = append(rows, politicianRow{
			ID:         record.ID,
			Name:       record.Name,
			NameKana:   nullString(record.NameKana),
			Party:      nullString(record.Party),
			District:   nullString(record.District),
			Chamber:    record.Chamber.String(),
			PhotoURL:   nullString(record.PhotoURL),
			TermEnd:    nullString(record.TermEnd),
			ProfileURL: nullString(record.ProfileURL),
		})
		summary.ByChamber[record.Chamber]++
	}

	return rows, summary
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
