package database

import (
	"strings"
	"testing"
	"time"

	"github.com/kapu/kokkai-giin-go/internal/domain"
)

func TestPrepareRowsSkipsIncompleteRecords(t *testing.T) {
	records := []domain.MemberRecord{
		{ID: "hr-001", Name: "逢沢　一郎", Party: "自民", District: "岡山1", Chamber: domain.ChamberRepresentatives, TermEnd: "令和9年10月30日"},
		{ID: "", Name: "識別子なし", Chamber: domain.ChamberRepresentatives},
		{ID: "hc-001", Name: "", Chamber: domain.ChamberCouncillors},
		{ID: "hc-002", Name: "青木　一彦", Chamber: ""},
		{ID: "hc-003", Name: "足立　敏之", Party: "自民", Chamber: domain.ChamberCouncillors},
	}

	rows, summary := prepareRows(records)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if summary.Total != 5 || summary.Skipped != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Loaded != 0 {
		t.Fatalf("Loaded must stay zero until commit, got %d", summary.Loaded)
	}
	if summary.ByChamber[domain.ChamberRepresentatives] != 1 || summary.ByChamber[domain.ChamberCouncillors] != 1 {
		t.Fatalf("unexpected chamber tally: %v", summary.ByChamber)
	}

	first := rows[0]
	if first.Chamber != "衆議院" {
		t.Fatalf("expected Japanese chamber label, got %q", first.Chamber)
	}
	if !first.TermEnd.Valid || first.TermEnd.String != "令和9年10月30日" {
		t.Fatalf("expected term end bound, got %+v", first.TermEnd)
	}
	if first.NameKana.Valid || first.PhotoURL.Valid {
		t.Fatalf("empty strings must bind as NULL: %+v", first)
	}

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	args := first.args(now)
	if len(args) != 10 || args[9] != now {
		t.Fatalf("unexpected bind args: %v", args)
	}
}

func TestUpsertStatementTargetsEveryColumn(t *testing.T) {
	for _, column := range []string{"name", "name_kana", "party", "district", "chamber", "photo_url", "term_end", "profile_url", "updated_at"} {
		if !strings.Contains(upsertPolitician, "EXCLUDED."+column) {
			t.Errorf("upsert does not update %s", column)
		}
	}
	if strings.Contains(upsertPolitician, "EXCLUDED.created_at") {
		t.Errorf("created_at must survive an update")
	}
	if !strings.Contains(upsertPolitician, "ON CONFLICT (id)") {
		t.Fatalf("upsert must conflict on id")
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]domain.MemberRecord{
		{ID: "hr-001", Name: "逢沢　一郎", Chamber: domain.ChamberRepresentatives},
		{ID: "hr-002", Name: "", Chamber: domain.ChamberRepresentatives},
	})
	if summary.Total != 2 || summary.Skipped != 1 || summary.ByChamber[domain.ChamberRepresentatives] != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestPostgresConfigDSN(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: 5433, User: "giin", Password: "secret", Database: "kokkai"}

	dsn := cfg.DSN()
	if dsn != "host=db port=5433 user=giin password=secret dbname=kokkai sslmode=disable" {
		t.Fatalf("unexpected dsn: %s", dsn)
	}

	cfg.SSLMode = "require"
	if !strings.HasSuffix(cfg.DSN(), "sslmode=require") {
		t.Fatalf("expected sslmode override, got %s", cfg.DSN())
	}
}
