package commands

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/internal/service/database"
)

func TestChambersFor(t *testing.T) {
	tests := []struct {
		target string
		want   []domain.Chamber
	}{
		{"", domain.Chambers},
		{"all", domain.Chambers},
		{"lower", []domain.Chamber{domain.ChamberRepresentatives}},
		{"upper", []domain.Chamber{domain.ChamberCouncillors}},
		{"参議院", []domain.Chamber{domain.ChamberCouncillors}},
	}

	for _, tt := range tests {
		got, err := chambersFor(tt.target)
		if err != nil {
			t.Fatalf("chambersFor(%q) error: %v", tt.target, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("chambersFor(%q) mismatch (-want +got):\n%s", tt.target, diff)
		}
	}
}

func TestChambersForRejectsUnknown(t *testing.T) {
	if _, err := chambersFor("senate"); err == nil {
		t.Fatalf("expected error for unknown chamber")
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, &database.LoadSummary{
		Total:   3,
		Loaded:  2,
		Skipped: 1,
		ByChamber: map[domain.Chamber]int{
			domain.ChamberRepresentatives: 2,
		},
	})

	out := buf.String()
	for _, want := range []string{"Total records:  3", "Loaded:         2", "Skipped:        1", "衆議院: 2", "参議院: 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

type fakeCounter struct {
	counts map[domain.Chamber]int
	err    error
}

func (f fakeCounter) Count(_ context.Context, chamber domain.Chamber) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if chamber == "" {
		total := 0
		for _, count := range f.counts {
			total += count
		}
		return total, nil
	}
	return f.counts[chamber], nil
}

func TestPrintStoredCounts(t *testing.T) {
	var buf bytes.Buffer
	counter := fakeCounter{counts: map[domain.Chamber]int{
		domain.ChamberRepresentatives: 465,
		domain.ChamberCouncillors:     248,
	}}

	if err := printStoredCounts(context.Background(), &buf, counter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Stored in database: 713", "衆議院: 465", "参議院: 248"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintStoredCountsPropagatesError(t *testing.T) {
	var buf bytes.Buffer
	err := printStoredCounts(context.Background(), &buf, fakeCounter{err: fmt.Errorf("connection reset")})
	if err == nil {
		t.Fatalf("expected count error")
	}
}
