package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kapu/kokkai-giin-go/internal/domain"
)

func TestMergerConcatenatesLowerThenUpper(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	lower := []domain.MemberRecord{
		sampleRecord("hr-001", "逢沢　一郎", domain.ChamberRepresentatives),
		sampleRecord("hr-002", "青柳　陽一郎", domain.ChamberRepresentatives),
	}
	upper := []domain.MemberRecord{
		sampleRecord("hc-001", "青木　一彦", domain.ChamberCouncillors),
	}

	if _, err := store.Save(domain.ChamberCouncillors.FileName(), upper); err != nil {
		t.Fatalf("failed to seed upper: %v", err)
	}
	if _, err := store.Save(domain.ChamberRepresentatives.FileName(), lower); err != nil {
		t.Fatalf("failed to seed lower: %v", err)
	}

	result, err := NewMerger(store, "politicians.json", nil).Merge(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Written {
		t.Fatalf("expected canonical collection to be written")
	}

	expected := append(append([]domain.MemberRecord{}, lower...), upper...)
	if diff := cmp.Diff(expected, result.Records); diff != "" {
		t.Fatalf("unexpected merge order (-want +got):\n%s", diff)
	}

	persisted, err := store.Load("politicians.json")
	if err != nil {
		t.Fatalf("failed to load canonical: %v", err)
	}
	if diff := cmp.Diff(expected, persisted); diff != "" {
		t.Fatalf("persisted canonical mismatch (-want +got):\n%s", diff)
	}

	if result.Counts[domain.ChamberRepresentatives] != 2 || result.Counts[domain.ChamberCouncillors] != 1 {
		t.Fatalf("unexpected counts: %v", result.Counts)
	}
}

func TestMergerTreatsMissingChamberAsEmpty(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	upper := []domain.MemberRecord{sampleRecord("hc-001", "青木　一彦", domain.ChamberCouncillors)}
	if _, err := store.Save(domain.ChamberCouncillors.FileName(), upper); err != nil {
		t.Fatalf("failed to seed upper: %v", err)
	}

	result, err := NewMerger(store, "politicians.json", nil).Merge(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Written || len(result.Records) != 1 {
		t.Fatalf("expected the upper chamber alone to be written, got %+v", result)
	}
	if result.Counts[domain.ChamberRepresentatives] != 0 {
		t.Fatalf("missing chamber should count as zero, got %d", result.Counts[domain.ChamberRepresentatives])
	}
}

func TestMergerSkipsWriteWhenNothingToMerge(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)

	if _, err := store.Save(domain.ChamberRepresentatives.FileName(), nil); err != nil {
		t.Fatalf("failed to seed lower: %v", err)
	}

	result, err := NewMerger(store, "politicians.json", nil).Merge(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Written {
		t.Fatalf("expected nothing to be written")
	}
	if _, err := os.Stat(filepath.Join(dir, "politicians.json")); !os.IsNotExist(err) {
		t.Fatalf("canonical file must not exist, stat err = %v", err)
	}
}

func TestMergerFailsOnCorruptCollection(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, domain.ChamberRepresentatives.FileName()), []byte("[{"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := NewMerger(NewStore(dir, nil), "politicians.json", nil).Merge(context.Background())
	if err == nil {
		t.Fatalf("expected error for a corrupt collection")
	}
}
