package dataset

import (
	"context"

	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/pkg/errors"
)

// MergeResult describes one merge. Written is false when both chamber
// collections were empty or missing and the canonical file was left alone.
type MergeResult struct {
	Records []domain.MemberRecord
	Counts  map[domain.Chamber]int
	Path    string
	Written bool
}

// Merger concatenates the chamber collections into the canonical collection.
type Merger struct {
	store     *Store
	canonical string
	logger    *zap.Logger
}

func NewMerger(store *Store, canonical string, logger *zap.Logger) *Merger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Merger{
		store:     store,
		canonical: canonical,
		logger:    logger,
	}
}

type chamberLoad struct {
	chamber domain.Chamber
	records []domain.MemberRecord
	err     error
}

// Merge reads the lower chamber collection followed by the upper one. A missing
// file counts as empty; any other read failure aborts the merge.
func (m *Merger) Merge(ctx context.Context) (*MergeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loads := make([]chamberLoad, 0, len(domain.Chambers))
	for _, chamber := range domain.Chambers {
		records, err := m.store.Load(chamber.FileName())
		loads = append(loads, chamberLoad{chamber: chamber, records: records, err: err})
	}

	result := &MergeResult{
		Records: make([]domain.MemberRecord, 0),
		Counts:  make(map[domain.Chamber]int, len(loads)),
		Path:    m.store.Path(m.canonical),
	}

	for _, load := range loads {
		if load.err != nil {
			if !errors.IsNotExist(load.err) {
				return nil, load.err
			}
			m.logger.Warn("Chamber collection not found, treating as empty",
				zap.String("chamber", load.chamber.String()),
				zap.String("path", m.store.Path(load.chamber.FileName())),
			)
		}

		result.Counts[load.chamber] = len(load.records)
		result.Records = append(result.Records, load.records...)
	}

	if len(result.Records) == 0 {
		m.logger.Warn("No members to merge, canonical collection not written",
			zap.String("path", result.Path))
		return result, nil
	}

	path, err := m.store.Save(m.canonical, result.Records)
	if err != nil {
		return nil, err
	}
	result.Path = path
	result.Written = true

	m.logger.Info("Merged chamber collections",
		zap.Int("representatives", result.Counts[domain.ChamberRepresentatives]),
		zap.Int("councillors", result.Counts[domain.ChamberCouncillors]),
		zap.Int("total", len(result.Records)),
		zap.String("output", path),
	)

	return result, nil
}
