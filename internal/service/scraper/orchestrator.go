package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/pkg/errors"
)

// PauseFunc blocks between requests. It returns early with ctx's error.
type PauseFunc func(ctx context.Context) error

// FixedPause waits d after every call.
func FixedPause(d time.Duration) PauseFunc {
	return func(ctx context.Context) error {
		if d <= 0 {
			return ctx.Err()
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}

// CollectionWriter persists a chamber collection and returns its path.
type CollectionWriter interface {
	Save(name string, records []domain.MemberRecord) (string, error)
}

// RunResult summarises one chamber run.
type RunResult struct {
	Chamber    domain.Chamber
	Records    []domain.MemberRecord
	Path       string
	Listed     int
	Degraded   int
	Duplicates int
}

// Orchestrator scrapes one chamber: list pages, then every profile, one
// request at a time.
type Orchestrator struct {
	extractor Extractor
	fetcher   Fetcher
	writer    CollectionWriter
	pause     PauseFunc
	logger    *zap.Logger
}

func NewOrchestrator(extractor Extractor, fetcher Fetcher, writer CollectionWriter, pause PauseFunc, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pause == nil {
		pause = FixedPause(0)
	}
	return &Orchestrator{
		extractor: extractor,
		fetcher:   fetcher,
		writer:    writer,
		pause:     pause,
		logger:    logger.With(zap.String("chamber", extractor.Chamber().String())),
	}
}

func (o *Orchestrator) Chamber() domain.Chamber {
	return o.extractor.Chamber()
}

// Run scrapes the chamber and writes its collection. When no member table can
// be found an empty collection is written and the StructureError returned.
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	chamber := o.extractor.Chamber()
	result := &RunResult{Chamber: chamber, Records: []domain.MemberRecord{}}

	o.logger.Info("Starting chamber scrape", zap.Strings("list_urls", o.extractor.ListURLs()))

	partials, err := o.collectPartials(ctx)
	if err != nil {
		if !errors.IsStructureError(err) {
			return nil, err
		}
		o.logger.Error("Could not locate the member list", zap.Error(err))
		path, saveErr := o.writer.Save(chamber.FileName(), result.Records)
		if saveErr != nil {
			return nil, fmt.Errorf("failed to write empty collection: %w", saveErr)
		}
		result.Path = path
		return result, err
	}
	result.Listed = len(partials)

	if len(partials) == 0 {
		o.logger.Warn("No members found on list pages, check selectors and page structure")
	}

	seen := make(map[string]struct{}, len(partials))
	for idx, partial := range partials {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		o.logger.Info("Processing member",
			zap.Int("index", idx+1),
			zap.Int("total", len(partials)),
			zap.String("name", partial.Name),
		)

		record, degraded, err := o.buildRecord(ctx, partial)
		if err != nil {
			return nil, err
		}
		if degraded {
			result.Degraded++
		}

		if record.ID == "" {
			o.logger.Warn("Skipping member without identifier",
				zap.String("name", record.Name),
				zap.String("url", record.ProfileURL))
			continue
		}
		if _, dup := seen[record.ID]; dup {
			result.Duplicates++
			o.logger.Warn("Skipping duplicate member",
				zap.String("id", record.ID),
				zap.String("name", record.Name))
			continue
		}
		seen[record.ID] = struct{}{}

		result.Records = append(result.Records, record)
	}

	path, err := o.writer.Save(chamber.FileName(), result.Records)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s collection: %w", chamber, err)
	}
	result.Path = path

	o.logger.Info("Chamber scrape complete",
		zap.Int("listed", result.Listed),
		zap.Int("saved", len(result.Records)),
		zap.Int("degraded", result.Degraded),
		zap.Int("duplicates", result.Duplicates),
		zap.String("output", path),
	)

	return result, nil
}

// collectPartials reads every list page. A page that cannot be fetched or has
// no table is skipped; only when no page has a table is the run a structural failure.
func (o *Orchestrator) collectPartials(ctx context.Context) ([]domain.PartialRecord, error) {
	listURLs := o.extractor.ListURLs()
	partials := make([]domain.PartialRecord, 0)
	tablesFound := 0

	for idx, listURL := range listURLs {
		markup, err := o.fetcher.Fetch(ctx, listURL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			o.logger.Warn("Failed to fetch member list page", zap.String("url", listURL), zap.Error(err))
		} else {
			records, err := o.extractor.ExtractList(markup, listURL)
			if err != nil {
				o.logger.Warn("Failed to extract member list page", zap.String("url", listURL), zap.Error(err))
			} else {
				tablesFound++
				partials = append(partials, records...)
			}
		}

		if idx < len(listURLs)-1 {
			if err := o.pause(ctx); err != nil {
				return nil, err
			}
		}
	}

	if tablesFound == 0 {
		return nil, errors.NewStructureError("could not find the member table on any list page",
			o.extractor.Chamber().String(), listURLs)
	}

	o.logger.Info("Collected member entries from list pages",
		zap.Int("pages", tablesFound),
		zap.Int("members", len(partials)),
	)

	return partials, nil
}

// buildRecord fetches and enriches one profile. A failed fetch or a panicking
// extractor degrades the record to its list fields plus the URL-derived id.
// Only cancellation is returned as an error.
func (o *Orchestrator) buildRecord(ctx context.Context, partial domain.PartialRecord) (domain.MemberRecord, bool, error) {
	var enrichment domain.Enrichment
	degraded := false

	markup, err := o.fetcher.Fetch(ctx, partial.ProfileURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.MemberRecord{}, false, ctxErr
		}
		degraded = true
		o.logger.Warn("Failed to fetch profile",
			zap.String("name", partial.Name),
			zap.String("url", partial.ProfileURL),
			zap.Error(err),
		)
	} else {
		var catcher panics.Catcher
		catcher.Try(func() {
			enrichment = o.extractor.EnrichProfile(markup, partial.ProfileURL, partial.Name)
		})
		if recovered := catcher.Recovered(); recovered != nil {
			enrichment = domain.Enrichment{}
			degraded = true
			o.logger.Error("Profile enrichment panicked",
				zap.String("name", partial.Name),
				zap.String("url", partial.ProfileURL),
				zap.Error(recovered.AsError()),
			)
		}
	}

	if err := o.pause(ctx); err != nil {
		return domain.MemberRecord{}, false, err
	}

	enrichment.ID = enrichment.ID.OrElse(o.extractor.MemberID(partial.ProfileURL))

	return partial.Build(o.extractor.Chamber(), enrichment), degraded, nil
}
