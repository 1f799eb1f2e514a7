package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/constants"
	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/internal/util"
	"github.com/kapu/kokkai-giin-go/pkg/errors"
)

// Extractor holds the site-specific heuristics of one chamber.
type Extractor interface {
	Chamber() domain.Chamber
	ListURLs() []string
	// ExtractList parses a member directory page. It fails only when no member
	// table can be located.
	ExtractList(markup, pageURL string) ([]domain.PartialRecord, error)
	// EnrichProfile never fails; fields it cannot find are absent.
	EnrichProfile(markup, profileURL, name string) domain.Enrichment
	// MemberID derives the chamber-prefixed identifier from a profile URL.
	MemberID(profileURL string) domain.Opt
}

// NewExtractor returns the extractor for chamber.
func NewExtractor(chamber domain.Chamber, listURLs []string, logger *zap.Logger) (Extractor, error) {
	switch chamber {
	case domain.ChamberRepresentatives:
		return NewRepresentativesExtractor(listURLs, logger), nil
	case domain.ChamberCouncillors:
		return NewCouncillorsExtractor(listURLs, logger), nil
	default:
		return nil, errors.NewValidationError("unknown chamber", "chamber", chamber)
	}
}

// listRules captures how a chamber's directory table differs from the other's.
type listRules struct {
	chamber    domain.Chamber
	tables     []TableStrategy
	skipHeader func(index int, row *goquery.Selection) bool
	// cleanName strips annotations; false drops the row without a diagnostic.
	cleanName func(raw string) (string, bool)
}

func parseDocument(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("HTML parse failed: %w", err)
	}
	return doc, nil
}

func extractRows(markup, pageURL string, rules listRules, logger *zap.Logger) ([]domain.PartialRecord, error) {
	doc, err := parseDocument(markup)
	if err != nil {
		return nil, err
	}

	table, strategy := selectTable(doc, rules.tables)
	if table == nil {
		return nil, errors.NewStructureError("member table not found", rules.chamber.String(), []string{pageURL})
	}

	logger.Debug("Member table located",
		zap.String("chamber", rules.chamber.String()),
		zap.String("url", pageURL),
		zap.String("strategy", strategy),
	)

	records := make([]domain.PartialRecord, 0)
	dropped := 0

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if rules.skipHeader(i, row) {
			return
		}

		cells := row.Find("td")
		if cells.Length() < constants.ScraperConfig.MinRowCells {
			return
		}

		nameCell := cells.Eq(0)
		link := nameCell.Find("a").First()
		if link.Length() == 0 {
			logger.Debug("Skipping row without a profile link",
				zap.String("cell", util.TruncateString(util.CleanText(nameCell.Text()), 40)))
			return
		}

		name, ok := rules.cleanName(util.CleanText(link.Text()))
		if !ok {
			return
		}

		href, _ := link.Attr("href")
		record := domain.PartialRecord{
			Name:       name,
			Party:      util.CleanText(cells.Eq(2).Text()),
			District:   util.CleanText(cells.Eq(3).Text()),
			ProfileURL: resolveURL(pageURL, href),
		}

		if !record.Complete() {
			dropped++
			logger.Debug("Skipping row due to missing data",
				zap.String("name", record.Name),
				zap.String("party", record.Party),
				zap.String("district", record.District),
				zap.String("url", record.ProfileURL),
			)
			return
		}

		records = append(records, record)
	})

	logger.Info("Parsed member list page",
		zap.String("chamber", rules.chamber.String()),
		zap.String("url", pageURL),
		zap.Int("members", len(records)),
		zap.Int("dropped", dropped),
	)

	return records, nil
}

func resolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(refURL).String()
}

// memberID applies pattern to profileURL and falls back to the final path
// segment without its extension.
func memberID(chamber domain.Chamber, pattern *regexp.Regexp, profileURL string) domain.Opt {
	if match := pattern.FindStringSubmatch(profileURL); match != nil {
		return domain.Some(chamber.Tag() + "-" + match[1])
	}
	segment := finalSegment(profileURL)
	if segment == "" {
		return domain.None()
	}
	return domain.Some(chamber.Tag() + "-" + segment)
}

func finalSegment(rawURL string) string {
	p := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		p = parsed.Path
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	segment := p[strings.LastIndex(p, "/")+1:]
	if idx := strings.Index(segment, "."); idx >= 0 {
		segment = segment[:idx]
	}
	return segment
}

// photoURL substitutes the numeric part of id into template.
func photoURL(chamber domain.Chamber, template string, id domain.Opt) domain.Opt {
	value, ok := id.Get()
	if !ok || value == "" {
		return domain.None()
	}
	numeric := strings.TrimPrefix(value, chamber.Tag()+"-")
	return domain.Some(strings.ReplaceAll(template, "{id}", numeric))
}

// enrich runs the shared profile pipeline with chamber-specific strategies.
func enrich(markup, profileURL string, chamber domain.Chamber, id domain.Opt, template string,
	kana, termEnd []FieldStrategy, logger *zap.Logger) domain.Enrichment {
	enrichment := domain.Enrichment{
		ID:       id,
		PhotoURL: photoURL(chamber, template, id),
	}

	doc, err := parseDocument(markup)
	if err != nil {
		logger.Warn("Failed to parse profile page",
			zap.String("chamber", chamber.String()),
			zap.String("url", profileURL),
			zap.Error(err),
		)
		return enrichment
	}

	var kanaSource, termSource string
	enrichment.NameKana, kanaSource = firstField(doc, kana)
	enrichment.TermEnd, termSource = firstField(doc, termEnd)

	logger.Debug("Profile enriched",
		zap.String("url", profileURL),
		zap.String("kana_strategy", kanaSource),
		zap.String("term_end_strategy", termSource),
	)

	return enrichment
}
