package scraper

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/constants"
	"github.com/kapu/kokkai-giin-go/internal/domain"
)

var (
	sangiinProfileIDPattern = regexp.MustCompile(`/profile/(\d+)\.htm`)
	sangiinNameHeader       = regexp.MustCompile(`氏\s*名`)
	// [正字], [ホームページ] and similar link annotations
	bracketAnnotation = regexp.MustCompile(`\s*(\[.*?\]|［.*?］)\s*`)
)

// CouncillorsExtractor understands the sangiin.go.jp member directory.
type CouncillorsExtractor struct {
	listURLs []string
	rules    listRules
	logger   *zap.Logger
}

func NewCouncillorsExtractor(listURLs []string, logger *zap.Logger) *CouncillorsExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(listURLs) == 0 {
		listURLs = constants.SangiinListURLs
	}

	return &CouncillorsExtractor{
		listURLs: listURLs,
		logger:   logger,
		rules: listRules{
			chamber: domain.ChamberCouncillors,
			tables: []TableStrategy{
				tableBySelector("list-class", `table.tb_giinlist, table.giinIchiran, table[summary*="議員一覧"]`),
				largestTable(),
				tableWithHeader(sangiinNameHeader),
			},
			skipHeader: func(index int, row *goquery.Selection) bool {
				return index == 0 && row.Find("th").Length() > 0
			},
			cleanName: cleanCouncillorName,
		},
	}
}

// cleanCouncillorName removes bracketed annotations and rejects kana index
// rows such as "あ行".
func cleanCouncillorName(raw string) (string, bool) {
	name := strings.TrimSpace(bracketAnnotation.ReplaceAllString(raw, ""))
	if utf8.RuneCountInString(name) < 2 || strings.HasSuffix(name, "行") {
		return "", false
	}
	return name, true
}

func (e *CouncillorsExtractor) Chamber() domain.Chamber {
	return domain.ChamberCouncillors
}

func (e *CouncillorsExtractor) ListURLs() []string {
	return e.listURLs
}

func (e *CouncillorsExtractor) ExtractList(markup, pageURL string) ([]domain.PartialRecord, error) {
	return extractRows(markup, pageURL, e.rules, e.logger)
}

func (e *CouncillorsExtractor) MemberID(profileURL string) domain.Opt {
	return memberID(domain.ChamberCouncillors, sangiinProfileIDPattern, profileURL)
}

func (e *CouncillorsExtractor) EnrichProfile(markup, profileURL, name string) domain.Enrichment {
	return enrich(markup, profileURL, domain.ChamberCouncillors, e.MemberID(profileURL),
		constants.PhotoURLTemplates.Sangiin,
		[]FieldStrategy{
			kanaByClass(".kana, .furigana, span.fsSmall"),
			kanaInNamedHeading("h1, h2, h3", name),
		},
		[]FieldStrategy{
			termEndInElements("td, th, p, span, div"),
			termEndInPage(),
		},
		e.logger,
	)
}
