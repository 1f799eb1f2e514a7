package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/constants"
	"github.com/kapu/kokkai-giin-go/internal/domain"
)

var (
	shugiinProfileIDPattern = regexp.MustCompile(`/profile/(\d+)\.html`)
	shugiinNameHeader       = regexp.MustCompile(`氏\s*名`)
)

// RepresentativesExtractor understands the shugiin.go.jp member directory.
type RepresentativesExtractor struct {
	listURLs []string
	rules    listRules
	logger   *zap.Logger
}

func NewRepresentativesExtractor(listURLs []string, logger *zap.Logger) *RepresentativesExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(listURLs) == 0 {
		listURLs = constants.ShugiinListURLs
	}

	return &RepresentativesExtractor{
		listURLs: listURLs,
		logger:   logger,
		rules: listRules{
			chamber: domain.ChamberRepresentatives,
			tables: []TableStrategy{
				tableBySelector("border-attribute", `table[border="1"]`),
				largestTable(),
				tableWithHeader(shugiinNameHeader),
			},
			skipHeader: func(index int, _ *goquery.Selection) bool {
				return index == 0
			},
			cleanName: cleanRepresentativeName,
		},
	}
}

// cleanRepresentativeName drops the trailing honorific 君 the directory appends.
func cleanRepresentativeName(raw string) (string, bool) {
	name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "君"))
	return name, true
}

func (e *RepresentativesExtractor) Chamber() domain.Chamber {
	return domain.ChamberRepresentatives
}

func (e *RepresentativesExtractor) ListURLs() []string {
	return e.listURLs
}

func (e *RepresentativesExtractor) ExtractList(markup, pageURL string) ([]domain.PartialRecord, error) {
	return extractRows(markup, pageURL, e.rules, e.logger)
}

func (e *RepresentativesExtractor) MemberID(profileURL string) domain.Opt {
	return memberID(domain.ChamberRepresentatives, shugiinProfileIDPattern, profileURL)
}

func (e *RepresentativesExtractor) EnrichProfile(markup, profileURL, _ string) domain.Enrichment {
	return enrich(markup, profileURL, domain.ChamberRepresentatives, e.MemberID(profileURL),
		constants.PhotoURLTemplates.Shugiin,
		[]FieldStrategy{
			kanaByClass(".kana, .furigana"),
			kanaInFirstHeading("h2"),
		},
		[]FieldStrategy{
			termEndInElements("p, div, li"),
			termEndInPage(),
		},
		e.logger,
	)
}
