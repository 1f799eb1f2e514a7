package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kapu/kokkai-giin-go/internal/domain"
)

const termEndLabel = "任期満了"

// termEndPattern captures an era (令和/平成/昭和) or Gregorian date following the
// 任期満了 label. Digits may be half- or full-width. The date is kept verbatim.
var termEndPattern = regexp.MustCompile(
	`任期満了[：:日\s\x{3000}]*(` +
		`(?:令和|平成|昭和)[\s\x{3000}]?(?:[0-9０-９]{1,2}|元)年[\s\x{3000}]?[0-9０-９]{1,2}月[\s\x{3000}]?[0-9０-９]{1,2}日` +
		`|[0-9０-９]{4}年[\s\x{3000}]?[0-9０-９]{1,2}月[\s\x{3000}]?[0-9０-９]{1,2}日` +
		`)`,
)

// MatchTermEnd returns the labelled date in text, if any.
func MatchTermEnd(text string) domain.Opt {
	if !strings.Contains(text, termEndLabel) {
		return domain.None()
	}
	match := termEndPattern.FindStringSubmatch(text)
	if match == nil {
		return domain.None()
	}
	return domain.SomeNonEmpty(strings.TrimSpace(match[1]))
}

// termEndInElements scans elements matching selector in document order.
func termEndInElements(selector string) FieldStrategy {
	return FieldStrategy{
		Name: "term-end-elements",
		Extract: func(doc *goquery.Document) domain.Opt {
			result := domain.None()
			doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
				result = MatchTermEnd(strings.TrimSpace(sel.Text()))
				return !result.IsSome()
			})
			return result
		},
	}
}

func termEndInPage() FieldStrategy {
	return FieldStrategy{
		Name: "term-end-page",
		Extract: func(doc *goquery.Document) domain.Opt {
			return MatchTermEnd(doc.Text())
		},
	}
}
