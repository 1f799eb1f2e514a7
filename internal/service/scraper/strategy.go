package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/internal/util"
)

// TableStrategy is one way of locating the member table on a list page.
type TableStrategy struct {
	Name string
	Find func(doc *goquery.Document) *goquery.Selection
}

// FieldStrategy is one way of extracting a single profile field.
type FieldStrategy struct {
	Name    string
	Extract func(doc *goquery.Document) domain.Opt
}

// selectTable returns the first table with rows produced by strategies, in order.
func selectTable(doc *goquery.Document, strategies []TableStrategy) (*goquery.Selection, string) {
	for _, strategy := range strategies {
		table := strategy.Find(doc)
		if table == nil || table.Length() == 0 {
			continue
		}
		table = table.First()
		if table.Find("tr").Length() == 0 {
			continue
		}
		return table, strategy.Name
	}
	return nil, ""
}

// firstField returns the first present, non-empty value among strategies.
func firstField(doc *goquery.Document, strategies []FieldStrategy) (domain.Opt, string) {
	for _, strategy := range strategies {
		value := strategy.Extract(doc)
		if v, ok := value.Get(); ok && v != "" {
			return value, strategy.Name
		}
	}
	return domain.None(), ""
}

func tableBySelector(name, selector string) TableStrategy {
	return TableStrategy{
		Name: name,
		Find: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find(selector).First()
		},
	}
}

// largestTable picks the table with the most rows. Ties keep the earlier table.
func largestTable() TableStrategy {
	return TableStrategy{
		Name: "largest-table",
		Find: func(doc *goquery.Document) *goquery.Selection {
			var best *goquery.Selection
			bestRows := 0
			doc.Find("table").Each(func(_ int, table *goquery.Selection) {
				if rows := table.Find("tr").Length(); rows > bestRows {
					best = table
					bestRows = rows
				}
			})
			return best
		},
	}
}

// tableWithHeader picks the first table with a header cell matching pattern.
// The parser gives every header cell a row, so behind largestTable this is a
// last safeguard and rarely decides anything on its own.
func tableWithHeader(pattern *regexp.Regexp) TableStrategy {
	return TableStrategy{
		Name: "header-match",
		Find: func(doc *goquery.Document) *goquery.Selection {
			var found *goquery.Selection
			doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
				matched := false
				table.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
					matched = pattern.MatchString(th.Text())
					return !matched
				})
				if matched {
					found = table
					return false
				}
				return true
			})
			return found
		},
	}
}

var (
	parentheticalPattern = regexp.MustCompile(`[（(]\s*([^（()）]+?)\s*[）)]`)
	// the lower chamber's headings are sometimes cut before the closing paren
	openParentheticalPattern = regexp.MustCompile(`[（(]\s*([^（()）]+)`)
)

func kanaByClass(selector string) FieldStrategy {
	return FieldStrategy{
		Name: "kana-class",
		Extract: func(doc *goquery.Document) domain.Opt {
			element := doc.Find(selector).First()
			if element.Length() == 0 {
				return domain.None()
			}
			return domain.SomeNonEmpty(util.CleanText(element.Text()))
		},
	}
}

// kanaInFirstHeading reads "氏名（ふりがな）" from the first heading matching
// selector. The closing paren is optional.
func kanaInFirstHeading(selector string) FieldStrategy {
	return FieldStrategy{
		Name: "heading-parenthetical",
		Extract: func(doc *goquery.Document) domain.Opt {
			heading := doc.Find(selector).First()
			if heading.Length() == 0 {
				return domain.None()
			}
			return openParenthetical(heading.Text())
		},
	}
}

// kanaInNamedHeading reads the parenthetical from the first heading that mentions name.
func kanaInNamedHeading(selector, name string) FieldStrategy {
	return FieldStrategy{
		Name: "named-heading-parenthetical",
		Extract: func(doc *goquery.Document) domain.Opt {
			var heading *goquery.Selection
			doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
				if util.ContainsName(sel.Text(), name) {
					heading = sel
					return false
				}
				return true
			})
			if heading == nil {
				return domain.None()
			}
			return parenthetical(heading.Text())
		},
	}
}

func parenthetical(text string) domain.Opt {
	match := parentheticalPattern.FindStringSubmatch(text)
	if match == nil {
		return domain.None()
	}
	return domain.SomeNonEmpty(util.CleanText(strings.TrimSpace(match[1])))
}

func openParenthetical(text string) domain.Opt {
	match := openParentheticalPattern.FindStringSubmatch(text)
	if match == nil {
		return domain.None()
	}
	return domain.SomeNonEmpty(util.CleanText(match[1]))
}
