package kokkai

import (
	"strconv"
	"strings"

	"github.com/kapu/kokkai-giin-go/internal/constants"
)

// SpeechQuery searches individual remarks (発言).
type SpeechQuery struct {
	Speaker string
	From    string
	Until   string
	Meeting string
	Keyword string
	Page    int
}

// MeetingQuery searches meeting records (会議).
type MeetingQuery struct {
	From          string
	Until         string
	NameOfHouse   string
	NameOfMeeting string
	Page          int
}

// Params maps the query onto the API's parameter names. Empty values are omitted.
func (q SpeechQuery) Params() map[string]string {
	params := pageParams(q.Page)
	setIfPresent(params, "speaker", q.Speaker)
	setIfPresent(params, "from", q.From)
	setIfPresent(params, "until", q.Until)
	setIfPresent(params, "nameOfMeeting", q.Meeting)
	setIfPresent(params, "any", q.Keyword)
	return params
}

func (q MeetingQuery) Params() map[string]string {
	params := pageParams(q.Page)
	setIfPresent(params, "from", q.From)
	setIfPresent(params, "until", q.Until)
	setIfPresent(params, "nameOfHouse", q.NameOfHouse)
	setIfPresent(params, "nameOfMeeting", q.NameOfMeeting)
	return params
}

// ParsePage reads a 1-based page number. Missing, malformed or non-positive
// values mean the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func pageParams(page int) map[string]string {
	if page < 1 {
		page = 1
	}
	size := constants.KokkaiAPI.PageSize
	return map[string]string{
		"recordPacking":  constants.KokkaiAPI.RecordPacking,
		"maximumRecords": strconv.Itoa(size),
		"startRecord":    strconv.Itoa((page-1)*size + 1),
	}
}

func setIfPresent(params map[string]string, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params[key] = value
	}
}
