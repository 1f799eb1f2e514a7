package constants

import "time"

// ShugiinListURLs are the kana-indexed pages of the House of Representatives directory.
var ShugiinListURLs = []string{
	"https://www.shugiin.go.jp/internet/itdb_annai.nsf/html/statics/syu/1giin.htm",
	"https://www.shugiin.go.jp/internet/itdb_annai.nsf/html/statics/syu/2giin.htm",
	"https://www.shugiin.go.jp/internet/itdb_annai.nsf/html/statics/syu/3giin.htm",
	"https://www.shugiin.go.jp/internet/itdb_annai.nsf/html/statics/syu/4giin.htm",
	"https://www.shugiin.go.jp/internet/itdb_annai.nsf/html/statics/syu/5giin.htm",
	"https://www.shugiin.go.jp/internet/itdb_annai.nsf/html/statics/syu/6giin.htm",
	"https://www.shugiin.go.jp/internet/itdb_annai.nsf/html/statics/syu/7giin.htm",
	"https://www.shugiin.go.jp/internet/itdb_annai.nsf/html/statics/syu/8giin.htm",
	"https://www.shugiin.go.jp/internet/itdb_annai.nsf/html/statics/syu/9giin.htm",
	"https://www.shugiin.go.jp/internet/itdb_annai.nsf/html/statics/syu/10giin.htm",
}

// SangiinListURLs changes with each Diet session.
var SangiinListURLs = []string{
	"https://www.sangiin.go.jp/japanese/joho1/kousei/giin/217/giin.htm",
}

var PhotoURLTemplates = struct {
	Shugiin string
	Sangiin string
}{
	Shugiin: "https://www.shugiin.go.jp/internet/itdb_giinprof.nsf/html/profile/{id}.jpg/$File/{id}.jpg",
	Sangiin: "https://www.sangiin.go.jp/japanese/joho1/kousei/giin/photo/g{id}.jpg",
}

var ScraperConfig = struct {
	UserAgent      string
	AcceptLanguage string
	ProfileDelay   time.Duration
	MinRowCells    int
}{
	UserAgent:      "Mozilla/5.0 (compatible; KokkaiGiinScraper/1.0)",
	AcceptLanguage: "ja,en;q=0.8",
	ProfileDelay:   300 * time.Millisecond, // after every profile request
	MinRowCells:    4,                      // 氏名, ふりがな, 会派, 選挙区
}

var DataFiles = struct {
	Dir       string
	Canonical string
}{
	Dir:       "data",
	Canonical: "politicians.json",
}

var KokkaiAPI = struct {
	BaseURL        string
	RecordPacking  string
	PageSize       int
	RequestTimeout time.Duration
	CacheTTL       time.Duration
}{
	BaseURL:        "https://kokkai.ndl.go.jp/api/1.0",
	RecordPacking:  "json",
	PageSize:       10,
	RequestTimeout: 30 * time.Second,
	CacheTTL:       10 * time.Minute,
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}{
	FailureThreshold: 3,                // consecutive failures before OPEN
	ResetTimeout:     30 * time.Second, // OPEN until the next trial call
}

var DatabaseConfig = struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}{
	MaxOpenConns:    10,
	MaxIdleConns:    2,
	ConnMaxLifetime: 5 * time.Minute,
	PingTimeout:     5 * time.Second,
}
