package scraper

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kapu/kokkai-giin-go/internal/domain"
)

const sangiinListURL = "https://www.sangiin.go.jp/japanese/joho1/kousei/giin/217/giin.htm"

const sangiinListHTML = `<html><body>
<table class="tb_giinlist">
<tr><th>氏名</th><th>読み方</th><th>会派</th><th>選挙区</th><th>任期満了</th></tr>
<tr><td colspan="5"><a href="#a">あ行</a></td></tr>
<tr><td><a href="#a">あ行</a></td><td></td><td>-</td><td>-</td><td></td></tr>
<tr><td><a href="../profile/7001001.htm">青木　一彦</a></td><td>あおき　かずひこ</td><td>自民</td><td>鳥取・島根</td><td>令和13年7月28日</td></tr>
<tr><td><a href="../profile/7002002.htm">足立　敏之[ホームページ]</a></td><td>あだち　としゆき</td><td>自民</td><td>比例</td><td>令和10年7月25日</td></tr>
<tr><td><a href="">名無し</a></td><td></td><td>無所属</td><td>東京</td><td></td></tr>
</table>
</body></html>`

func TestCouncillorsExtractList(t *testing.T) {
	extractor := NewCouncillorsExtractor([]string{sangiinListURL}, nil)

	records, err := extractor.ExtractList(sangiinListHTML, sangiinListURL)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := []domain.PartialRecord{
		{
			Name:       "青木　一彦",
			Party:      "自民",
			District:   "鳥取・島根",
			ProfileURL: "https://www.sangiin.go.jp/japanese/joho1/kousei/giin/profile/7001001.htm",
		},
		{
			Name:       "足立　敏之",
			Party:      "自民",
			District:   "比例",
			ProfileURL: "https://www.sangiin.go.jp/japanese/joho1/kousei/giin/profile/7002002.htm",
		},
	}

	if diff := cmp.Diff(expected, records); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestCouncillorsExtractListKeepsFirstRowWithoutHeader(t *testing.T) {
	html := `<table summary="参議院議員一覧">
<tr><td><a href="/profile/100.htm">赤松　健</a></td><td>あかまつ　けん</td><td>自民</td><td>比例</td></tr>
<tr><td><a href="/profile/101.htm">朝日　健太郎</a></td><td>あさひ　けんたろう</td><td>自民</td><td>東京</td></tr>
</table>`

	extractor := NewCouncillorsExtractor(nil, nil)
	records, err := extractor.ExtractList(html, sangiinListURL)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected both rows without a th header, got %d", len(records))
	}
}

func TestCouncillorsExtractListFallsBackWithoutListClass(t *testing.T) {
	html := `<table><tr><td>お知らせ</td></tr></table>
<table>
<tr><th>氏 名</th><th>読み方</th><th>会派</th><th>選挙区</th></tr>
<tr><td><a href="/profile/200.htm">石井　章</a></td><td>いしい　あきら</td><td>維新</td><td>比例</td></tr>
</table>`

	extractor := NewCouncillorsExtractor(nil, nil)
	records, err := extractor.ExtractList(html, sangiinListURL)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 || records[0].Name != "石井　章" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestCouncillorsEnrichProfile(t *testing.T) {
	html := `<html><body>
<h1>参議院議員</h1>
<h2>青木 一彦（あおき かずひこ）</h2>
<table>
<tr><th>所属会派</th><td>自由民主党</td></tr>
<tr><th>任期満了</th><td>令和１３年７月２８日</td></tr>
</table>
</body></html>`

	extractor := NewCouncillorsExtractor(nil, nil)
	profileURL := "https://www.sangiin.go.jp/japanese/joho1/kousei/giin/profile/7001001.htm"

	enrichment := extractor.EnrichProfile(html, profileURL, "青木　一彦")

	if id := enrichment.ID.Or(""); id != "hc-7001001" {
		t.Fatalf("unexpected id: %s", id)
	}
	if photo := enrichment.PhotoURL.Or(""); photo != "https://www.sangiin.go.jp/japanese/joho1/kousei/giin/photo/g7001001.jpg" {
		t.Fatalf("unexpected photo url: %s", photo)
	}
	if kana := enrichment.NameKana.Or(""); kana != "あおき かずひこ" {
		t.Fatalf("unexpected kana: %q", kana)
	}
	if termEnd := enrichment.TermEnd.Or(""); termEnd != "令和１３年７月２８日" {
		t.Fatalf("unexpected term end: %q", termEnd)
	}
}

func TestCouncillorsEnrichProfilePrefersKanaElement(t *testing.T) {
	html := `<html><body>
<h2>青木 一彦（ちがう よみ）</h2>
<span class="kana">あおき　かずひこ</span>
<p>任期満了 2031年7月28日</p>
</body></html>`

	extractor := NewCouncillorsExtractor(nil, nil)
	enrichment := extractor.EnrichProfile(html, "https://www.sangiin.go.jp/japanese/joho1/kousei/giin/profile/7001001.htm", "青木　一彦")

	if kana := enrichment.NameKana.Or(""); kana != "あおき　かずひこ" {
		t.Fatalf("expected kana element to win, got %q", kana)
	}
	if termEnd := enrichment.TermEnd.Or(""); termEnd != "2031年7月28日" {
		t.Fatalf("unexpected term end: %q", termEnd)
	}
}

func TestCouncillorsEnrichProfileIgnoresUnrelatedHeading(t *testing.T) {
	html := `<html><body><h2>委員会（常任）</h2></body></html>`

	extractor := NewCouncillorsExtractor(nil, nil)
	enrichment := extractor.EnrichProfile(html, "https://www.sangiin.go.jp/japanese/joho1/kousei/giin/profile/7003003.htm", "石井　章")

	if enrichment.NameKana.IsSome() {
		t.Fatalf("heading without the member's name must not yield kana, got %q", enrichment.NameKana.Or(""))
	}
}

func TestCouncillorsMemberIDFallback(t *testing.T) {
	extractor := NewCouncillorsExtractor(nil, nil)

	if id := extractor.MemberID("https://www.sangiin.go.jp/japanese/joho1/kousei/giin/profile/7001001.html").Or(""); id != "hc-7001001" {
		t.Fatalf("unexpected id: %s", id)
	}
	if id := extractor.MemberID("https://www.sangiin.go.jp/giin/aoki.html").Or(""); id != "hc-aoki" {
		t.Fatalf("unexpected fallback id: %s", id)
	}
}
