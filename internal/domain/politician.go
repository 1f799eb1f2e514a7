package domain

import "strings"

// Chamber identifies one house of the National Diet. The string value is the
// label written to the collection files.
type Chamber string

const (
	ChamberRepresentatives Chamber = "衆議院"
	ChamberCouncillors     Chamber = "参議院"
)

// Chambers lists both houses in canonical merge order.
var Chambers = []Chamber{ChamberRepresentatives, ChamberCouncillors}

func (c Chamber) String() string {
	return string(c)
}

// Key is the short name used on the command line and in query strings.
func (c Chamber) Key() string {
	switch c {
	case ChamberRepresentatives:
		return "lower"
	case ChamberCouncillors:
		return "upper"
	default:
		return ""
	}
}

// Tag prefixes member identifiers so they stay unique across chambers.
func (c Chamber) Tag() string {
	switch c {
	case ChamberRepresentatives:
		return "hr"
	case ChamberCouncillors:
		return "hc"
	default:
		return ""
	}
}

// FileName is the per-chamber collection file.
func (c Chamber) FileName() string {
	switch c {
	case ChamberRepresentatives:
		return "house_of_representatives.json"
	case ChamberCouncillors:
		return "house_of_councillors.json"
	default:
		return ""
	}
}

// ParseChamber accepts the Japanese label, the short key, the id tag or the English name.
func ParseChamber(value string) (Chamber, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(ChamberRepresentatives), "lower", "hr", "representatives", "shugiin":
		return ChamberRepresentatives, true
	case string(ChamberCouncillors), "upper", "hc", "councillors", "councilors", "sangiin":
		return ChamberCouncillors, true
	default:
		return "", false
	}
}

// MemberRecord is one legislator in a chamber or canonical collection.
type MemberRecord struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	NameKana   string  `json:"nameKana"`
	Party      string  `json:"party"`
	District   string  `json:"district"`
	Chamber    Chamber `json:"chamber"`
	PhotoURL   string  `json:"photoUrl"`
	TermEnd    string  `json:"termEnd"`
	ProfileURL string  `json:"profileUrl"`
}

// PartialRecord is what a list page row yields before enrichment.
type PartialRecord struct {
	Name       string
	Party      string
	District   string
	ProfileURL string
}

// Complete reports whether every list-page field was found.
func (p PartialRecord) Complete() bool {
	return p.Name != "" && p.Party != "" && p.District != "" && p.ProfileURL != ""
}

// Enrichment holds the profile-page fields. Absent fields were not found.
type Enrichment struct {
	ID       Opt
	NameKana Opt
	PhotoURL Opt
	TermEnd  Opt
}

// Build combines list and profile data. List party and district always win.
func (p PartialRecord) Build(chamber Chamber, e Enrichment) MemberRecord {
	return MemberRecord{
		ID:         e.ID.Or(""),
		Name:       p.Name,
		NameKana:   e.NameKana.Or(""),
		Party:      p.Party,
		District:   p.District,
		Chamber:    chamber,
		PhotoURL:   e.PhotoURL.Or(""),
		TermEnd:    e.TermEnd.Or(""),
		ProfileURL: p.ProfileURL,
	}
}
