package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/matchpulse/matchpulse/internal/domain/xg"
)

// Enrichment is the xG line attached to a fantasy player once the
// cross-source match succeeds.
type Enrichment struct {
	XG        float64
	XA        float64
	Shots     int
	KeyPasses int
	NPXG      float64
}

// Query identifies a fantasy player to look up. Name is the short
// display form, FullName the registered name when known, Team the
// canonical team the player belongs to in the fantasy source.
type Query struct {
	Name     string
	FullName string
	Team     string
}

type nameTeamKey struct {
	name string
	team string
}

type candidate struct {
	normName string
	data     *Enrichment
}

type strategy func(Query) (*Enrichment, bool)

// PlayerMatcher cross-references fantasy players against xG player
// records. The sources share no key, so matching runs a fixed priority
// list of lookup strategies and returns the first hit. Every strategy
// is scoped to a team: "Danilo" at one club must never pick up the xG
// line of a namesake at another. Records for traded players are indexed
// under every club in their comma-joined team field.
type PlayerMatcher struct {
	byName     map[nameTeamKey]*Enrichment
	byLastName map[nameTeamKey]*Enrichment
	byTeam     map[string][]candidate
	strategies []strategy
}

func NewPlayerMatcher(records []xg.PlayerRecord) *PlayerMatcher {
	m := &PlayerMatcher{
		byName:     make(map[nameTeamKey]*Enrichment, len(records)),
		byLastName: make(map[nameTeamKey]*Enrichment, len(records)),
		byTeam:     make(map[string][]candidate, 32),
	}

	for _, r := range records {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		data := &Enrichment{
			XG:        r.XG,
			XA:        r.XA,
			Shots:     r.Shots,
			KeyPasses: r.KeyPasses,
			NPXG:      r.NPXG,
		}
		normalized := NormalizeName(name)
		last := lastToken(normalized)

		for _, team := range r.TeamsPlayedFor() {
			m.byName[nameTeamKey{name, team}] = data
			m.byLastName[nameTeamKey{last, team}] = data
			m.byTeam[team] = append(m.byTeam[team], candidate{normName: normalized, data: data})
		}
	}

	m.strategies = []strategy{
		m.matchShortName,
		m.matchFullName,
		m.matchLastName,
		m.matchInitialParts,
		m.matchSubstring,
	}
	return m
}

// Match runs the strategy list in priority order and returns the first
// hit. A miss is not an error; the caller emits null xG fields.
func (m *PlayerMatcher) Match(q Query) (Enrichment, bool) {
	for _, try := range m.strategies {
		if data, ok := try(q); ok {
			return *data, true
		}
	}
	return Enrichment{}, false
}

// matchShortName covers players published under a single name: the
// fantasy short name equals the xG name exactly.
func (m *PlayerMatcher) matchShortName(q Query) (*Enrichment, bool) {
	data, ok := m.byName[nameTeamKey{q.Name, q.Team}]
	return data, ok
}

// matchFullName covers sources agreeing on the registered full name.
func (m *PlayerMatcher) matchFullName(q Query) (*Enrichment, bool) {
	if q.FullName == "" {
		return nil, false
	}
	data, ok := m.byName[nameTeamKey{q.FullName, q.Team}]
	return data, ok
}

// matchLastName matches the fantasy short name against the last token
// of an xG full name, diacritics stripped: "Haaland" finds
// "Erling Haaland".
func (m *PlayerMatcher) matchLastName(q Query) (*Enrichment, bool) {
	data, ok := m.byLastName[nameTeamKey{NormalizeName(q.Name), q.Team}]
	return data, ok
}

// matchInitialParts handles dotted short forms like "B.Fernandes" or
// "Kroupi.Jr": each dot-separated part longer than two characters is
// tried as a last name within the team.
func (m *PlayerMatcher) matchInitialParts(q Query) (*Enrichment, bool) {
	if !strings.Contains(q.Name, ".") {
		return nil, false
	}
	for _, part := range strings.Split(q.Name, ".") {
		if len(part) <= 2 {
			continue
		}
		if data, ok := m.byLastName[nameTeamKey{NormalizeName(part), q.Team}]; ok {
			return data, true
		}
	}
	return nil, false
}

// matchSubstring is the widest net: the normalized short name contained
// anywhere in a teammate's normalized full name, so "Enzo" finds
// "enzo fernandez".
func (m *PlayerMatcher) matchSubstring(q Query) (*Enrichment, bool) {
	needle := strings.TrimRight(NormalizeName(q.Name), ".")
	if needle == "" {
		return nil, false
	}
	for _, c := range m.byTeam[q.Team] {
		if strings.Contains(c.normName, needle) {
			return c.data, true
		}
	}
	return nil, false
}

var diacriticStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lower-cases a name and strips diacritics so Ekitiké
// matches Ekitike.
func NormalizeName(name string) string {
	stripped, _, err := transform.String(diacriticStripper, name)
	if err != nil {
		stripped = name
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}

func lastToken(normalized string) string {
	parts := strings.Fields(normalized)
	if len(parts) == 0 {
		return normalized
	}
	return parts[len(parts)-1]
}
