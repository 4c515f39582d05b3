// Package reconcile maps the independently-spelled team and player
// vocabularies of the three data sources onto canonical identities.
// Every aggregator depends on this package, and nothing here ever
// fails: an unmapped name passes through and an unmatched player
// yields empty enrichment.
package reconcile

import "strings"

// TeamMapper translates one source's team spellings to canonical names
// via an exact-match synonym table. Names absent from the table pass
// through unchanged so an unmapped newcomer never breaks a merge.
type TeamMapper struct {
	synonyms map[string]string
}

func NewTeamMapper(synonyms map[string]string) *TeamMapper {
	table := make(map[string]string, len(synonyms))
	for from, to := range synonyms {
		table[strings.TrimSpace(from)] = strings.TrimSpace(to)
	}
	return &TeamMapper{synonyms: table}
}

// Canonical returns the canonical spelling for a source team name. A nil
// mapper passes every name through.
func (m *TeamMapper) Canonical(name string) string {
	name = strings.TrimSpace(name)
	if m == nil {
		return name
	}
	if canonical, ok := m.synonyms[name]; ok {
		return canonical
	}
	return name
}
