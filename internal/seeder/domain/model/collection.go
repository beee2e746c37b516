package model

import (
	"fmt"
	"strings"
)

// Collection describes one seedable entity: its canonical name, the fixture
// file it is loaded from and the store collection it lives in.
type Collection struct {
	Name        string
	FixtureFile string
	StoreName   string
}

// String returns the canonical name.
func (c Collection) String() string {
	return c.Name
}

const fixtureExt = ".json"

func newCollection(name, storeName string) Collection {
	return Collection{Name: name, FixtureFile: name + fixtureExt, StoreName: storeName}
}

// registry is the only list of seedable collections. Its order is the default
// load order: referenced entities come before the entities pointing at them.
var registry = []Collection{
	newCollection("users", "users"),
	newCollection("organizations", "organizations"),
	newCollection("actionItemCategories", "actionitemcategories"),
	newCollection("agendaCategories", "agendacategories"),
	newCollection("events", "events"),
	newCollection("venues", "venues"),
	newCollection("recurrenceRules", "recurrencerules"),
	newCollection("posts", "posts"),
	newCollection("appUserProfiles", "appuserprofiles"),
}

var byName = func() map[string]Collection {
	m := make(map[string]Collection, len(registry))
	for _, c := range registry {
		m[c.Name] = c
	}
	return m
}()

// All returns every known collection in registry order.
func All() []Collection {
	out := make([]Collection, len(registry))
	copy(out, registry)
	return out
}

// DefaultNames returns the canonical names used when no selection is given.
func DefaultNames() []string {
	names := make([]string, len(registry))
	for i, c := range registry {
		names[i] = c.Name
	}
	return names
}

// Lookup resolves a canonical collection name.
func Lookup(name string) (Collection, bool) {
	c, ok := byName[name]
	return c, ok
}

// ParseSelection splits a comma-separated list of collection names. Entries are
// trimmed, blanks dropped and repeats collapsed to their first occurrence.
// An empty input selects the default list.
func ParseSelection(input string) []string {
	if strings.TrimSpace(input) == "" {
		return DefaultNames()
	}

	seen := make(map[string]bool)
	var names []string
	for _, part := range strings.Split(input, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		return DefaultNames()
	}
	return names
}

// Record is a single untyped fixture document.
type Record map[string]interface{}

// FixtureSummary is one row of the fixture directory listing.
type FixtureSummary struct {
	File      string
	Documents int
}

// CollectionCount is one row of the verification report. Err is set when
// the count query failed; Documents is then meaningless.
type CollectionCount struct {
	Collection Collection
	Documents  int64
	Err        error
}

// LoadedCollection records a successful bulk insert.
type LoadedCollection struct {
	Collection Collection
	Documents  int
}

// LoadResult summarises a Load stage.
type LoadResult struct {
	Loaded  []LoadedCollection
	Skipped []string
}

// Total returns the number of documents inserted across all collections.
func (r *LoadResult) Total() int {
	total := 0
	for _, l := range r.Loaded {
		total += l.Documents
	}
	return total
}

func (r *LoadResult) String() string {
	return fmt.Sprintf("%d collections loaded (%d documents), %d skipped", len(r.Loaded), r.Total(), len(r.Skipped))
}
