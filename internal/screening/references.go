package screening

import "strings"

// Placeholder text for a cited reference id the catalog does not know.
const (
	PlaceholderTitle   = "Legal reference"
	PlaceholderClause  = "Reference summary"
	PlaceholderExcerpt = "No summary is available for this reference."
)

// Reference is a citation to a statute clause.
type Reference struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Clause  string `json:"clause"`
	Excerpt string `json:"excerpt"`
}

// Catalog is an immutable, ordered set of references plus the baseline ids
// appended to every resolution.
type Catalog struct {
	entries  []Reference
	index    map[string]Reference
	baseline []string
}

// NewCatalog builds a catalog. Later entries with a duplicate id replace
// earlier ones in place.
func NewCatalog(entries []Reference, baseline ...string) *Catalog {
	c := &Catalog{
		entries:  make([]Reference, 0, len(entries)),
		index:    make(map[string]Reference, len(entries)),
		baseline: append([]string(nil), baseline...),
	}

	for _, e := range entries {
		if _, ok := c.index[e.ID]; ok {
			for i := range c.entries {
				if c.entries[i].ID == e.ID {
					c.entries[i] = e
				}
			}
		} else {
			c.entries = append(c.entries, e)
		}
		c.index[e.ID] = e
	}

	return c
}

var defaultCatalog = NewCatalog(defaultReferences, baselineReferenceIDs...)

// DefaultCatalog returns the medical-advertising statute catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func (c *Catalog) Lookup(id string) (Reference, bool) {
	r, ok := c.index[id]
	return r, ok
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// IDs lists catalog ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}
	return ids
}

func (c *Catalog) Entries() []Reference {
	return append([]Reference(nil), c.entries...)
}

// ListText renders one "id: title - clause" line per entry.
func (c *Catalog) ListText() string {
	lines := make([]string, len(c.entries))
	for i, e := range c.entries {
		lines[i] = e.ID + ": " + e.Title + " - " + e.Clause
	}
	return strings.Join(lines, "\n")
}

// Resolve returns the references cited by findings in first-cited order,
// one per id. Unknown ids resolve to a placeholder. Baseline ids present in
// the catalog are appended when not already cited.
func (c *Catalog) Resolve(findings []Finding) []Reference {
	refs := make([]Reference, 0, len(findings)+len(c.baseline))
	seen := make(map[string]bool)

	add := func(r Reference) {
		if seen[r.ID] {
			return
		}
		seen[r.ID] = true
		refs = append(refs, r)
	}

	for _, f := range findings {
		if f.ReferenceID == "" {
			continue
		}
		if r, ok := c.index[f.ReferenceID]; ok {
			add(r)
			continue
		}
		add(Reference{
			ID:      f.ReferenceID,
			Title:   PlaceholderTitle,
			Clause:  PlaceholderClause,
			Excerpt: PlaceholderExcerpt,
		})
	}

	for _, id := range c.baseline {
		if r, ok := c.index[id]; ok {
			add(r)
		}
	}

	return refs
}
