package catalog

import (
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/model"
)

// Catalog is the immutable question bank. It is built once at startup and
// only ever read afterward, so it is safe for concurrent use.
type Catalog struct {
	questions []model.Question
	byID      map[string]model.Question
}

// New builds the catalog from the static question set.
func New() *Catalog {
	return FromQuestions(questions())
}

// FromQuestions builds a catalog from an explicit question list. Used by
// tests that need a small controlled bank.
func FromQuestions(qs []model.Question) *Catalog {
	byID := make(map[string]model.Question, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}
	return &Catalog{questions: qs, byID: byID}
}

// Lookup returns the question with the given ID. Callers must treat a miss
// as "unknown question" and degrade to placeholder text, never abort.
func (c *Catalog) Lookup(id string) (model.Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// FilterByCategory returns the questions belonging to a category, in catalog order.
func (c *Catalog) FilterByCategory(category string) []model.Question {
	var out []model.Question
	for _, q := range c.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// FilterByArea returns the questions belonging to an area, in catalog order.
func (c *Catalog) FilterByArea(area string) []model.Question {
	var out []model.Question
	for _, q := range c.questions {
		if q.Area == area {
			out = append(out, q)
		}
	}
	return out
}

// Categories returns the distinct category names in catalog order.
func (c *Catalog) Categories() []string {
	return c.distinct(func(q model.Question) string { return q.Category })
}

// Areas returns the distinct area names in catalog order.
func (c *Catalog) Areas() []string {
	return c.distinct(func(q model.Question) string { return q.Area })
}

// Len returns the total number of questions in the bank.
func (c *Catalog) Len() int {
	return len(c.questions)
}

func (c *Catalog) distinct(key func(model.Question) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range c.questions {
		k := key(q)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
