package diag

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Category groups related descriptors.
type Category string

const (
	CategoryDesign      Category = "Design"
	CategoryUsage       Category = "Usage"
	CategoryReliability Category = "Reliability"
	CategoryPerformance Category = "Performance"
)

// Descriptor is the immutable definition of one kind of finding.
//
// Template uses positional placeholders ({0}, {1}, ...) that are filled from
// the diagnostic's arguments in order.
type Descriptor struct {
	ID       string
	Category Category
	Severity Severity
	Template string
	// Doc is a one-line description shown by -help style listings.
	Doc string
}

// Format renders the template with args. Placeholders without a matching
// argument are kept verbatim.
func (d *Descriptor) Format(args ...string) string {
	var b strings.Builder

	tmpl := d.Template
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			b.WriteString(tmpl)
			break
		}

		closing := strings.IndexByte(tmpl[open:], '}')
		if closing < 0 {
			b.WriteString(tmpl)
			break
		}
		closing += open

		b.WriteString(tmpl[:open])

		idx, err := strconv.Atoi(tmpl[open+1 : closing])
		if err != nil || idx < 0 || idx >= len(args) {
			b.WriteString(tmpl[open : closing+1])
		} else {
			b.WriteString(args[idx])
		}

		tmpl = tmpl[closing+1:]
	}

	return b.String()
}

func (d *Descriptor) String() string {
	return d.ID
}

// Catalog is a table of descriptors keyed by ID.
type Catalog struct {
	mu    sync.RWMutex
	byID  map[string]*Descriptor
	order []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]*Descriptor)}
}

// Add registers d and returns it. IDs must be unique within the catalog;
// registering the same ID twice is a programming error and panics.
func (c *Catalog) Add(d *Descriptor) *Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.byID[d.ID]; dup {
		panic(fmt.Sprintf("diag: duplicate descriptor id %q", d.ID))
	}
	c.byID[d.ID] = d
	c.order = append(c.order, d.ID)

	return d
}

// Lookup returns the descriptor registered under id.
func (c *Catalog) Lookup(id string) (*Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.byID[id]
	return d, ok
}

// All returns every descriptor sorted by ID.
func (c *Catalog) All() []*Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Descriptor, 0, len(c.byID))
	for _, d := range c.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// IDs returns descriptor IDs in registration order.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.order...)
}
