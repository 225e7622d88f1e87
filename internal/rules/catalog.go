package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Unsupported is the rule id recorded for a category the scanner has no rule for.
const Unsupported = "---"

// ErrUnknownCategory is returned when a category is not part of the catalog.
var ErrUnknownCategory = errors.New("unknown rule category")

// Category is a benchmark vulnerability class as written in the expected results table.
type Category string

const (
	XSS              Category = "xss"
	TrustBoundary    Category = "trustbound"
	WeakHash         Category = "hash"
	PathTraversal    Category = "pathtraver"
	WeakCipher       Category = "crypto"
	CommandInjection Category = "cmdi"
	SQLInjection     Category = "sqli"
	LDAPInjection    Category = "ldapi"
	InsecureCookie   Category = "securecookie"
	WeakRandomness   Category = "weakrand"
	XPathInjection   Category = "xpathi"
)

// Entry binds a category to the scanner's rule identifier.
type Entry struct {
	Category Category
	RuleID   string
}

// Supported reports whether the scanner has a rule for the category.
func (e Entry) Supported() bool {
	return e.RuleID != "" && e.RuleID != Unsupported
}

var defaultEntries = []Entry{
	{Category: XSS, RuleID: "reflected-xss"},
	{Category: TrustBoundary, RuleID: "trust-boundary-violation"},
	{Category: WeakHash, RuleID: Unsupported},
	{Category: PathTraversal, RuleID: "path-traversal"},
	{Category: WeakCipher, RuleID: Unsupported},
	{Category: CommandInjection, RuleID: "cmd-injection"},
	{Category: SQLInjection, RuleID: "sql-injection"},
	{Category: LDAPInjection, RuleID: "ldap-injection"},
	{Category: InsecureCookie, RuleID: Unsupported},
	{Category: WeakRandomness, RuleID: Unsupported},
	{Category: XPathInjection, RuleID: "xpath-injection"},
}

// Catalog is the closed set of rule categories with their scanner rule ids.
type Catalog struct {
	entries []Entry
	byName  map[Category]int
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, _ := New(nil)
	return c
}

// New returns the built-in catalog with the rule ids of some categories replaced.
// Every override key must name a catalog category.
func New(overrides map[string]string) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, len(defaultEntries)),
		byName:  make(map[Category]int, len(defaultEntries)),
	}
	copy(c.entries, defaultEntries)
	for i, e := range c.entries {
		c.byName[e.Category] = i
	}

	for name, ruleID := range overrides {
		i, ok := c.byName[Category(name)]
		if !ok {
			return nil, fmt.Errorf("rule override %q: %w", name, ErrUnknownCategory)
		}
		ruleID = strings.TrimSpace(ruleID)
		if ruleID == "" {
			return nil, fmt.Errorf("rule override %q: empty rule id", name)
		}
		c.entries[i].RuleID = ruleID
	}
	return c, nil
}

// Resolve returns the entry for a category name.
func (c *Catalog) Resolve(name string) (Entry, error) {
	i, ok := c.byName[Category(name)]
	if !ok {
		return Entry{}, fmt.Errorf("no value exists for [%s]: %w", name, ErrUnknownCategory)
	}
	return c.entries[i], nil
}

// Entries returns the catalog in its fixed order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
