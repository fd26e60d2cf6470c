// Package catalog holds the immutable, read-only card database the rest of
// the core treats as a provided-at-startup mapping. Nothing in this package
// mutates after Load/New returns.
package catalog

import (
	"fmt"

	"github.com/cardtable/boosterdraft/internal/models"
)

// CardFacts is the catalog-provided metadata for one card.
type CardFacts struct {
	Set           string
	Rarity        models.Rarity
	ColorIdentity models.Color
	InBooster     bool
}

// JumpstartTheme is one entry in the static Jumpstart themed-pack table
// (spec §4.4 sealed/Jumpstart: "two random Jumpstart themed packs per
// player, from a static themed-pack table"). It lives on the catalog
// because, like land slots, it is provided-at-startup fixed data rather
// than something the generator computes.
type JumpstartTheme struct {
	Name  string
	Cards []models.CardID
}

// Catalog is an immutable card database plus the set list, the land-slot
// table for sets that carry a dedicated land slot, and the Jumpstart theme
// table.
type Catalog struct {
	cards      map[models.CardID]CardFacts
	setList    []string
	landSlot   map[string]LandSlot
	jumpstart  []JumpstartTheme
}

// New builds a Catalog from a fully-populated card map. It never mutates its
// inputs and never mutates itself after construction.
func New(cards map[models.CardID]CardFacts, setList []string, landSlots map[string]LandSlot, jumpstartThemes []JumpstartTheme) *Catalog {
	c := &Catalog{
		cards:     make(map[models.CardID]CardFacts, len(cards)),
		setList:   append([]string(nil), setList...),
		landSlot:  make(map[string]LandSlot, len(landSlots)),
		jumpstart: append([]JumpstartTheme(nil), jumpstartThemes...),
	}
	for id, facts := range cards {
		c.cards[id] = facts
	}
	for set, slot := range landSlots {
		c.landSlot[set] = slot
	}
	return c
}

// Card returns the facts for id and whether it exists in the catalog.
func (c *Catalog) Card(id models.CardID) (CardFacts, bool) {
	f, ok := c.cards[id]
	return f, ok
}

// Cards exposes the full read-only map. Callers must not mutate the result;
// since CardFacts is a value type, ranging over it is always safe, and a
// caller who wants to hold onto entries gets copies, not catalog internals.
func (c *Catalog) Cards() map[models.CardID]CardFacts {
	return c.cards
}

// SetList returns the catalog's ordered list of known set codes.
func (c *Catalog) SetList() []string {
	return append([]string(nil), c.setList...)
}

// HasSet reports whether code is a known set.
func (c *Catalog) HasSet(code string) bool {
	for _, s := range c.setList {
		if s == code {
			return true
		}
	}
	return false
}

// LandSlotFor returns the configured land slot for a single-set restriction,
// if one exists.
func (c *Catalog) LandSlotFor(set string) (LandSlot, bool) {
	slot, ok := c.landSlot[set]
	return slot, ok
}

// JumpstartThemes returns the static themed-pack table.
func (c *Catalog) JumpstartThemes() []JumpstartTheme {
	return append([]JumpstartTheme(nil), c.jumpstart...)
}

// Validate checks basic catalog integrity: every card must reference a known
// set. Intended to be run once at startup against the loaded catalog.
func (c *Catalog) Validate() error {
	for id, f := range c.cards {
		if !c.HasSet(f.Set) {
			return fmt.Errorf("catalog: card %s references unknown set %q", id, f.Set)
		}
	}
	return nil
}
