// Package catalogstore loads the immutable card catalog from Postgres at
// startup. The catalog never changes while the process runs (spec's
// Catalog is read-only for the life of the server), so this package has
// exactly one operation: a one-shot Load, never a live query path.
package catalogstore

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cardtable/boosterdraft/internal/catalog"
	"github.com/cardtable/boosterdraft/internal/models"
)

// cardRow is the gorm model backing the catalog's source-of-truth table.
type cardRow struct {
	ID            string `gorm:"column:id;primaryKey"`
	Set           string `gorm:"column:set_code"`
	Rarity        string `gorm:"column:rarity"`
	ColorIdentity string `gorm:"column:color_identity"`
	InBooster     bool   `gorm:"column:in_booster"`
}

func (cardRow) TableName() string { return "cards" }

type landRow struct {
	Set    string `gorm:"column:set_code"`
	CardID string `gorm:"column:card_id"`
}

func (landRow) TableName() string { return "basic_lands" }

// jumpstartRow is one card belonging to one named theme in the static
// Jumpstart table.
type jumpstartRow struct {
	Theme  string `gorm:"column:theme_name"`
	CardID string `gorm:"column:card_id"`
}

func (jumpstartRow) TableName() string { return "jumpstart_themes" }

// Load connects to dsn, reads every card and basic-land row, and builds an
// in-memory catalog.Catalog. The connection is closed before returning;
// nothing here is held open for the life of the process.
func Load(dsn string) (*catalog.Catalog, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("catalogstore: connecting: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("catalogstore: unwrapping sql.DB: %w", err)
	}
	defer sqlDB.Close()

	var rows []cardRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("catalogstore: loading cards: %w", err)
	}
	var lands []landRow
	if err := db.Find(&lands).Error; err != nil {
		return nil, fmt.Errorf("catalogstore: loading basic lands: %w", err)
	}
	var jumpstartRows []jumpstartRow
	if err := db.Find(&jumpstartRows).Error; err != nil {
		return nil, fmt.Errorf("catalogstore: loading jumpstart themes: %w", err)
	}

	cards := make(map[models.CardID]catalog.CardFacts, len(rows))
	setSet := map[string]struct{}{}
	for _, r := range rows {
		cards[models.CardID(r.ID)] = catalog.CardFacts{
			Set:           r.Set,
			Rarity:        models.Rarity(r.Rarity),
			ColorIdentity: models.Color(r.ColorIdentity),
			InBooster:     r.InBooster,
		}
		setSet[r.Set] = struct{}{}
	}
	setList := make([]string, 0, len(setSet))
	for set := range setSet {
		setList = append(setList, set)
	}

	landsBySet := map[string][]models.CardID{}
	for _, l := range lands {
		landsBySet[l.Set] = append(landsBySet[l.Set], models.CardID(l.CardID))
	}
	landSlots := make(map[string]catalog.LandSlot, len(landsBySet))
	for set, ids := range landsBySet {
		landSlots[set] = catalog.NewStaticLandSlot(ids)
	}

	themeOrder := make([]string, 0)
	cardsByTheme := map[string][]models.CardID{}
	for _, r := range jumpstartRows {
		if _, ok := cardsByTheme[r.Theme]; !ok {
			themeOrder = append(themeOrder, r.Theme)
		}
		cardsByTheme[r.Theme] = append(cardsByTheme[r.Theme], models.CardID(r.CardID))
	}
	themes := make([]catalog.JumpstartTheme, 0, len(themeOrder))
	for _, name := range themeOrder {
		themes = append(themes, catalog.JumpstartTheme{Name: name, Cards: cardsByTheme[name]})
	}

	cat := catalog.New(cards, setList, landSlots, themes)
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalogstore: validating loaded catalog: %w", err)
	}
	return cat, nil
}
