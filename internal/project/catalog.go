// Package project handles the JSON exchange formats: the shape catalog
// file, the two puzzle file forms (counts and explicit pieces), and saving
// a session back to the pieces form.
package project

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/piwi3910/ShapeBoard/internal/model"
)

// prjLog is the sub-logger for the project package, tagged module=project.
var prjLog zerolog.Logger = log.With().Str("module", "project").Logger()

// Catalog is a loaded shape catalog with id lookup. Shapes keep their file
// order, which also fixes the materialization order of counts puzzles.
type Catalog struct {
	Shapes []model.ShapeDef `json:"shapes"`

	byID map[string]model.ShapeDef
}

// LoadCatalog parses a shapes catalog from JSON bytes.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := sonic.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: shapes catalog: %v", model.ErrMalformedDefinition, err)
	}
	c.byID = make(map[string]model.ShapeDef, len(c.Shapes))
	for _, s := range c.Shapes {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: catalog shape without id", model.ErrMalformedDefinition)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate shape id %q", model.ErrMalformedDefinition, s.ID)
		}
		c.byID[s.ID] = s
	}
	prjLog.Debug().Int("shapes", len(c.Shapes)).Msg("catalog loaded")
	return &c, nil
}

// LoadCatalogFile reads and parses a shapes catalog file.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadCatalog(data)
}

// Get returns the definition for a shape id.
func (c *Catalog) Get(id string) (model.ShapeDef, bool) {
	sd, ok := c.byID[id]
	return sd, ok
}
