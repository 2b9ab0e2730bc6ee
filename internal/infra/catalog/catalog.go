package infra_catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/humanbelnik/oscarparty/internal/model"
)

//go:embed nominations.toml
var nominationsDoc string

var ErrMalformed = errors.New("malformed nominations document")

type filmDTO struct {
	ID         string `toml:"id"`
	Title      string `toml:"title"`
	Year       int    `toml:"year"`
	TrailerURL string `toml:"trailer_url"`
	Director   string `toml:"director"`
	Country    string `toml:"country"`
}

type nomineeDTO struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	Film string `toml:"film"`
	Info string `toml:"info"`
}

type categoryDTO struct {
	ID           string       `toml:"id"`
	Name         string       `toml:"name"`
	ShortName    string       `toml:"short_name"`
	AboveTheLine bool         `toml:"above_the_line"`
	Nominees     []nomineeDTO `toml:"nominees"`
}

type document struct {
	Films      []filmDTO     `toml:"films"`
	Categories []categoryDTO `toml:"categories"`
}

// displayModes maps category IDs to the card layout. Unlisted categories are
// film focused.
var displayModes = map[model.CategoryID]model.DisplayMode{
	"directing":          model.PersonFocused,
	"actorLeading":       model.PersonFocused,
	"actressLeading":     model.PersonFocused,
	"actorSupporting":    model.PersonFocused,
	"actressSupporting":  model.PersonFocused,
	"originalScreenplay": model.PersonFocused,
	"adaptedScreenplay":  model.PersonFocused,
	"cinematography":     model.PersonFocused,
	"costumeDesign":      model.PersonFocused,
	"filmEditing":        model.PersonFocused,
	"originalScore":      model.PersonFocused,
	"casting":            model.PersonFocused,
	"originalSong":       model.SongFocused,
	"animatedShort":      model.TitleOnly,
	"documentaryShort":   model.TitleOnly,
	"liveActionShort":    model.TitleOnly,
}

func DisplayModeFor(id model.CategoryID) model.DisplayMode {
	if m, ok := displayModes[id]; ok {
		return m
	}
	return model.FilmFocused
}

// Load decodes the embedded roster.
func Load() (*model.Catalog, error) {
	return Parse(nominationsDoc)
}

// MustLoad panics on a broken roster; used at startup.
func MustLoad() *model.Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(doc string) (*model.Catalog, error) {
	var d document
	if _, err := toml.Decode(doc, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	films := make([]model.Film, 0, len(d.Films))
	filmIDs := make(map[string]struct{}, len(d.Films))
	for _, f := range d.Films {
		if f.ID == "" || f.Title == "" {
			return nil, fmt.Errorf("%w: film without id or title", ErrMalformed)
		}
		if _, dup := filmIDs[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate film %q", ErrMalformed, f.ID)
		}
		filmIDs[f.ID] = struct{}{}
		films = append(films, model.Film{
			ID:         f.ID,
			Title:      f.Title,
			Year:       f.Year,
			TrailerURL: f.TrailerURL,
			Director:   f.Director,
			Country:    f.Country,
		})
	}

	var above, below int
	categories := make([]model.Category, 0, len(d.Categories))
	catIDs := make(map[string]struct{}, len(d.Categories))
	nomIDs := make(map[string]struct{})
	for _, c := range d.Categories {
		if _, dup := catIDs[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrMalformed, c.ID)
		}
		catIDs[c.ID] = struct{}{}
		if len(c.Nominees) == 0 {
			return nil, fmt.Errorf("%w: category %q has no nominees", ErrMalformed, c.ID)
		}

		nominees := make([]model.Nominee, 0, len(c.Nominees))
		for _, n := range c.Nominees {
			if _, dup := nomIDs[n.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate nominee %q", ErrMalformed, n.ID)
			}
			nomIDs[n.ID] = struct{}{}
			if _, ok := filmIDs[n.Film]; !ok {
				return nil, fmt.Errorf("%w: nominee %q references unknown film %q", ErrMalformed, n.ID, n.Film)
			}
			nominees = append(nominees, model.Nominee{
				ID:             n.ID,
				Name:           n.Name,
				FilmID:         n.Film,
				AdditionalInfo: n.Info,
			})
		}

		if c.AboveTheLine {
			above++
		} else {
			below++
		}
		categories = append(categories, model.Category{
			ID:           c.ID,
			Name:         c.Name,
			ShortName:    c.ShortName,
			Nominees:     nominees,
			AboveTheLine: c.AboveTheLine,
			DisplayMode:  DisplayModeFor(c.ID),
		})
	}

	if above != model.AboveTheLineCount || below != model.BelowTheLineCount {
		return nil, fmt.Errorf("%w: expected %d/%d categories, got %d/%d",
			ErrMalformed, model.AboveTheLineCount, model.BelowTheLineCount, above, below)
	}

	return model.NewCatalog(films, categories), nil
}
