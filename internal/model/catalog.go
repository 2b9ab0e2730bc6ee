package model

type FilmID = string
type CategoryID = string
type NomineeID = string

const (
	AboveTheLineCount = 8
	BelowTheLineCount = 16
)

type Film struct {
	ID         FilmID
	Title      string
	Year       int
	TrailerURL string
	Director   string
	Country    string
}

type Nominee struct {
	ID             NomineeID
	Name           string
	FilmID         FilmID
	AdditionalInfo string
}

// DisplayMode tells a nominee surface what a card is about.
type DisplayMode string

const (
	FilmFocused   DisplayMode = "film"
	PersonFocused DisplayMode = "person"
	SongFocused   DisplayMode = "song"
	TitleOnly     DisplayMode = "title"
)

type Category struct {
	ID           CategoryID
	Name         string
	ShortName    string
	Nominees     []Nominee
	AboveTheLine bool
	DisplayMode  DisplayMode
}

func (c *Category) Nominee(id NomineeID) (Nominee, bool) {
	for _, n := range c.Nominees {
		if n.ID == id {
			return n, true
		}
	}
	return Nominee{}, false
}

// ResolvedNominee is a nominee joined with its film.
type ResolvedNominee struct {
	Nominee
	Film       string
	Year       int
	TrailerURL string
	Director   string
	Producers  string
}

// Catalog is immutable once built.
type Catalog struct {
	films      map[FilmID]Film
	filmOrder  []FilmID
	categories []Category
	byID       map[CategoryID]int
}

// NewCatalog indexes films and categories. The caller owns validation.
func NewCatalog(films []Film, categories []Category) *Catalog {
	c := &Catalog{
		films:      make(map[FilmID]Film, len(films)),
		filmOrder:  make([]FilmID, 0, len(films)),
		categories: categories,
		byID:       make(map[CategoryID]int, len(categories)),
	}
	for _, f := range films {
		c.films[f.ID] = f
		c.filmOrder = append(c.filmOrder, f.ID)
	}
	for i, cat := range categories {
		c.byID[cat.ID] = i
	}
	return c
}

func (c *Catalog) Categories() []Category {
	return c.categories
}

func (c *Catalog) AboveTheLine() []Category {
	return c.filter(true)
}

func (c *Catalog) BelowTheLine() []Category {
	return c.filter(false)
}

func (c *Catalog) filter(above bool) []Category {
	out := make([]Category, 0, len(c.categories))
	for _, cat := range c.categories {
		if cat.AboveTheLine == above {
			out = append(out, cat)
		}
	}
	return out
}

func (c *Catalog) Category(id CategoryID) (Category, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

func (c *Catalog) Nominee(categoryID CategoryID, nomineeID NomineeID) (Nominee, bool) {
	cat, ok := c.Category(categoryID)
	if !ok {
		return Nominee{}, false
	}
	return cat.Nominee(nomineeID)
}

func (c *Catalog) Film(id FilmID) (Film, bool) {
	f, ok := c.films[id]
	return f, ok
}

func (c *Catalog) Films() []Film {
	out := make([]Film, 0, len(c.filmOrder))
	for _, id := range c.filmOrder {
		out = append(out, c.films[id])
	}
	return out
}

func (c *Catalog) FilmsWithTrailers() []Film {
	out := make([]Film, 0)
	for _, id := range c.filmOrder {
		if f := c.films[id]; f.TrailerURL != "" {
			out = append(out, f)
		}
	}
	return out
}

// FeaturedFilms returns the distinct titles with a trailer across the
// above-the-line categories, in first-seen order.
func (c *Catalog) FeaturedFilms() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, cat := range c.AboveTheLine() {
		for _, n := range cat.Nominees {
			r := c.Resolve(cat.ID, n)
			if r.TrailerURL == "" {
				continue
			}
			if _, ok := seen[r.Film]; ok {
				continue
			}
			seen[r.Film] = struct{}{}
			out = append(out, r.Film)
		}
	}
	return out
}

// Resolve joins a nominee with its film. A missing film falls back to the
// nominee name as title; producers are only reported for Best Picture.
func (c *Catalog) Resolve(categoryID CategoryID, n Nominee) ResolvedNominee {
	r := ResolvedNominee{Nominee: n, Film: n.Name}
	if f, ok := c.films[n.FilmID]; ok {
		r.Film = f.Title
		r.Year = f.Year
		r.TrailerURL = f.TrailerURL
		r.Director = f.Director
	}
	if categoryID == BestPictureID {
		r.Producers = n.AdditionalInfo
	}
	return r
}

const BestPictureID CategoryID = "bestPicture"
