package http_common

import "github.com/humanbelnik/oscarparty/internal/model"

type NomineeDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Film           string `json:"film"`
	Year           int    `json:"year,omitempty"`
	TrailerURL     string `json:"trailer_url,omitempty"`
	Director       string `json:"director,omitempty"`
	Producers      string `json:"producers,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

type CategoryDTO struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ShortName    string       `json:"short_name"`
	AboveTheLine bool         `json:"above_the_line"`
	DisplayMode  string       `json:"display_mode"`
	Nominees     []NomineeDTO `json:"nominees"`
}

type FilmDTO struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Year       int    `json:"year"`
	TrailerURL string `json:"trailer_url,omitempty"`
	Director   string `json:"director,omitempty"`
	Country    string `json:"country,omitempty"`
}

func ToCategoryDTO(c *model.Catalog, cat model.Category) CategoryDTO {
	out := CategoryDTO{
		ID:           cat.ID,
		Name:         cat.Name,
		ShortName:    cat.ShortName,
		AboveTheLine: cat.AboveTheLine,
		DisplayMode:  string(cat.DisplayMode),
		Nominees:     make([]NomineeDTO, 0, len(cat.Nominees)),
	}
	for _, n := range cat.Nominees {
		r := c.Resolve(cat.ID, n)
		out.Nominees = append(out.Nominees, NomineeDTO{
			ID:             r.ID,
			Name:           r.Name,
			Film:           r.Film,
			Year:           r.Year,
			TrailerURL:     r.TrailerURL,
			Director:       r.Director,
			Producers:      r.Producers,
			AdditionalInfo: r.AdditionalInfo,
		})
	}
	return out
}

func ToFilmDTO(f model.Film) FilmDTO {
	return FilmDTO{
		ID:         f.ID,
		Title:      f.Title,
		Year:       f.Year,
		TrailerURL: f.TrailerURL,
		Director:   f.Director,
		Country:    f.Country,
	}
}
