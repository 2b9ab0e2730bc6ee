package service_images

import "strings"

const ImageBaseURL = "https://image.tmdb.org/t/p"

type Kind string

const (
	Poster   Kind = "poster"
	Profile  Kind = "profile"
	Backdrop Kind = "backdrop"
)

type Size string

const (
	Small    Size = "small"
	Medium   Size = "medium"
	Large    Size = "large"
	Original Size = "original"
)

var sizes = map[Kind]map[Size]string{
	Poster:   {Small: "w185", Medium: "w342", Large: "w500", Original: "original"},
	Profile:  {Small: "w45", Medium: "w185", Large: "h632", Original: "original"},
	Backdrop: {Small: "w300", Medium: "w780", Large: "w1280", Original: "original"},
}

// ParseSize falls back to Medium for anything unknown.
func ParseSize(raw string) Size {
	switch s := Size(strings.ToLower(raw)); s {
	case Small, Medium, Large, Original:
		return s
	default:
		return Medium
	}
}

// ImageURL returns "" for an empty path.
func ImageURL(path string, kind Kind, size Size) string {
	if path == "" {
		return ""
	}
	table, ok := sizes[kind]
	if !ok {
		table = sizes[Poster]
	}
	dim, ok := table[size]
	if !ok {
		dim = table[Medium]
	}
	return ImageBaseURL + "/" + dim + path
}
