package service_images

type Placeholder struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Title string `json:"title"`
}

var gradients = [...][2]string{
	{"from-primary/80", "to-secondary/80"},
	{"from-secondary/80", "to-accent/80"},
	{"from-accent/80", "to-primary/80"},
	{"from-primary/60", "to-accent/60"},
	{"from-secondary/60", "to-primary/60"},
}

// PlaceholderFor picks a gradient from the title length in UTF-16 code
// units, so a title always renders the same fallback.
func PlaceholderFor(title string) Placeholder {
	g := gradients[utf16Len(title)%len(gradients)]
	return Placeholder{From: g[0], To: g[1], Title: title}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
