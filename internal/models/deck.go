package models

// Slide is one extracted slide. Index is 0-based and matches the slide's
// position in its Deck.
type Slide struct {
	Index      int          `json:"index"`
	Title      string       `json:"title"`
	Text       string       `json:"text"`
	ShapeTexts []string     `json:"shape_texts,omitempty"`
	Tables     [][][]string `json:"tables,omitempty"`
	Images     []string     `json:"images,omitempty"`
	Snapshot   string       `json:"snapshot"`
}

// Deck is the ordered, immutable set of slides extracted from one presentation.
type Deck struct {
	Source string  `json:"source"`
	Slides []Slide `json:"slides"`
}

// Len returns the number of slides.
func (d Deck) Len() int {
	return len(d.Slides)
}

// Titles returns the slide titles in order; the lecture outline.
func (d Deck) Titles() []string {
	titles := make([]string, len(d.Slides))
	for i, s := range d.Slides {
		titles[i] = s.Title
	}
	return titles
}
