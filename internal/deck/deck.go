// Package deck holds the ordered slide sequence and the cursor that walks it.
package deck

import "errors"

// Kind selects which view renders a slide.
type Kind string

const (
	KindIntro   Kind = "intro"
	KindContent Kind = "content"
	KindVisual  Kind = "visual"
	KindQA      Kind = "qa"
	KindSummary Kind = "summary"
)

type Slide struct {
	ID       int    `yaml:"id"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle,omitempty"`
	Content  string `yaml:"content"`
	Kind     Kind   `yaml:"kind"`
	Icon     string `yaml:"icon,omitempty"`
	Image    string `yaml:"image,omitempty"`
}

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

var ErrEmptyDeck = errors.New("deck: no slides")

// Deck is the slide sequence plus its cursor. The sequence is never mutated
// after construction and the index always stays inside it.
type Deck struct {
	slides    []Slide
	index     int
	direction Direction
}

func New(slides []Slide) (*Deck, error) {
	if len(slides) == 0 {
		return nil, ErrEmptyDeck
	}
	s := make([]Slide, len(slides))
	copy(s, slides)
	return &Deck{slides: s}, nil
}

// Advance moves to the next slide. It reports whether the cursor moved.
func (d *Deck) Advance() bool {
	if d.index >= len(d.slides)-1 {
		return false
	}
	d.direction = Forward
	d.index++
	return true
}

// Retreat moves to the previous slide. It reports whether the cursor moved.
func (d *Deck) Retreat() bool {
	if d.index <= 0 {
		return false
	}
	d.direction = Backward
	d.index--
	return true
}

func (d *Deck) Current() Slide { return d.slides[d.index] }

func (d *Deck) Index() int               { return d.index }
func (d *Deck) Len() int                 { return len(d.slides) }
func (d *Deck) LastDirection() Direction { return d.direction }
func (d *Deck) AtFirst() bool            { return d.index == 0 }
func (d *Deck) AtLast() bool             { return d.index == len(d.slides)-1 }

// Progress is the fraction of the deck shown so far, in (0, 1].
func (d *Deck) Progress() float64 {
	return float64(d.index+1) / float64(len(d.slides))
}

// Slides returns a copy of the sequence.
func (d *Deck) Slides() []Slide {
	s := make([]Slide, len(d.slides))
	copy(s, d.slides)
	return s
}
