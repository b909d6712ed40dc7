package deck

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed slides.yaml
var builtin []byte

type file struct {
	Slides []Slide `yaml:"slides"`
}

// Builtin returns the embedded gravitational-physics deck.
func Builtin() ([]Slide, error) {
	return Parse(builtin)
}

func Parse(data []byte) ([]Slide, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("deck: parse slides: %w", err)
	}
	if len(f.Slides) == 0 {
		return nil, ErrEmptyDeck
	}
	return f.Slides, nil
}

// Load reads a deck file, falling back to the built-in deck when path is empty.
func Load(path string) (*Deck, error) {
	var (
		slides []Slide
		err    error
	)
	if path == "" {
		slides, err = Builtin()
	} else {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		slides, err = Parse(data)
	}
	if err != nil {
		return nil, err
	}
	return New(slides)
}
