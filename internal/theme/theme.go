// Package theme holds the fixed catalog of storefront themes and the engine
// that propagates the selected theme into the shared style namespace.
package theme

import "fmt"

// ID identifies a catalog theme.
type ID string

// Colors is the color palette of a theme.
type Colors struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Background    string `json:"background"`
	Surface       string `json:"surface"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary"`
	Accent        string `json:"accent"`
	Border        string `json:"border"`
}

// Fonts holds the two font stacks a theme uses.
type Fonts struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Spacing is the five-step spacing scale.
type Spacing struct {
	XS string `json:"xs"`
	SM string `json:"sm"`
	MD string `json:"md"`
	LG string `json:"lg"`
	XL string `json:"xl"`
}

// Layout holds the page metrics of a theme.
type Layout struct {
	ContainerMaxWidth string  `json:"containerMaxWidth"`
	SidebarWidth      string  `json:"sidebarWidth"`
	HeaderHeight      string  `json:"headerHeight"`
	BorderRadius      string  `json:"borderRadius"`
	Spacing           Spacing `json:"spacing"`
}

// Animations holds CSS transition strings.
type Animations struct {
	Transition string `json:"transition"`
	Hover      string `json:"hover"`
}

// Theme is an immutable catalog entry.
type Theme struct {
	ID         ID         `json:"id"`
	Name       string     `json:"name"`
	Colors     Colors     `json:"colors"`
	Fonts      Fonts      `json:"fonts"`
	Layout     Layout     `json:"layout"`
	Animations Animations `json:"animations"`
}

// Variable is one entry in the style namespace.
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MarkerFor returns the root identity marker for id, e.g. "theme-theme2".
func MarkerFor(id ID) string {
	return "theme-" + string(id)
}

// Validate reports the first slot of t that is empty.
func Validate(t Theme) error {
	if t.ID == "" {
		return fmt.Errorf("theme has no id")
	}
	if t.Name == "" {
		return fmt.Errorf("theme %s: empty name", t.ID)
	}
	for _, v := range Variables(t) {
		if v.Value == "" {
			return fmt.Errorf("theme %s: empty slot %s", t.ID, v.Name)
		}
	}
	return nil
}
