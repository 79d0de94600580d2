package catalog

import "strings"

// Theme is a named accent color offered in settings.
type Theme struct {
	Name  string
	Color string
}

var themes = []Theme{
	{Name: "Classic Indigo", Color: "#4f46e5"},
	{Name: "Forest Green", Color: "#059669"},
	{Name: "Sunset Orange", Color: "#ea580c"},
	{Name: "Deep Purple", Color: "#7c3aed"},
	{Name: "Rose Red", Color: "#e11d48"},
	{Name: "Ocean Blue", Color: "#0ea5e9"},
}

func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// ThemeColor resolves a palette name (case-insensitive) to its color.
func ThemeColor(name string) (string, bool) {
	for _, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return t.Color, true
		}
	}
	return "", false
}
