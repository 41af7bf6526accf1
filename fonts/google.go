package fonts

import "strings"

// Family is a Google Fonts family available for download.
type Family struct {
	Family   string
	Variants []string
	Category string
	License  string
}

// Slug is the family name with spaces replaced, used for cache file names.
func (f Family) Slug() string {
	return strings.ReplaceAll(f.Family, " ", "_")
}

// Font converts the family into a catalog entry for metadata and LICENSE output.
func (f Family) Font() Font {
	return Font{ID: f.Family, License: f.License, Category: f.Category}
}

// HasVariant reports whether the family ships the given weight ("regular", "700", ...).
func (f Family) HasVariant(v string) bool {
	for _, have := range f.Variants {
		if have == v {
			return true
		}
	}
	return false
}

var googleFamilies = []Family{
	{Family: "Roboto", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "Apache License 2.0"},
	{Family: "Open Sans", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "Apache License 2.0"},
	{Family: "Lato", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Montserrat", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Poppins", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Raleway", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Inter", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Nunito", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Work Sans", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Quicksand", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Playfair Display", Variants: []string{"regular", "700"}, Category: "serif", License: "OFL"},
	{Family: "Merriweather", Variants: []string{"300", "regular", "700"}, Category: "serif", License: "OFL"},
	{Family: "Lora", Variants: []string{"regular", "700"}, Category: "serif", License: "OFL"},
	{Family: "Source Serif Pro", Variants: []string{"regular", "700"}, Category: "serif", License: "OFL"},
	{Family: "Crimson Text", Variants: []string{"regular", "700"}, Category: "serif", License: "OFL"},
	{Family: "Libre Baskerville", Variants: []string{"regular", "700"}, Category: "serif", License: "OFL"},
	{Family: "EB Garamond", Variants: []string{"regular", "700"}, Category: "serif", License: "OFL"},
	{Family: "Cormorant", Variants: []string{"300", "regular", "700"}, Category: "serif", License: "OFL"},
	{Family: "Space Mono", Variants: []string{"regular", "700"}, Category: "monospace", License: "OFL"},
	{Family: "Fira Code", Variants: []string{"regular", "700"}, Category: "monospace", License: "OFL"},
	{Family: "JetBrains Mono", Variants: []string{"regular", "700"}, Category: "monospace", License: "OFL"},
	{Family: "Source Code Pro", Variants: []string{"regular", "700"}, Category: "monospace", License: "OFL"},
	{Family: "Ubuntu Mono", Variants: []string{"regular", "700"}, Category: "monospace", License: "Ubuntu Font License"},
	{Family: "Dancing Script", Variants: []string{"regular", "700"}, Category: "handwriting", License: "OFL"},
	{Family: "Pacifico", Variants: []string{"regular"}, Category: "handwriting", License: "OFL"},
	{Family: "Caveat", Variants: []string{"regular", "700"}, Category: "handwriting", License: "OFL"},
	{Family: "Satisfy", Variants: []string{"regular"}, Category: "handwriting", License: "OFL"},
	{Family: "Great Vibes", Variants: []string{"regular"}, Category: "handwriting", License: "OFL"},
	{Family: "Bebas Neue", Variants: []string{"regular"}, Category: "display", License: "OFL"},
	{Family: "Righteous", Variants: []string{"regular"}, Category: "display", License: "OFL"},
	{Family: "Fredoka One", Variants: []string{"regular"}, Category: "display", License: "OFL"},
	{Family: "Rubik", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Oswald", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Barlow", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Archivo", Variants: []string{"regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Exo 2", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Karla", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Bitter", Variants: []string{"regular", "700"}, Category: "serif", License: "OFL"},
	{Family: "Josefin Sans", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Abril Fatface", Variants: []string{"regular"}, Category: "display", License: "OFL"},
	{Family: "Anton", Variants: []string{"regular"}, Category: "sans-serif", License: "OFL"},
	{Family: "Comfortaa", Variants: []string{"300", "regular", "700"}, Category: "display", License: "OFL"},
	{Family: "Lexend", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "DM Sans", Variants: []string{"regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Space Grotesk", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Sora", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Manrope", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
	{Family: "Figtree", Variants: []string{"300", "regular", "700"}, Category: "sans-serif", License: "OFL"},
}

// GoogleFamilies returns the downloadable families.
func GoogleFamilies() []Family {
	return append([]Family(nil), googleFamilies...)
}

// FamiliesIn filters the families to the given categories.
func FamiliesIn(categories ...string) []Family {
	var out []Family
	for _, f := range googleFamilies {
		for _, c := range categories {
			if f.Category == c {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
