package palette

// retroPalettes are the fixed CRT/neon palettes; every one carries a glow.
var retroPalettes = []Palette{
	{Name: "terminal_green", Background: "#000000", Text: "#00ff00", Primary: "#00ff00", Secondary: "#00cc00", Accent: "#00ff88", Glow: "#00ff0033"},
	{Name: "amber_crt", Background: "#0a0400", Text: "#ffb000", Primary: "#ff9500", Secondary: "#ff7700", Accent: "#ffc500", Glow: "#ff950033"},
	{Name: "synthwave", Background: "#0a0014", Text: "#ff00ff", Primary: "#ff00ff", Secondary: "#00ffff", Accent: "#ff00aa", Glow: "#ff00ff33"},
	{Name: "blue_crt", Background: "#000014", Text: "#00ccff", Primary: "#0099ff", Secondary: "#00ddff", Accent: "#00ffff", Glow: "#00ccff33"},
	{Name: "dos_classic", Background: "#0000aa", Text: "#ffffff", Primary: "#ffff00", Secondary: "#00ffff", Accent: "#ff00ff", Glow: "#ffffff22"},
	{Name: "matrix", Background: "#000000", Text: "#00ff41", Primary: "#00ff41", Secondary: "#008f11", Accent: "#00ff00", Glow: "#00ff4133"},
	{Name: "cyberpunk", Background: "#0a0012", Text: "#e5ccff", Primary: "#ff0090", Secondary: "#00f0ff", Accent: "#ffee00", Glow: "#ff009033"},
	{Name: "retro_orange", Background: "#1a0f00", Text: "#ff6600", Primary: "#ff3300", Secondary: "#ff9900", Accent: "#ffcc00", Glow: "#ff660033"},
	{Name: "phosphor", Background: "#000000", Text: "#e0e0e0", Primary: "#ffffff", Secondary: "#cccccc", Accent: "#aaaaaa", Glow: "#ffffff22"},
	{Name: "vapor", Background: "#1a0014", Text: "#ff99cc", Primary: "#ff66cc", Secondary: "#cc99ff", Accent: "#ffccff", Glow: "#ff66cc33"},
}

// Retro returns a copy of the retro palettes. All are dark.
func Retro() []Palette {
	out := make([]Palette, len(retroPalettes))
	for i, p := range retroPalettes {
		p.IsDark = true
		out[i] = p
	}
	return out
}

// RetroByName looks a retro palette up by name.
func RetroByName(name string) (Palette, bool) {
	for _, p := range Retro() {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}
