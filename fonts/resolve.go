package fonts

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Slot is a font role inside a theme directory.
type Slot string

const (
	SlotHeading   Slot = "heading"
	SlotText      Slot = "text"
	SlotCode      Slot = "code"
	SlotHandnotes Slot = "handnotes"
)

// Slots lists every slot in theme.conf order.
var Slots = []Slot{SlotHeading, SlotText, SlotCode, SlotHandnotes}

// FileName is the name the slot's font is copied to, e.g. heading.ttf.
func (s Slot) FileName() string {
	return string(s) + ".ttf"
}

// weights maps a font id to its file names inside <root>/<id>/.
// bold is used for the heading slot when set.
type weights struct {
	bold, regular string
}

var lookup = map[string]weights{
	"Abril_Fatface":                  {regular: "AbrilFatface-Regular.ttf"},
	"Lato":                           {bold: "Lato-Bold.ttf", regular: "Lato-Regular.ttf"},
	"Merriweather":                   {bold: "Merriweather-Bold.ttf", regular: "Merriweather-Regular.ttf"},
	"oxygen":                         {bold: "oxygen-Bold.ttf", regular: "oxygen-Regular.ttf"},
	"roboto-slab":                    {bold: "roboto-slab-Bold.ttf", regular: "roboto-slab-Regular.ttf"},
	"consola-mono":                   {bold: "ConsolaMono-Bold.ttf", regular: "ConsolaMono-Book.ttf"},
	"hack":                           {regular: "Hack-Regular.ttf"},
	"intelone-mono":                  {regular: "intelone-mono-font-family-regular.ttf"},
	"higher-jump":                    {regular: "Higher Jump.ttf"},
	"pixelon":                        {regular: "Pixelon.ttf"},
	"repetition-scrolling":           {regular: "repet___.ttf"},
	"zai-aeg-mignon-typewriter-1924": {regular: "zai_AEGMignonTypewriter1924.ttf"},
}

// Resolver locates font files under a read-only font repository.
type Resolver struct {
	Root string
}

// Candidates returns the relative paths tried for id in slot, best first.
func (r Resolver) Candidates(id string, slot Slot) []string {
	var names []string
	if w, ok := lookup[id]; ok {
		if slot == SlotHeading && w.bold != "" {
			names = append(names, w.bold)
		}
		names = append(names, w.regular)
	}
	names = append(names, id+".ttf")

	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, filepath.Join(id, n))
	}
	return out
}

// Resolve returns the absolute path of the first candidate that exists.
func (r Resolver) Resolve(id string, slot Slot) (string, error) {
	candidates := r.Candidates(id, slot)
	for _, rel := range candidates {
		p := filepath.Join(r.Root, rel)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("font %s not found under %s (tried %v)", id, r.Root, candidates)
}

// Assignment is what goes into one slot: either a catalog id to resolve,
// or an explicit Source file (downloaded fonts).
type Assignment struct {
	Slot   Slot
	ID     string
	Source string
}

// CopyResult records which slots ended up with a font file.
type CopyResult struct {
	Copied  map[Slot]string // slot -> source path
	Missing []string
}

// CopyInto copies every assignment into dir as <slot>.ttf. Missing fonts are
// logged and skipped; only I/O failures on the destination are returned.
func (r Resolver) CopyInto(dir string, assignments []Assignment) (CopyResult, error) {
	res := CopyResult{Copied: make(map[Slot]string)}

	for _, a := range assignments {
		src := a.Source
		if src == "" {
			var err error
			src, err = r.Resolve(a.ID, a.Slot)
			if err != nil {
				log.Printf("[Fonts] ⚠️ Warning: %v", err)
				res.Missing = append(res.Missing, a.ID)
				continue
			}
		} else if _, err := os.Stat(src); err != nil {
			log.Printf("[Fonts] ⚠️ Warning: could not find %s", src)
			res.Missing = append(res.Missing, a.ID)
			continue
		}

		if err := copyFile(src, filepath.Join(dir, a.Slot.FileName())); err != nil {
			return res, fmt.Errorf("copy %s font: %w", a.Slot, err)
		}
		res.Copied[a.Slot] = src
	}
	return res, nil
}

// RepositoryPath is the path theme.conf uses when a slot's font was not
// copied: the conventional location inside the font repository.
func (r Resolver) RepositoryPath(prefix, id string, slot Slot) string {
	candidates := r.Candidates(id, slot)
	return strings.TrimRight(prefix, "/") + "/" + filepath.ToSlash(candidates[0])
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
