// Package downloader fetches Google Fonts families into a local cache.
package downloader

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gocolly/colly"

	"themesmith/config"
	"themesmith/fonts"
)

const (
	defaultWorkers = 10
	requestTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
)

// Download is one family that produced at least one cached file.
type Download struct {
	Family fonts.Family
	Files  map[string]string // variant -> cached .ttf path
}

// GoogleFonts downloads family archives with a fixed number of parallel requests.
type GoogleFonts struct {
	BaseURL  string
	CacheDir string
	Workers  int
}

// NewGoogleFonts builds the fetcher from the loaded configuration.
func NewGoogleFonts(cfg config.Config) *GoogleFonts {
	return &GoogleFonts{
		BaseURL:  cfg.GoogleFontsURL,
		CacheDir: cfg.FontCacheDir,
		Workers:  cfg.Workers,
	}
}

// CachePath is where variant of family is stored, e.g. Open_Sans_400.ttf.
func (g *GoogleFonts) CachePath(family fonts.Family, variant string) string {
	return filepath.Join(g.CacheDir, fmt.Sprintf("%s_%s.ttf", family.Slug(), NumericWeight(variant)))
}

func (g *GoogleFonts) downloadURL(family fonts.Family) string {
	q := url.Values{}
	q.Set("family", family.Family)
	return g.BaseURL + "?" + q.Encode()
}

// FetchAll downloads every family not already cached. A family that fails
// is logged and left out of the result; there is no retry.
func (g *GoogleFonts) FetchAll(ctx context.Context, families []fonts.Family) []Download {
	if err := os.MkdirAll(g.CacheDir, 0755); err != nil {
		log.Printf("[Download] ✗ Cannot create font cache %s: %v", g.CacheDir, err)
		return nil
	}

	var (
		mu      sync.Mutex
		results = make(map[string]Download)
		pending = make(map[string]fonts.Family)
	)

	for _, fam := range families {
		if files := g.cached(fam); len(files) == len(fam.Variants) && len(files) > 0 {
			log.Printf("[Download] Using cached %s", fam.Family)
			results[fam.Family] = Download{Family: fam, Files: files}
			continue
		}
		pending[fam.Family] = fam
	}

	workers := g.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
		colly.Async(true),
	)
	c.MaxBodySize = 0
	c.SetRequestTimeout(requestTimeout)
	if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: workers}); err != nil {
		log.Printf("[Download] ⚠️ Could not set parallelism: %v", err)
	}

	c.OnRequest(func(r *colly.Request) {
		log.Printf("[Download] Fetching %s", r.Ctx.Get("family"))
	})

	c.OnResponse(func(r *colly.Response) {
		fam, ok := pending[r.Ctx.Get("family")]
		if !ok {
			return
		}
		if _, err := DecompressResponse(r); err != nil {
			log.Printf("[Download] ✗ %s: decompress: %v", fam.Family, err)
			return
		}

		files := g.store(fam, r.Body)
		if len(files) == 0 {
			return
		}
		mu.Lock()
		results[fam.Family] = Download{Family: fam, Files: files}
		mu.Unlock()
		log.Printf("[Download] ✓ %s (%d files)", fam.Family, len(files))
	})

	c.OnError(func(r *colly.Response, err error) {
		log.Printf("[Download] ✗ %s: %v (status %d)", r.Ctx.Get("family"), err, r.StatusCode)
	})

	// colly has no context support, so cancellation only stops queueing
	for name, fam := range pending {
		if ctx.Err() != nil {
			log.Printf("[Download] Cancelled, %s not requested", name)
			continue
		}
		cctx := colly.NewContext()
		cctx.Put("family", name)
		if err := c.Request("GET", g.downloadURL(fam), nil, cctx, nil); err != nil {
			log.Printf("[Download] ✗ %s: %v", name, err)
		}
	}
	c.Wait()

	// keep the caller's order
	var out []Download
	for _, fam := range families {
		if d, ok := results[fam.Family]; ok {
			out = append(out, d)
		}
	}
	return out
}

// cached returns the variants of family already present in the cache.
func (g *GoogleFonts) cached(family fonts.Family) map[string]string {
	files := make(map[string]string)
	for _, v := range family.Variants {
		p := g.CachePath(family, v)
		if info, err := os.Stat(p); err == nil && info.Size() > 0 {
			files[v] = p
		}
	}
	return files
}

// store extracts each requested variant from the archive into the cache.
func (g *GoogleFonts) store(family fonts.Family, archive []byte) map[string]string {
	files := make(map[string]string)
	for _, v := range family.Variants {
		_, data, err := ExtractTTF(archive, v)
		if err != nil {
			log.Printf("[Download] ⚠️ %s %s: %v", family.Family, v, err)
			continue
		}
		p := g.CachePath(family, v)
		if err := os.WriteFile(p, data, 0644); err != nil {
			log.Printf("[Download] ✗ %s %s: %v", family.Family, v, err)
			continue
		}
		files[v] = p
	}
	return files
}
