package downloader

import (
	"bytes"
	"compress/gzip"
	"io"
	"log"

	"github.com/andybalholm/brotli"
	"github.com/gocolly/colly"
)

// DecompressResponse decompresses a gzip or Brotli body in place. Some
// mirrors send compressed archives without the transport undoing it.
func DecompressResponse(r *colly.Response) (bool, error) {
	if r == nil || len(r.Body) == 0 {
		return false, nil
	}

	encoding := ""
	if r.Headers != nil {
		encoding = r.Headers.Get("Content-Encoding")
	}

	body, ok, err := Decompress(r.Body, encoding)
	if err != nil {
		return false, err
	}
	if ok {
		log.Printf("[Download] ✓ Decompressed response: %d bytes → %d bytes", len(r.Body), len(body))
		r.Body = body
	}
	return ok, nil
}

// Decompress detects gzip by its magic bytes and Brotli by header or first
// byte. Bodies that are neither are returned unchanged.
func Decompress(body []byte, contentEncoding string) ([]byte, bool, error) {
	if len(body) == 0 {
		return body, false, nil
	}

	if len(body) >= 2 && body[0] == 0x1f && body[1] == 0x8b {
		reader, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, false, err
		}
		defer reader.Close()

		out, err := io.ReadAll(reader)
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	}

	if contentEncoding == "br" {
		out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	}

	// Brotli streams often start in 0x80-0x8f; a failed guess means plain data
	if body[0] >= 0x80 && body[0] <= 0x8f {
		out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
		if err != nil {
			return body, false, nil
		}
		return out, true, nil
	}

	return body, false, nil
}
