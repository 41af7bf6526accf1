// Package validation runs best-effort heuristics over theme files.
// Issues are warnings for a human to read; nothing here blocks generation.
package validation

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Issue is one heuristic finding. Line is 0 when it applies to the whole file.
type Issue struct {
	Line    int
	Message string
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("Line %d: %s", i.Line, i.Message)
	}
	return i.Message
}

// ValidateCSS counts brace mismatches and flags declaration-looking lines
// that do not end in a terminator.
func ValidateCSS(content string) []Issue {
	var issues []Issue

	open := strings.Count(content, "{")
	closed := strings.Count(content, "}")
	if open != closed {
		issues = append(issues, Issue{Message: fmt.Sprintf("Mismatched braces: %d open, %d close", open, closed)})
	}

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "/*") || strings.HasPrefix(line, "@") {
			continue
		}
		if hasTerminator(line) {
			continue
		}
		if strings.Contains(line, ":") {
			issues = append(issues, Issue{Line: i + 1, Message: fmt.Sprintf("Missing semicolon? '%s'", line)})
		}
	}
	return issues
}

// ValidateCSSFile is ValidateCSS over a file on disk.
func ValidateCSSFile(path string) ([]Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ValidateCSS(string(data)), nil
}

func hasTerminator(line string) bool {
	for _, suffix := range []string{"{", "}", ";", "*/"} {
		if strings.HasSuffix(line, suffix) {
			return true
		}
	}
	return false
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// ValidateHTML walks the token stream and reports unbalanced element tags.
func ValidateHTML(r io.Reader) ([]Issue, error) {
	var (
		issues []Issue
		stack  []string
	)

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return issues, err
			}
			for i := len(stack) - 1; i >= 0; i-- {
				issues = append(issues, Issue{Message: fmt.Sprintf("Unclosed <%s>", stack[i])})
			}
			return issues, nil

		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if !voidElements[tag] {
				stack = append(stack, tag)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if len(stack) == 0 || stack[len(stack)-1] != tag {
				issues = append(issues, Issue{Message: fmt.Sprintf("Unexpected </%s>", tag)})
				continue
			}
			stack = stack[:len(stack)-1]
		}
	}
}

// ValidateHTMLFile is ValidateHTML over a file on disk.
func ValidateHTMLFile(path string) ([]Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ValidateHTML(f)
}
