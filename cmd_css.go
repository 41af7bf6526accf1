package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"themesmith/cssfix"
	"themesmith/models"
	"themesmith/parser"
	"themesmith/validation"
)

var fixCSSCmd = &cobra.Command{
	Use:   "fix-css",
	Short: "Rewrite theme CSS into validator-friendly form",
	Long:  "Post-process style.css and every *-override.css of each theme, then print the heuristic validation report.",
	RunE:  runFixCSS,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report likely CSS and HTML problems",
	Long:  "Check every theme's style.css for brace and semicolon problems and its example.html for unbalanced tags. Nothing is modified.",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(fixCSSCmd)
	rootCmd.AddCommand(validateCmd)
}

func runFixCSS(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	dirs, err := parser.ScanValid(cfg.ThemesDir)
	if err != nil {
		return fmt.Errorf("scan themes: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Fixing CSS validation issues in %d themes...\n", len(dirs))

	var report models.BatchReport
	for _, d := range dirs {
		changed, err := cssfix.FixTheme(d.Path)
		report.Add(d.Name, err)
		switch {
		case err != nil:
			log.Printf("[FixCSS] ✗ %s: %v", d.Name, err)
		case len(changed) > 0:
			fmt.Fprintf(out, "Fixed: %s %v\n", d.Name, changed)
		default:
			fmt.Fprintf(out, "No fixes needed: %s\n", d.Name)
		}
	}
	printReport(cmd, "Fixed themes", report)

	fmt.Fprintln(out, "\nRunning basic CSS validation...")
	return printValidation(out, dirs)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	dirs, err := parser.ScanValid(cfg.ThemesDir)
	if err != nil {
		return fmt.Errorf("scan themes: %w", err)
	}
	return printValidation(cmd.OutOrStdout(), dirs)
}

// printValidation lists the issues per theme; themes without issues are
// not mentioned. Issues never make the command fail.
func printValidation(out io.Writer, dirs []parser.Dir) error {
	flagged := 0
	for _, d := range dirs {
		issues, err := themeIssues(d.Path)
		if err != nil {
			log.Printf("[Validate] ✗ %s: %v", d.Name, err)
			continue
		}
		if len(issues) == 0 {
			continue
		}
		flagged++
		fmt.Fprintf(out, "\n%s:\n", d.Name)
		for _, issue := range issues {
			fmt.Fprintf(out, "  - %s\n", issue)
		}
	}
	fmt.Fprintf(out, "\n%d of %d themes have potential issues\n", flagged, len(dirs))
	return nil
}

func themeIssues(dir string) ([]validation.Issue, error) {
	issues, err := validation.ValidateCSSFile(filepath.Join(dir, "style.css"))
	if err != nil {
		return nil, err
	}

	htmlIssues, err := validation.ValidateHTMLFile(filepath.Join(dir, "example.html"))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return issues, err
	default:
		for _, i := range htmlIssues {
			i.Message = "example.html: " + i.Message
			issues = append(issues, i)
		}
	}
	return issues, nil
}
