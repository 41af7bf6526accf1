package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"

	"themesmith/config"
	"themesmith/palette"
)

var (
	harmony     string
	copyPalette bool
	followLog   bool
	forceConfig bool
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Draw one palette and show it",
	Long:  "Draw a palette the way theme generation does and print terminal swatches. --copy puts the colors on the clipboard.",
	RunE:  runPalette,
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the log file",
	Long:  "Print the themesmith log file. With --follow, keep printing lines as they are written.",
	RunE:  runLogs,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  "Manage themesmith configuration files.",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Write the default configuration to --config (themesmith.toml in the current directory unless given).",
	RunE:  runConfigGenerate,
}

func init() {
	paletteCmd.Flags().StringVar(&harmony, "harmony", "", "Color harmony (default: random)")
	paletteCmd.Flags().BoolVar(&copyPalette, "copy", false, "Copy the colors to the clipboard")
	logsCmd.Flags().BoolVarP(&followLog, "follow", "f", false, "Follow the log as it grows")
	configGenerateCmd.Flags().BoolVar(&forceConfig, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(configCmd)
}

func parseHarmony(s string) (palette.Harmony, bool) {
	for _, h := range palette.Harmonies {
		if string(h) == s {
			return h, true
		}
	}
	return "", false
}

func runPalette(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	rng := newRng(cfg)

	var p palette.Palette
	if harmony == "" {
		p = palette.Generate(rng)
	} else {
		h, ok := parseHarmony(harmony)
		if !ok {
			return fmt.Errorf("unknown harmony %q (want one of %v)", harmony, palette.Harmonies)
		}
		p = palette.GenerateHarmony(rng, h)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s, %s background\n", p.Type, p.Scheme())
	fmt.Fprint(out, palette.Swatches(p))

	if copyPalette {
		if err := clipboard.Init(); err != nil {
			return fmt.Errorf("failed to initialize clipboard: %w", err)
		}
		clipboard.Write(clipboard.FmtText, []byte(palette.Plain(p)))
		fmt.Fprintln(out, "Copied to clipboard")
	}
	return nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("themes-dir") {
		if cfg, err = cfg.WithThemesDir(themesDir); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()

	if !followLog {
		f, err := os.Open(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			fmt.Fprintln(out, scanner.Text())
		}
		return scanner.Err()
	}

	// ReOpen survives the rotation done by the logger
	t, err := tail.TailFile(cfg.LogFile, tail.Config{Follow: true, ReOpen: true, Logger: tail.DiscardingLogger})
	if err != nil {
		return fmt.Errorf("tail log: %w", err)
	}
	defer t.Cleanup()

	ctx, cancel := signalContext()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return t.Stop()
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				log.Printf("[Logs] ⚠️ %v", line.Err)
				continue
			}
			fmt.Fprintln(out, line.Text)
		}
	}
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	if err := config.Save(configPath, config.Default(), forceConfig); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", configPath)
	return nil
}
