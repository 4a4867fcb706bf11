// Command shiminspect prints what the shims would do in this process:
// every proxied method table with its slot order, the fixed translation
// tables and the effective configuration.
//
//	shiminspect [-config file.ini] [-list | -i]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/wippyai/dxshim/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "Configuration file (default: $"+config.EnvPath+" or built-in defaults)")
		list        = flag.Bool("list", false, "Print plain text and exit")
		interactive = flag.Bool("i", false, "Interactive browser")
		only        = flag.String("only", "", "Show sections whose title contains this text")
	)
	flag.Parse()

	cfg, notes, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sections, err := buildReport(cfg, notes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sections = filter(sections, *only)

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	if *interactive && !*list && tty {
		if err := runInteractive(sections); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if *list || !tty {
		writePlain(os.Stdout, sections)
		return
	}
	writeTables(os.Stdout, sections)
}

func loadConfig(path string) (*config.Config, []string, error) {
	if path == "" {
		path = os.Getenv(config.EnvPath)
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, nil, err
		}
	}
	warnings, errs := cfg.Normalize()
	return cfg, append(errs, warnings...), nil
}

func filter(sections []section, text string) []section {
	if text == "" {
		return sections
	}
	text = strings.ToLower(text)
	var out []section
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.title), text) {
			out = append(out, s)
		}
	}
	return out
}

// writePlain prints one tab-separated line per row, for scripts and pipes.
func writePlain(w io.Writer, sections []section) {
	for _, s := range sections {
		fmt.Fprintf(w, "# %s (%s)\n", s.title, s.group)
		fmt.Fprintln(w, strings.Join(s.headers, "\t"))
		for _, r := range s.rows {
			fmt.Fprintln(w, strings.Join(r, "\t"))
		}
		fmt.Fprintln(w)
	}
}

func writeTables(w io.Writer, sections []section) {
	for _, s := range sections {
		fmt.Fprintln(w, titleStyle.Render(s.title)+" "+groupStyle.Render(s.group))
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers(s.headers...).
			Rows(s.rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return lipgloss.NewStyle()
			})
		fmt.Fprintln(w, t.Render())
		fmt.Fprintln(w)
	}
}
