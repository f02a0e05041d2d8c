package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aretw0/stoat"
	"github.com/aretw0/stoat/pkg/loader"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A9DC76"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6188"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FC9867"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#727072"))
)

// errCheckFailed makes the process exit non-zero once every note was reported.
var errCheckFailed = errors.New("some notes failed to parse")

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Parse every note below a directory",
	Long: `Check parses every note file below dir (default: the project root) and
reports each one as ok or failed. Diagnostics are printed below their note.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLoader(dirArg(args))
		if err != nil {
			return err
		}

		paths, err := l.List()
		if err != nil {
			return err
		}

		c := newChecker(cmd.OutOrStdout())
		for _, path := range paths {
			src, err := l.Load(path)
			if err != nil {
				c.fail(path, err)
				continue
			}
			c.check(src)
		}

		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(fmt.Sprintf("%d notes, %d failed", c.total, c.failed)))
		if c.failed > 0 {
			return errCheckFailed
		}
		return nil
	},
}

// checker parses sources and prints one status line per note.
type checker struct {
	out    io.Writer
	total  int
	failed int
	diags  []stoat.Diagnostic
	parser *stoat.Parser
}

func newChecker(out io.Writer) *checker {
	c := &checker{out: out}
	c.parser = newParser(stoat.WithDiagnosticHandler(func(d stoat.Diagnostic) {
		c.diags = append(c.diags, d)
	}))
	return c
}

// check is not safe for concurrent use; diagnostics are collected per call.
func (c *checker) check(src loader.Source) {
	c.diags = c.diags[:0]
	if _, err := c.parser.Parse(src.ID, src.Text); err != nil {
		c.fail(src.Path, err)
		return
	}

	c.total++
	fmt.Fprintf(c.out, "%s %s\n", okStyle.Render("ok  "), src.Path)
	for _, d := range c.diags {
		fmt.Fprintf(c.out, "     %s\n", warnStyle.Render(d.String()))
	}
}

func (c *checker) fail(path string, err error) {
	c.total++
	c.failed++
	fmt.Fprintf(c.out, "%s %s\n     %s\n", failStyle.Render("fail"), path, err)
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
