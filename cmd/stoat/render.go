package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/stoat"
	"github.com/aretw0/stoat/pkg/adapters/frontmatter"
	"github.com/aretw0/stoat/pkg/loader"
)

var (
	renderFormat   string
	renderPreamble bool
)

var renderCmd = &cobra.Command{
	Use:   "render [files]",
	Short: "Parse notes and render them back",
	Long: `Render parses each file and prints it in the chosen format.
Reads standard input when no file is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := cfg.RenderFormat()
		if cmd.Flags().Changed("format") {
			var err error
			if format, err = stoat.ParseFormat(renderFormat); err != nil {
				return err
			}
		}

		p := newParser()
		return eachNote(args, func(id stoat.NoteID, text []byte) error {
			note, err := p.Parse(id, text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if renderPreamble {
				preamble, err := frontmatter.Encode(note.Metadata())
				if err != nil {
					return fmt.Errorf("encode preamble of %s: %w", id, err)
				}
				if _, err := out.Write(preamble); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(out, stoat.Render(note, format))
			return err
		})
	},
}

var textCmd = &cobra.Command{
	Use:   "text [files]",
	Short: "Print the text content of notes",
	Long: `Text parses each file and prints its text with all markup removed.
Reads standard input when no file is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newParser()
		return eachNote(args, func(id stoat.NoteID, text []byte) error {
			note, err := p.Parse(id, text)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), stoat.TextContent(note))
			return err
		})
	},
}

// eachNote calls fn for every file in paths, or once for standard input.
func eachNote(paths []string, fn func(id stoat.NoteID, text []byte) error) error {
	if len(paths) == 0 {
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return fn("stdin", text)
	}

	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := fn(loader.IDFromPath(path), text); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(textCmd)
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "markdown", "Output format (markdown, plain)")
	renderCmd.Flags().BoolVar(&renderPreamble, "preamble", false, "Prefix the output with the note metadata as YAML")
}
