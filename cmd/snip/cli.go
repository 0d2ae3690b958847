package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/snip/internal/clipboard"
	"github.com/hpungsan/snip/internal/config"
	"github.com/hpungsan/snip/internal/errors"
	"github.com/hpungsan/snip/internal/fuzzy"
	"github.com/hpungsan/snip/internal/mcp"
	"github.com/hpungsan/snip/internal/ops"
	"github.com/hpungsan/snip/internal/prompt"
	"github.com/hpungsan/snip/internal/snippet"
	"github.com/hpungsan/snip/internal/store"
	"github.com/hpungsan/snip/internal/web"
)

// divider separates records in search and list output.
const divider = "----------------------------------------"

// usageHint follows the help text when no command is given.
const usageHint = "Run 'snip <command> --help' for details, e.g. 'snip add' to save your first snippet."

// env holds what commands need beyond their own flags.
type env struct {
	store     store.Store
	cfg       *config.Config
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	clipboard clipboard.Writer
	workDir   string
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(e *env) *cli.App {
	app := &cli.App{
		Name:      "snip",
		Usage:     "Personal code snippet manager",
		Version:   Version,
		Writer:    e.out,
		ErrWriter: e.errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "Log at debug level to stderr"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logLevel.Set(slog.LevelDebug)
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("unknown command %q (run 'snip --help' for usage)", c.Args().First())))
			}
			if err := cli.ShowAppHelp(c); err != nil {
				return err
			}
			fmt.Fprintln(e.out)
			fmt.Fprintln(e.out, usageHint)
			return nil
		},
		Commands: []*cli.Command{
			addCmd(e),
			searchCmd(e),
			listCmd(e),
			exportCmd(e),
			copyCmd(e),
			importCmd(e),
			serveCmd(e),
			mcpCmd(e),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a new snippet (interactive)",
		Action: func(c *cli.Context) error {
			p := prompt.New(e.in, e.out)
			answers, err := p.Collect(ops.AddFields)
			if err != nil {
				if stderrors.Is(err, prompt.ErrInputClosed) {
					return outputError(errors.NewInvalidRequest("add aborted: input closed before a title was entered"))
				}
				return outputError(errors.NewInternal(err))
			}

			output, err := ops.Add(c.Context, e.store, ops.AddInputFromAnswers(answers))
			if err != nil {
				return outputError(err)
			}

			fmt.Fprintf(e.out, "Snippet %q saved with id %d.\n", output.Snippet.Title, output.Snippet.ID)
			return nil
		},
	}
}

// searchCmd creates the search command.
func searchCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Fuzzy-search snippets and optionally copy one to the clipboard",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")

			output, err := ops.Search(c.Context, e.store, fuzzy.New(e.cfg.SearchThreshold), ops.SearchInput{Query: query})
			if err != nil {
				return outputError(err)
			}

			if len(output.Items) == 0 {
				fmt.Fprintf(e.out, "No snippets found matching %q.\n", strings.TrimSpace(query))
				return nil
			}

			for i := range output.Items {
				printSnippet(e.out, &output.Items[i].Snippet, true)
			}

			p := prompt.New(e.in, e.out)
			answer, err := p.Ask(prompt.Field{Name: "id", Label: "Enter a snippet ID to copy (or press Enter to skip)"})
			if err != nil || answer == "" {
				return nil
			}
			// The search itself succeeded; a failed copy is only reported.
			if err := copySnippet(c.Context, e, answer); err != nil {
				fmt.Fprintf(e.errOut, "error: %v\n", err)
			}
			return nil
		},
	}
}

// listCmd creates the list command.
func listCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List snippets, optionally filtered by language and category",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "lang", Aliases: []string{"l"}, Usage: "Only snippets in this language (case-insensitive)"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Only snippets in this category (case-insensitive)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, e.store, ops.ListInput{
				Language: c.String("lang"),
				Category: c.String("category"),
			})
			if err != nil {
				return outputError(err)
			}

			if len(output.Items) == 0 {
				fmt.Fprintln(e.out, "No snippets found.")
				return nil
			}

			for i := range output.Items {
				printSnippet(e.out, &output.Items[i], false)
			}
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export all snippets to snippets-export.json or snippets-export.md",
		ArgsUsage: "<json|markdown>",
		Action: func(c *cli.Context) error {
			format := c.Args().First()

			output, err := ops.Export(c.Context, e.store, e.cfg, ops.ExportInput{
				Format:  format,
				WorkDir: e.workDir,
			})
			if err != nil {
				if errors.Is(err, errors.ErrUnsupportedFormat) {
					fmt.Fprintf(e.out, "Unsupported format %q. Use json or markdown.\n", strings.TrimSpace(format))
					return nil
				}
				return outputError(err)
			}

			fmt.Fprintf(e.out, "Exported %d snippets to %s.\n", output.Count, output.Path)
			return nil
		},
	}
}

// copyCmd creates the copy command.
func copyCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "copy",
		Usage:     "Copy a snippet's code to the clipboard",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("snippet id is required"))
			}
			if _, err := ops.ParseID(c.Args().First()); err != nil {
				return outputError(err)
			}
			return copySnippet(c.Context, e, c.Args().First())
		},
	}
}

// importCmd creates the import command.
func importCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Append snippets from a JSON export file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Snippets JSON file in the working directory or an allowed_paths directory"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(c.Context, e.store, e.cfg, ops.ImportInput{
				Path:    c.String("path"),
				WorkDir: e.workDir,
			})
			if err != nil {
				return outputError(err)
			}

			fmt.Fprintf(e.out, "Imported %d snippets (%d total).\n", output.Imported, output.Total)
			return nil
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Browse snippets in a local read-only web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Value: 8765, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			port := c.Int("port")
			if port < 1 || port > 65535 {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("port must be between 1 and 65535 (got %d)", port)))
			}

			srv, err := web.NewServer(e.store, e.cfg, Version, c.String("bind"), port)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			fmt.Fprintf(e.out, "Serving snippets at http://%s (Ctrl+C to stop)\n", srv.Addr)

			if err := web.Run(c.Context, srv); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve snippet tools over MCP (stdio)",
		Action: func(_ *cli.Context) error {
			if err := mcp.Run(e.store, e.cfg, Version); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// copySnippet copies the code of the snippet with the given id. Unknown or
// malformed ids print a notice and return nil.
func copySnippet(ctx context.Context, e *env, rawID string) error {
	rawID = strings.TrimSpace(rawID)

	id, err := ops.ParseID(rawID)
	if err != nil {
		fmt.Fprintf(e.out, "Snippet with ID %s not found.\n", rawID)
		return nil
	}

	sn, err := ops.Fetch(ctx, e.store, ops.FetchInput{ID: id})
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			fmt.Fprintf(e.out, "Snippet with ID %s not found.\n", rawID)
			return nil
		}
		return outputError(err)
	}

	if err := e.clipboard.WriteAll(sn.Code); err != nil {
		return outputError(errors.NewInternal(fmt.Errorf("could not copy to clipboard: %w", err)))
	}

	fmt.Fprintf(e.out, "Copied snippet %d to clipboard.\n", sn.ID)
	return nil
}

// printSnippet writes one record. withBody adds the description and code.
func printSnippet(w io.Writer, sn *snippet.Snippet, withBody bool) {
	fmt.Fprintf(w, "[%d] %s (%s)\n", sn.ID, sn.Title, sn.Language)
	fmt.Fprintf(w, "Category: %s\n", sn.Category)
	fmt.Fprintf(w, "Tags: %s\n", sn.TagList())
	if withBody {
		fmt.Fprintf(w, "Description: %s\n", sn.DescriptionOrNone())
		fmt.Fprintln(w, "Code:")
		fmt.Fprintln(w, sn.Code)
	}
	fmt.Fprintln(w, divider)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var sErr *errors.SnipError
	if stderrors.As(err, &sErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
