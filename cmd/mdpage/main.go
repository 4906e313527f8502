package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma"
	chromastyles "github.com/alecthomas/chroma/styles"
	"github.com/skratchdot/open-golang/open"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"mdpage/internal/config"
	"mdpage/markdown"
	"mdpage/page"
	"mdpage/server"
	_ "mdpage/styles"
)

const defaultAddr = "127.0.0.1:5000"

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "mdpage: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "mdpage",
		Usage: "convert Markdown to SEO-ready HTML pages",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "input markdown file"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output html file"},
			&cli.StringFlag{Name: "indir", Aliases: []string{"d"}, Usage: "input directory (convert all .md)"},
			&cli.StringFlag{Name: "outdir", Aliases: []string{"D"}, Usage: "output directory"},
			&cli.StringFlag{Name: "css", Usage: "CSS href to include in generated HTML"},
			&cli.StringFlag{Name: "canonical", Usage: "canonical URL for SEO"},
			&cli.StringFlag{Name: "highlight", Usage: "chroma style for fenced code blocks"},
			&cli.StringFlag{Name: "config", Usage: "TOML file with default options"},
			&cli.BoolFlag{Name: "stdout", Usage: "write HTML to stdout (read stdin if no input file)"},
			&cli.BoolFlag{Name: "serve", Usage: "run the interactive web form"},
			&cli.BoolFlag{Name: "open", Usage: "open the web form in a browser (with --serve)"},
			&cli.StringFlag{Name: "addr", Usage: "listen address for --serve"},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	var cfg config.Config
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	css := fallback(cmd.String("css"), cfg.Stylesheet)
	canonical := fallback(cmd.String("canonical"), cfg.Canonical)
	highlight := fallback(cmd.String("highlight"), cfg.Highlight)
	addr := fallback(cmd.String("addr"), cfg.Addr, defaultAddr)

	var opts []markdown.Option
	if highlight != "" {
		style, err := highlightStyle(highlight)
		if err != nil {
			return err
		}
		opts = append(opts, markdown.WithHighlighting(style))
	}
	converter := markdown.New(opts...)

	switch {
	case cmd.Bool("serve"):
		return serve(converter, addr, cmd.Bool("open"))
	case cmd.String("input") != "" && cmd.String("output") != "":
		return convertFile(converter, cmd.String("input"), cmd.String("output"), css, canonical)
	case cmd.String("indir") != "" && cmd.String("outdir") != "":
		return convertDir(converter, cmd.String("indir"), cmd.String("outdir"), css, canonical)
	case cmd.Bool("stdout"):
		return convertStream(converter, cmd.String("input"), css, canonical)
	default:
		return cli.ShowAppHelp(cmd)
	}
}

// highlightStyle resolves a chroma style name. Unknown names are an error
// rather than a silent fall back to the default palette.
func highlightStyle(name string) (*chroma.Style, error) {
	if style, ok := chromastyles.Registry[name]; ok {
		return style, nil
	}
	return nil, fmt.Errorf("unknown highlight style %q (available: %s)",
		name, strings.Join(chromastyles.Names(), ", "))
}

func fallback(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func pageOptions(css, canonical string) []page.Option {
	var opts []page.Option
	if css != "" {
		opts = append(opts, page.WithStylesheet(css))
	}
	if canonical != "" {
		opts = append(opts, page.WithCanonical(canonical))
	}
	return opts
}

func convertFile(converter *markdown.Converter, inPath, outPath, css, canonical string) error {
	source, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}
	rendered := page.Render(converter.Convert(string(source)), pageOptions(css, canonical)...)
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func convertDir(converter *markdown.Converter, inDir, outDir, css, canonical string) error {
	matches, err := filepath.Glob(filepath.Join(inDir, "*.md"))
	if err != nil {
		return fmt.Errorf("listing %s: %w", inDir, err)
	}
	for _, inPath := range matches {
		stem := strings.TrimSuffix(filepath.Base(inPath), ".md")
		outPath := filepath.Join(outDir, stem+".html")
		if err := convertFile(converter, inPath, outPath, css, canonical); err != nil {
			return err
		}
	}
	return nil
}

func convertStream(converter *markdown.Converter, inPath, css, canonical string) error {
	var source []byte
	var err error
	if inPath != "" {
		source, err = os.ReadFile(inPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", inPath, err)
		}
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "reading markdown from stdin; press Ctrl-D to finish")
		}
		source, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}
	rendered := page.Render(converter.Convert(string(source)), pageOptions(css, canonical)...)
	_, err = os.Stdout.WriteString(rendered)
	return err
}

func serve(converter *markdown.Converter, addr string, openBrowser bool) error {
	store, err := server.OpenStore("")
	if err != nil {
		return err
	}
	defer store.Close()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	srv := server.New(converter, store, logger)
	if openBrowser {
		go func() {
			if err := open.Run("http://" + addr); err != nil {
				logger.Printf("opening browser: %v", err)
			}
		}()
	}
	return srv.ListenAndServe(addr)
}
