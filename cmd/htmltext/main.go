// CLAUDE:SUMMARY htmltext CLI: convert (file/stdin → stdout), serve (chi HTTP API behind shield), mcp (stdio MCP server).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hazyhaar/htmltext/htmltext"
	"github.com/hazyhaar/htmltext/kit"
)

const version = "1.0.0"

const usage = `usage: htmltext <command> [flags]

commands:
  convert [flags] [file]   convert a file (or stdin) and print the text
  serve   [flags]          run the HTTP API
  mcp     [flags]          run the MCP server on stdio

run "htmltext <command> -h" for the flags of a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "convert":
		err = runConvert(ctx, args, os.Stdin, os.Stdout)
	case "serve":
		err = runServe(ctx, args)
	case "mcp":
		err = runMCP(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		slog.Error(cmd, "error", err)
		os.Exit(1)
	}
}

// commonFlags are shared by every command. Flags given on the command line
// override the options file.
type commonFlags struct {
	fs               *flag.FlagSet
	config           string
	wordwrap         int
	preserveNewlines bool
	sanitize         bool
	logLevel         string
}

func newFlagSet(name string) *commonFlags {
	cf := &commonFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	cf.fs.StringVar(&cf.config, "config", env("HTMLTEXT_CONFIG", ""), "YAML options file")
	cf.fs.IntVar(&cf.wordwrap, "wordwrap", 80, "line width, 0 disables wrapping")
	cf.fs.BoolVar(&cf.preserveNewlines, "preserve-newlines", false, "keep newlines found in text")
	cf.fs.BoolVar(&cf.sanitize, "sanitize", false, "sanitize the input before conversion")
	cf.fs.StringVar(&cf.logLevel, "log-level", env("LOG_LEVEL", "info"), "debug, info, warn or error")
	return cf
}

func (cf *commonFlags) setup() (*htmltext.Converter, *slog.Logger, error) {
	logger := newLogger(cf.logLevel)
	slog.SetDefault(logger)

	opts := htmltext.DefaultOptions()
	if cf.config != "" {
		var err error
		if opts, err = htmltext.LoadOptionsFile(cf.config); err != nil {
			return nil, nil, err
		}
	}
	cf.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "wordwrap":
			opts.Wordwrap = cf.wordwrap
		case "preserve-newlines":
			opts.PreserveNewlines = cf.preserveNewlines
		case "sanitize":
			opts.Sanitize = cf.sanitize
		}
	})
	opts.Logger = logger

	conv, err := htmltext.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return conv, logger, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// --- convert ---

func runConvert(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cf := newFlagSet("convert")
	format := cf.fs.String("format", htmltext.OutputText, "output format: text or markdown")
	if err := cf.fs.Parse(args); err != nil {
		return err
	}
	conv, logger, err := cf.setup()
	if err != nil {
		return err
	}

	in := stdin
	if path := cf.fs.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	endpoint := kit.Logging(logger, "convert")(conv.ConvertEndpoint())
	resp, err := endpoint(kit.WithTransport(ctx, "cli"), &htmltext.ConvertRequest{
		HTML:   string(data),
		Format: *format,
	})
	if err != nil {
		return err
	}
	text := resp.(*htmltext.ConvertResponse).Text
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err = io.WriteString(stdout, text)
	return err
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
