// b39geo converts coordinates to four BIP-39 words and back.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rawbytedev/b39geo"
	"github.com/rawbytedev/b39geo/internal/config"
	"github.com/rawbytedev/b39geo/pkg/wordlist"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

const usage = `b39geo - four-word geocoding over the BIP-39 wordlist

Usage:
  b39geo [global options] <command> [options] [args...]

Commands:
  encode   Encode a coordinate:        encode [-rounding nearest|floor|ceil] [-format f] <lat> <lon>
  decode   Decode four words:          decode [-corner] [-format f] <w1> <w2> <w3> <w4>
  size     Show the cell size:         size [-lat deg] (JSON on stdout, metres on stderr)
  unframe  Decode a compact frame:     unframe [-format f] <hex>
  shell    Start an interactive shell
  help     Show this help message

Global options:
  -config <file>     YAML settings (wordlist, rounding, center, format, log_level)
  -wordlist <file>   Newline-separated 2048-word list (default: BIP-39 English)
  -log-level <lvl>   debug, info, warn or error

Formats: text, json, yaml, cbor, frame

Examples:
  b39geo encode 37.7749 -122.4194
  b39geo decode mobile black thunder fortune
  b39geo encode -format frame -33.8568 151.2153`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// env is the state shared by every command of one invocation.
type env struct {
	cfg   config.Config
	words *wordlist.Wordlist
	level slog.Level
	codec *b39geo.Codec
}

// newCodec returns a codec over the configured list logging to w.
func (e *env) newCodec(w io.Writer) *b39geo.Codec {
	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: e.level}))
	return b39geo.New(b39geo.Options{Wordlist: e.words, Logger: log})
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("b39geo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfgPath := fs.String("config", "", "YAML settings file")
	wlPath := fs.String("wordlist", "", "wordlist file")
	logLevel := fs.String("log-level", "", "log level")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			fmt.Fprintln(stdout, usage)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, usage)
		return exitCommandError
	}
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage)
		return exitSuccess
	}

	e, err := setup(*cfgPath, *wlPath, *logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	e.codec = e.newCodec(stderr)

	switch cmd {
	case "encode":
		return runEncode(e, rest, stdout, stderr)
	case "decode":
		return runDecode(e, rest, stdout, stderr)
	case "size":
		return runSize(e, rest, stdout, stderr)
	case "unframe":
		return runUnframe(e, rest, stdout, stderr)
	case "shell":
		return runShell(e, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		fmt.Fprintln(stderr, usage)
		return exitCommandError
	}
}

// setup applies the config file, then the global flags on top of it.
func setup(cfgPath, wlPath, logLevel string) (*env, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if wlPath != "" {
		cfg.Wordlist = wlPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, level: level, words: wordlist.English()}
	if cfg.Wordlist != "" {
		if e.words, err = wordlist.Load(cfg.Wordlist); err != nil {
			return nil, err
		}
	}
	return e, nil
}
