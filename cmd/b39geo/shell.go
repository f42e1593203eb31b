package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

const shellHelp = `Commands:
  encode [-rounding r] [-format f] <lat> <lon>
  decode [-corner] [-format f] <w1> <w2> <w3> <w4>
  size [-lat deg]
  unframe [-format f] <hex>
  help, ?
  exit, quit`

func runShell(e *env, stderr io.Writer) int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "b39geo> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("encode"),
			readline.PcItem("decode"),
			readline.PcItem("size"),
			readline.PcItem("unframe"),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
	})
	if err != nil {
		return fail(stderr, fmt.Errorf("failed to create readline: %w", err))
	}
	defer rl.Close()

	// Route debug logs through readline so they do not garble the prompt.
	e.codec = e.newCodec(rl.Stderr())

	fmt.Fprintln(rl.Stdout(), shellHelp)
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return exitSuccess
		}
		if quit := execLine(e, line, rl.Stdout(), rl.Stderr()); quit {
			return exitSuccess
		}
	}
}

// execLine runs one shell command and reports whether the shell should exit.
func execLine(e *env, line string, stdout, stderr io.Writer) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]
	switch cmd {
	case "exit", "quit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(stdout, shellHelp)
	case "encode", "e":
		runEncode(e, args, stdout, stderr)
	case "decode", "d":
		runDecode(e, args, stdout, stderr)
	case "size":
		runSize(e, args, stdout, stderr)
	case "unframe":
		runUnframe(e, args, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s (type 'help')\n", cmd)
	}
	return false
}
