package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/peterh/liner"

	"ashn.dev/thor"
)

const (
	historyFile = ".thor_history"
	promptMain  = "> "
	promptCont  = "... "
)

func reportError(w io.Writer, err error) {
	var located thor.Located
	if errors.As(err, &located) && located.ErrorLocation() != nil {
		location := located.ErrorLocation()
		fmt.Fprintf(w, "[%v:%v] %v\n", location.File, location.Line, err)
		return
	}
	fmt.Fprintf(w, "%v\n", err)
}

func runSource(ctx *thor.Context, source string, options thor.RunOptions) error {
	_, err := thor.Run(ctx, source, options)
	return err
}

func runFile(ctx *thor.Context, path string, options thor.RunOptions) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	options.Location = &thor.SourceLocation{File: path, Line: 1, Column: 1}
	return runSource(ctx, string(bytes), options)
}

// Read one REPL entry, continuing onto further lines while braces are open.
func readEntry(ln *liner.State) (string, error) {
	var sb strings.Builder
	prompt := promptMain
	depth := 0
	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth <= 0 {
			return sb.String(), nil
		}
		prompt = promptCont
	}
}

func repl(ctx *thor.Context, options thor.RunOptions) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	historyPath := filepath.Join(home, historyFile)
	if f, err := os.Open(historyPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	options.Location = &thor.SourceLocation{File: "<repl>", Line: 1, Column: 1}
	for {
		entry, err := readEntry(ln)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(trimmed, "\n", " "))
		if trimmed == ":quit" {
			break
		}
		if trimmed == ":env" {
			for _, name := range ctx.Globals.Names() {
				fmt.Printf("%s = %v\n", name, ctx.Globals.Get(name))
			}
			continue
		}

		value, err := thor.Run(ctx, entry, options)
		if err != nil {
			reportError(os.Stdout, err)
			continue
		}
		fmt.Println(value)
	}

	if f, err := os.Create(historyPath); err == nil {
		ln.WriteHistory(f)
		f.Close()
	}
}

func usage(w io.Writer) {
	program := os.Args[0]
	fmt.Fprintf(w, `usage:
  %s [OPTIONS] FILE
  %s [OPTIONS] [-c|--command] COMMAND
  %s [OPTIONS]

options:
  -c, --command     Execute the provided command.
  --config FILE     Bootstrap the global scope from a YAML config file.
  --dump-tokens     Print the lexed token sequence before evaluation.
  --dump-ast        Print the parsed syntax tree before evaluation.
  -h, --help        Display this help text and exit.

Without a FILE or COMMAND an interactive session is started.
`, program, program, program)
}

func main() {
	reCommand := regexp.MustCompile(`^-+c(?:ommand)?(?:=(.*))?$`)
	reConfig := regexp.MustCompile(`^-+config(?:=(.*))?$`)
	reDumpTokens := regexp.MustCompile(`^-+dump-tokens$`)
	reDumpAst := regexp.MustCompile(`^-+dump-ast$`)
	reHelp := regexp.MustCompile(`^-+h(?:elp)?$`)

	var cmds *string
	var file *string
	var configPath *string
	dumpTokens := false
	dumpAst := false
	argi := 1
	for argi < len(os.Args) {
		arg := os.Args[argi]

		// Remaining arg is processed verbatim.
		if arg == "--" {
			if argi+1 < len(os.Args) {
				file = &os.Args[argi+1]
			}
			break
		}

		// -c, -command
		if m := reCommand.FindStringSubmatch(arg); m != nil {
			// -c='print(1)'
			if m[1] != "" {
				cmds = &m[1]
				argi += 1
				continue
			}

			// -c 'print(1)'
			if argi+1 < len(os.Args) {
				cmds = &os.Args[argi+1]
				argi += 2
				continue
			}

			fmt.Fprintf(os.Stderr, "error: expected command argument\n")
			usage(os.Stderr)
			os.Exit(1)
		}

		// -config
		if m := reConfig.FindStringSubmatch(arg); m != nil {
			if m[1] != "" {
				configPath = &m[1]
				argi += 1
				continue
			}
			if argi+1 < len(os.Args) {
				configPath = &os.Args[argi+1]
				argi += 2
				continue
			}

			fmt.Fprintf(os.Stderr, "error: expected config file argument\n")
			usage(os.Stderr)
			os.Exit(1)
		}

		// -dump-tokens
		if reDumpTokens.MatchString(arg) {
			dumpTokens = true
			argi += 1
			continue
		}

		// -dump-ast
		if reDumpAst.MatchString(arg) {
			dumpAst = true
			argi += 1
			continue
		}

		// -h, -help
		if reHelp.MatchString(arg) {
			usage(os.Stdout)
			os.Exit(0)
		}

		if strings.HasPrefix(arg, "-") {
			fmt.Fprintf(os.Stderr, "error: unknown flag %s\n", arg)
			usage(os.Stderr)
			os.Exit(1)
		}

		if file != nil {
			fmt.Fprintf(os.Stderr, "error: unexpected argument %s\n", arg)
			usage(os.Stderr)
			os.Exit(1)
		}
		file = &os.Args[argi]
		argi += 1
	}

	config := thor.DefaultConfig()
	if configPath != nil {
		loaded, err := thor.LoadConfig(*configPath)
		if err != nil {
			reportError(os.Stderr, err)
			os.Exit(1)
		}
		config = loaded
	}

	ctx := thor.NewContext()
	if err := ctx.ApplyConfig(config); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
	options := config.RunOptions()
	options.LogTokens = options.LogTokens || dumpTokens
	options.LogAST = options.LogAST || dumpAst

	var err error
	if cmds != nil {
		options.Location = &thor.SourceLocation{File: "<command>", Line: 1, Column: 1}
		err = runSource(&ctx, *cmds, options)
	} else if file != nil {
		err = runFile(&ctx, *file, options)
	} else {
		repl(&ctx, options)
	}

	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
