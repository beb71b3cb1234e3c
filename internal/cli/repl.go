package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.starlark.net/starlark"

	"github.com/ezrec/bitvec/internal/config"
	"github.com/ezrec/bitvec/starbin"
)

// NewReplCommand creates the repl command.
func NewReplCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive Starlark prompt with binary numbers",
		Long: `Start an interactive Starlark session with the binary builtins
predeclared. Globals persist between lines. A line ending in ':' starts a
block, which ends at the next blank line. Type 'exit' or press Ctrl-D to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}
}

func runRepl(opts *RootOptions, cmd *cobra.Command) (err error) {
	repl := opts.Config.Repl

	history := config.ExpandHome(repl.HistoryFile)
	if history != "" {
		err = os.MkdirAll(filepath.Dir(history), 0o755)
		if err != nil {
			log.Printf("repl: history disabled: %v", err)
			history = ""
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          repl.Prompt,
		HistoryFile:     history,
		HistoryLimit:    repl.HistoryLimit,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return
	}
	defer rl.Close()

	out := cmd.OutOrStdout()
	session := starbin.NewSession("repl", func(msg string) {
		fmt.Fprintln(out, msg)
	})

	return replLoop(session, rl.Readline, out, opts.Config.Format.Default)
}

// replLoop reads chunks with readLine and evaluates them until end of
// input. Evaluation errors are printed and do not stop the loop.
func replLoop(session *starbin.Session, readLine func() (string, error), out io.Writer, spec string) error {
	var block []string

	for {
		line, err := readLine()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			block = nil
			continue
		case errors.Is(err, io.EOF):
			if len(block) == 0 {
				return nil
			}
			line = ""
		case err != nil:
			return err
		}

		trimmed := strings.TrimSpace(line)

		if len(block) > 0 {
			if trimmed != "" {
				block = append(block, line)
				continue
			}
			line = strings.Join(block, "\n")
			block = nil
		} else {
			switch {
			case trimmed == "":
				continue
			case trimmed == "exit" || trimmed == "quit":
				return nil
			case strings.HasSuffix(trimmed, ":"):
				block = []string{line}
				continue
			}
		}

		value, err := session.Eval(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if value == starlark.None {
			continue
		}

		text, err := render(value, spec)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintln(out, text)
	}
}
