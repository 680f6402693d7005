package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func newEditCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the counters interactively; they are saved when you quit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, outcome, release, err := g.initialize(cmd)
			if err != nil {
				return err
			}
			defer release()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "restore: %s\n", outcome)
			printCounters(out, m.Region())

			return m.Hooks().Run(cmd.Context(), func(ctx context.Context) error {
				return repl(cmd, m.Region())
			})
		},
	}
}

func repl(cmd *cobra.Command, r *Counters) error {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("show"),
		readline.PcItem("set",
			readline.PcItem("a"),
			readline.PcItem("b"),
			readline.PcItem("c"),
			readline.PcItem("count"),
			readline.PcItem("buffer"),
		),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "nvram> ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		quit, err := execLine(r, line, cmd.OutOrStdout())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// execLine runs one REPL command against r.
func execLine(r *Counters, line string, out io.Writer) (quit bool, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return false, nil
	}

	switch words[0] {
	case "show", "s":
		printCounters(out, r)
	case "set":
		if len(words) < 3 {
			return false, fmt.Errorf("usage: set <field> <value>")
		}
		value := strings.Join(words[2:], " ")
		if err := setField(r, words[1], value); err != nil {
			return false, err
		}
	case "help", "?":
		fmt.Fprintln(out, "commands: show | set <field> <value> | quit")
		fmt.Fprintln(out, "fields:   a, b, c, count, buffer")
	case "quit", "q", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try help)", words[0])
	}
	return false, nil
}
