package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/dimcalc"
)

const prompt = "> "

var commands = []string{":help", ":units", ":names", ":reload", ":quit"}

// repl reads and evaluates lines until EOF or ctx is done.
func repl(ctx context.Context, src *configSource, p printer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(s string) []string {
		return complete(src.Config(), s)
	})

	history := filepath.Join(os.TempDir(), ".dimcalc_history")
	if f, err := os.Open(history); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(p.w, "dimcalc: units are", strings.Join(src.Config().Units(), ", "))
	fmt.Fprintln(p.w, "Type :help for commands, Ctrl+D to quit")
	for ctx.Err() == nil {
		in, err := line.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(p.w)
			return
		case err != nil:
			src.log.Error().Err(err).Msg("reading input")
			return
		}
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		line.AppendHistory(in)
		if strings.HasPrefix(in, ":") {
			if !command(src, p.w, in) {
				return
			}
			continue
		}
		p.one(src.Config(), in)
	}
}

// command runs a REPL command. It returns false to quit.
func command(src *configSource, w io.Writer, cmd string) bool {
	switch cmd {
	case ":help":
		fmt.Fprintln(w, "Enter expressions to evaluate. Commands:")
		fmt.Fprintln(w, "  :units   list allowed units")
		fmt.Fprintln(w, "  :names   list functions and constants")
		fmt.Fprintln(w, "  :reload  reload the configuration")
		fmt.Fprintln(w, "  :quit    exit")
	case ":units":
		fmt.Fprintln(w, strings.Join(src.Config().Units(), " "))
	case ":names":
		names := src.Config().Names()
		sort.Strings(names)
		fmt.Fprintln(w, strings.Join(names, " "))
	case ":reload":
		if err := src.reload(); err != nil {
			fmt.Fprintln(w, err)
		}
	case ":quit", ":exit":
		return false
	default:
		fmt.Fprintf(w, "unknown command %s; try :help\n", cmd)
	}
	return true
}

// complete completes the word at the end of s with function and constant
// names, or with commands at the start of the line.
func complete(cfg *dimcalc.Config, s string) []string {
	if s == "" || strings.HasSuffix(s, " ") {
		return nil
	}
	if strings.HasPrefix(s, ":") {
		var r []string
		for _, c := range commands {
			if strings.HasPrefix(c, s) {
				r = append(r, c)
			}
		}
		return r
	}
	i := strings.LastIndexFunc(s, func(r rune) bool {
		return !(r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
	head, word := s[:i+1], s[i+1:]
	if word == "" {
		return nil
	}
	var r []string
	for _, name := range cfg.Names() {
		if strings.HasPrefix(name, word) {
			r = append(r, head+name)
		}
	}
	sort.Strings(r)
	return r
}
