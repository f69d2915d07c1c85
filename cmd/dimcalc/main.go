package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/dimcalc"
	"github.com/zephyrtronium/dimcalc/presets"
)

func main() {
	var (
		inname, preset, profile, locale string
		nl, echo, watch, verbose        bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&preset, "preset", "css", "configuration preset: "+strings.Join(presets.Names, ", "))
	flag.StringVar(&profile, "profile", "", "YAML unit profile; overrides -preset")
	flag.StringVar(&locale, "locale", "", "format numbers for a locale, e.g. de-DE")
	flag.BoolVar(&nl, "n", false, "evaluate separate input lines separately")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&watch, "watch", false, "reload the profile when it changes (REPL only)")
	flag.BoolVar(&verbose, "v", false, "log evaluation details")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	if verbose {
		log = log.Level(zerolog.DebugLevel)
	}
	src := &configSource{
		load: func() (*dimcalc.Config, error) {
			cfg, err := loadConfig(preset, profile)
			if err != nil {
				return nil, err
			}
			return cfg.With(dimcalc.Logger(log)), nil
		},
		log: log,
	}
	if err := src.reload(); err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	f, err := newFormatter(locale)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -locale")
	}
	p := printer{w: os.Stdout, f: f, echo: echo}

	if inname == "" && flag.NArg() == 0 && isatty.IsTerminal(os.Stdin.Fd()) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if watch {
			if profile == "" {
				log.Warn().Msg("-watch has no effect without -profile")
			} else if err := src.watch(ctx, profile); err != nil {
				log.Error().Err(err).Str("profile", profile).Msg("cannot watch profile")
			}
		}
		repl(ctx, src, p)
		return
	}

	ins, err := inputs(inname, flag.Args(), nl)
	if err != nil {
		log.Fatal().Err(err).Msg("reading input")
	}
	if !p.all(src.Config(), ins) {
		os.Exit(1)
	}
}

// loadConfig builds the configuration from a profile if one is named, or
// else from a preset.
func loadConfig(preset, profile string) (*dimcalc.Config, error) {
	if profile != "" {
		return presets.LoadProfile(profile)
	}
	return presets.Named(preset)
}

// inputs collects the sources to evaluate. Arguments form one input. With no
// arguments, the input file or stdin is read, one input per line if nl is
// set or else as a whole.
func inputs(inname string, args []string, nl bool) ([]string, error) {
	if len(args) != 0 && inname == "" {
		return []string{strings.Join(args, " ")}, nil
	}
	var r io.Reader
	switch inname {
	case "", "-":
		r = os.Stdin
	default:
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	ins, err := readInputs(r, nl)
	if err != nil {
		return nil, err
	}
	if len(args) != 0 {
		ins = append(ins, strings.Join(args, " "))
	}
	return ins, nil
}

func readInputs(r io.Reader, nl bool) ([]string, error) {
	if !nl {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return []string{string(b)}, nil
	}
	var ins []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		ins = append(ins, sc.Text())
	}
	return ins, sc.Err()
}

// printer writes results of inputs.
type printer struct {
	w    io.Writer
	f    *formatter
	echo bool
}

// one evaluates src and prints its results on one line, or the error.
// It reports whether evaluation succeeded.
func (p printer) one(cfg *dimcalc.Config, src string) bool {
	exprs, err := dimcalc.Parse(src, cfg)
	if err != nil {
		fmt.Fprintln(p.w, err)
		return false
	}
	rs := make([]string, len(exprs))
	for i, e := range exprs {
		r, err := e.Eval()
		if err != nil {
			fmt.Fprintln(p.w, err)
			return false
		}
		rs[i] = p.f.format(r)
		if p.echo {
			rs[i] = e.String() + " : " + rs[i]
		}
	}
	sep := " "
	if p.echo {
		sep = "\n"
	}
	fmt.Fprintln(p.w, strings.Join(rs, sep))
	return true
}

// all evaluates each input in turn. It reports whether all succeeded.
func (p printer) all(cfg *dimcalc.Config, ins []string) bool {
	ok := true
	for _, src := range ins {
		if !p.one(cfg, src) {
			ok = false
		}
	}
	return ok
}
