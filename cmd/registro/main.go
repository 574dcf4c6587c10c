package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/vfpar/registro/internal/app"
)

var version = "dev"

const usage = `uso: registro [flags] [comando]

comandos:
  (nenhum)                   abre a interface no terminal
  list [-q termo] [-json]    lista empresas
  show <id> [-json]          mostra uma empresa
  insights [-q termo] [-json] gera insights sobre as empresas listadas

flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("registro", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file path (default ~/.config/registro/config.toml)")
	prefsPath := fs.String("prefs", "", "preferences file path (default ~/.config/registro/prefs.toml)")
	debug := fs.Bool("debug", false, "debug logging")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "registro %s\n", version)
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Debug:      *debug,
		Version:    version,
	}

	var err error
	rest := fs.Args()
	if len(rest) == 0 {
		err = app.Run(ctx, opts)
	} else {
		err = dispatch(ctx, opts, rest[0], rest[1:], stdout, stderr)
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "registro: %v\n", err)
		fs.Usage()
		return 2
	default:
		fmt.Fprintf(stderr, "registro: %v\n", err)
		return 1
	}
}

var errUsage = errors.New("bad usage")

func dispatch(ctx context.Context, opts app.Options, cmd string, args []string, stdout, stderr io.Writer) error {
	sub := flag.NewFlagSet(cmd, flag.ContinueOnError)
	sub.SetOutput(stderr)
	asJSON := sub.Bool("json", false, "print JSON")

	switch cmd {
	case "list":
		term := sub.String("q", "", "search term")
		if err := sub.Parse(args); err != nil {
			return err
		}
		return app.List(ctx, opts, stdout, app.ListOptions{Term: *term, JSON: *asJSON})
	case "show":
		if err := sub.Parse(args); err != nil {
			return err
		}
		// Allow "show 7 -json" as well as "show -json 7".
		pos := sub.Args()
		if len(pos) == 0 {
			return fmt.Errorf("%w: show needs an id", errUsage)
		}
		id, err := strconv.ParseInt(pos[0], 10, 64)
		if err != nil {
			return fmt.Errorf("show: invalid id %q", pos[0])
		}
		if err := sub.Parse(pos[1:]); err != nil {
			return err
		}
		return app.Show(ctx, opts, stdout, app.ShowOptions{ID: id, JSON: *asJSON})
	case "insights":
		term := sub.String("q", "", "search term")
		if err := sub.Parse(args); err != nil {
			return err
		}
		return app.Insights(ctx, opts, stdout, app.InsightOptions{Term: *term, JSON: *asJSON})
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}
