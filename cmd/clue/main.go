// cmd/clue/main.go runs a deduction script and prints the journal and final board.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joedrago/clue/internal/config"
	"github.com/joedrago/clue/internal/game"
	"github.com/joedrago/clue/internal/render"
	"github.com/joedrago/clue/internal/script"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func syntax(w io.Writer) int {
	fmt.Fprintln(w, "clue [-n|-b|-c] [-v] FILENAME")
	return 1
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		return fatal(stderr, err)
	}
	mode, err := render.ParseMode(cfg.Output)
	if err != nil {
		return fatal(stderr, err)
	}

	verbose := false
	filename := ""
	for _, arg := range args {
		switch arg {
		case "-n":
			mode = render.Plain
		case "-b":
			mode = render.HTML
		case "-c":
			mode = render.Color
		case "-v":
			verbose = true
		default:
			if filename != "" {
				return syntax(stdout)
			}
			filename = arg
		}
	}
	if filename == "" {
		return syntax(stdout)
	}

	logger := cfg.Logger()
	logger.SetOutput(stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()
	backends := game.ConnectBackends(ctx, cfg, logger)
	defer backends.Close()

	sess := game.NewSession(backends.Apply(game.Options{MaxPlayers: cfg.MaxPlayers, Logger: logger}))
	out := render.New(stdout, mode, sess.Solver)
	sess.Listen(out.Event)

	out.Begin()
	if err := sess.LoadFile(filename); err != nil {
		out.End()
		return fatal(stderr, err)
	}
	out.Board()
	out.End()

	if err := sess.Finish(ctx); err != nil {
		logger.WithError(err).Warn("finish session")
	}
	return 0
}

// fatal reports err with its script location, when it has one.
func fatal(w io.Writer, err error) int {
	msg := "\nFatal Error"
	var located *script.Error
	if errors.As(err, &located) {
		msg += fmt.Sprintf(" (%s:%d): %v", located.File, located.Line, located.Err)
	} else {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(w, msg)
	return 1
}
