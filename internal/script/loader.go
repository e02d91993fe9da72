// internal/script/loader.go
package script

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joedrago/clue/internal/solver"
	"github.com/sirupsen/logrus"
)

// DefaultMaxDepth bounds include nesting, which also stops include cycles.
const DefaultMaxDepth = 32

// Loader feeds a line-oriented command script into a solver. Processing stops at the
// first failing line.
type Loader struct {
	Solver *solver.Solver
	Logger logrus.FieldLogger

	// ReadFile loads included files. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)

	// DisableInclude rejects the include directive, for scripts from untrusted sources.
	DisableInclude bool

	MaxDepth int

	depth int
}

func NewLoader(s *solver.Solver, logger logrus.FieldLogger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{
		Solver:   s,
		Logger:   logger,
		ReadFile: os.ReadFile,
		MaxDepth: DefaultMaxDepth,
	}
}

// LoadFile runs the script at path. Includes inside it resolve relative to its directory.
func (l *Loader) LoadFile(path string) error {
	if l.MaxDepth > 0 && l.depth >= l.MaxDepth {
		return fmt.Errorf("%w: %s", ErrIncludeDepth, path)
	}
	readFile := l.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	data, err := readFile(path)
	if err != nil {
		return fmt.Errorf("read script %s: %w", path, err)
	}

	l.depth++
	defer func() { l.depth-- }()
	return l.Load(path, bytes.NewReader(data))
}

// Load runs a script read from r. name is used for error locations and includes.
func (l *Loader) Load(name string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if err := l.exec(name, line); err != nil {
			var located *Error
			if errors.As(err, &located) {
				return err
			}
			return &Error{File: name, Line: lineNo, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", name, err)
	}
	l.Logger.WithFields(logrus.Fields{"script": name, "lines": lineNo}).Debug("script loaded")
	return nil
}

func (l *Loader) exec(name, line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}
	words := strings.Fields(trimmed)
	action, args := words[0], words[1:]
	s := l.Solver

	switch action {
	case "include":
		if l.DisableInclude {
			return ErrIncludeDisabled
		}
		target := strings.TrimSpace(strings.TrimPrefix(trimmed, "include"))
		if target == "" {
			return fmt.Errorf("%w: include needs a path", ErrMissingArgument)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(name), target)
		}
		return l.LoadFile(target)

	case "player":
		if len(args) < 1 {
			return fmt.Errorf("%w: player needs a name", ErrMissingArgument)
		}
		_, err := s.AddPlayer(args[0], strings.Join(args[1:], " "))
		return err

	case "axis":
		if len(args) < 1 {
			return fmt.Errorf("%w: axis needs a name", ErrMissingArgument)
		}
		var display string
		if len(args) > 1 {
			display = args[1]
		}
		var prefix string
		if len(args) > 2 {
			prefix = strings.Join(args[2:], " ") + " "
		}
		_, err := s.AddAxis(args[0], display, prefix)
		return err

	case "card":
		if len(args) < 2 {
			return fmt.Errorf("%w: card needs an axis and a name", ErrMissingArgument)
		}
		_, err := s.AddCard(args[1], args[0], strings.Join(args[2:], " "))
		return err

	case "hand":
		if len(args) < 1 {
			return fmt.Errorf("%w: hand needs a player", ErrMissingArgument)
		}
		return s.RecordHand(args[0], args[1:])

	case "suggest":
		if len(args) < 1 {
			return fmt.Errorf("%w: suggest needs a player", ErrMissingArgument)
		}
		var cards, players []string
		for _, tok := range args[1:] {
			// "-" reads as "nobody showed" and is accepted without checking
			if tok == "-" {
				continue
			}
			ref := s.Resolve(tok)
			switch ref.Kind {
			case solver.RefCard:
				cards = append(cards, tok)
			case solver.RefPlayer:
				players = append(players, tok)
			default:
				return fmt.Errorf("%w: unknown card or player name: %s", solver.ErrUnknownName, tok)
			}
		}
		return s.RecordSuggestion(args[0], cards, players)

	case "saw":
		if len(args) < 2 {
			return fmt.Errorf("%w: saw needs a player and a card", ErrMissingArgument)
		}
		return s.RecordReveal(args[0], args[1])

	case "dump":
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownDirective, line)
}
