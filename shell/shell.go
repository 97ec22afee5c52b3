package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"chess-rules/chessmg"
	"chess-rules/engine"
)

var errQuit = errors.New("quit")

// ShellController drives a game from typed commands. Execute and Stop are
// serialized, so a game is never torn down under a running command.
type ShellController struct {
	l    *readline.Instance
	game *engine.Game

	mu      sync.Mutex
	stopped bool
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "new                - set up the start position\n")
	io.WriteString(w, "fen <fen>          - load a position, e.g. fen \"8/8/8/8/8/8/8/4K2k w\"\n")
	io.WriteString(w, "move <e2e4>        - play a move (a bare e2e4 works too)\n")
	io.WriteString(w, "moves [square]     - list moves for the side to move or one square\n")
	io.WriteString(w, "undo / redo        - step through the move history\n")
	io.WriteString(w, "show               - draw the board\n")
	io.WriteString(w, "state              - print the 64-character state string\n")
	io.WriteString(w, "restore <state>    - restore an exact state string\n")
	io.WriteString(w, "legacy <state>     - restore ownership only (pawns)\n")
	io.WriteString(w, "owner <square>     - print who owns the piece on a square\n")
	io.WriteString(w, "exit               - leave the shell\n")
}

// NewShellController wraps a game that has already been set up.
func NewShellController(g *engine.Game) *ShellController {
	return &ShellController{game: g}
}

// Stop waits for any running command to finish, then stops the game. Later
// commands return errQuit.
func (sc *ShellController) Stop() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.stopped {
		return
	}
	sc.stopped = true
	sc.game.StopGame()
}

// Execute runs a single command line, writing output to w.
func (sc *ShellController) Execute(line string, w io.Writer) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.stopped {
		return errQuit
	}
	fields, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	g := sc.game

	switch cmd {
	case "help", "?":
		usage(w)
	case "exit", "quit":
		return errQuit
	case "new":
		if err := g.SetUpBoard(); err != nil {
			return err
		}
		sc.show(w)
	case "fen":
		if len(args) == 0 {
			showMessage(g.FEN(), w)
			return nil
		}
		if err := g.LoadFEN(strings.Join(args, " ")); err != nil {
			return err
		}
		sc.show(w)
	case "move":
		if len(args) != 1 {
			return fmt.Errorf("usage: move <e2e4>")
		}
		return sc.play(args[0], w)
	case "moves":
		return sc.moves(args, w)
	case "undo":
		if err := g.Undo(); err != nil {
			return err
		}
		sc.show(w)
	case "redo":
		if err := g.Redo(); err != nil {
			return err
		}
		sc.show(w)
	case "show":
		sc.show(w)
	case "state":
		showMessage(g.StateString(), w)
	case "restore":
		if len(args) != 1 {
			return fmt.Errorf("usage: restore <state>")
		}
		if err := g.RestoreState(args[0]); err != nil {
			return err
		}
		sc.show(w)
	case "legacy":
		if len(args) != 1 {
			return fmt.Errorf("usage: legacy <state>")
		}
		g.SetStateString(args[0])
		sc.show(w)
	case "owner":
		if len(args) != 1 {
			return fmt.Errorf("usage: owner <square>")
		}
		sq, ok := chessmg.ParseSquare(args[0])
		if !ok {
			return fmt.Errorf("bad square %q", args[0])
		}
		if p := g.OwnerAt(sq.Col(), sq.Row()); p != nil {
			showMessage(fmt.Sprintf("%v (player %d)", p, p.Number()), w)
		} else {
			showMessage("nobody", w)
		}
	default:
		if _, err := chessmg.ParseMove(cmd); err == nil && len(args) == 0 {
			return sc.play(cmd, w)
		}
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (sc *ShellController) play(s string, w io.Writer) error {
	m, err := chessmg.ParseMove(s)
	if err != nil {
		return err
	}
	if err := sc.game.MakeMove(m); err != nil {
		return err
	}
	sc.show(w)
	if p := sc.game.CheckForWinner(); p != nil {
		showMessage(fmt.Sprintf("%v wins", p), w)
	} else if sc.game.CheckForDraw() {
		showMessage("draw", w)
	}
	return nil
}

func (sc *ShellController) moves(args []string, w io.Writer) error {
	if len(args) == 1 {
		sq, ok := chessmg.ParseSquare(args[0])
		if !ok {
			return fmt.Errorf("bad square %q", args[0])
		}
		names := []string{}
		for _, to := range sc.game.Destinations(sq).Squares() {
			names = append(names, to.String())
		}
		showMessage(strings.Join(names, " "), w)
		return nil
	}
	names := []string{}
	for _, m := range sc.game.LegalMoves() {
		names = append(names, m.String())
	}
	showMessage(fmt.Sprintf("%d: %s", len(names), strings.Join(names, " ")), w)
	return nil
}

func (sc *ShellController) show(w io.Writer) {
	io.WriteString(w, sc.game.Board().String())
	showMessage(fmt.Sprintf("%v to move, ply %d", sc.game.CurrentPlayer(), sc.game.Ply()), w)
}

// Loop reads commands until EOF, interrupt or exit, then signals sig.
func (sc *ShellController) Loop(historyFile string, sig chan os.Signal) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mchess>\033[0m ",
		HistoryFile:     historyFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	sc.l = l
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)

		if err := sc.Execute(line, sc.l.Stdout()); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			log.Error().Err(err).Msg("")
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
	sig <- syscall.SIGINT
	return nil
}
