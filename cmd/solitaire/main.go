package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mahjong-solitaire/internal/config"
	"mahjong-solitaire/internal/game"
	"mahjong-solitaire/internal/layout"
)

type play struct {
	layout  layout.Layout
	copies  int
	solver  *game.Solver
	tiles   []game.Tile
	history []game.Pair
	moves   int
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	name := cfg.DefaultLayout
	if len(os.Args) > 1 {
		name = os.Args[1]
	}
	l, err := catalog.Build(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err, "- available:", strings.Join(catalog.Names(), ", "))
		os.Exit(1)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p := &play{layout: l, copies: cfg.CopiesPerVariant, solver: game.NewSeededSolver(seed)}
	if err := p.deal(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		p.print()
		switch game.BoardStatus(p.tiles) {
		case game.StatusWon:
			fmt.Printf("\nBoard cleared in %d moves!\n", p.moves)
			return
		case game.StatusStuck:
			fmt.Println("No free pairs left. Try shuffle or undo.")
		}

		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "match", "m":
			if len(parts) != 3 {
				fmt.Println("Usage: match <id> <id>")
				continue
			}
			a, errA := strconv.Atoi(parts[1])
			b, errB := strconv.Atoi(parts[2])
			if errA != nil || errB != nil {
				fmt.Println("Tile ids must be numbers.")
				continue
			}
			if !game.CanMatch(p.tiles, a, b) {
				fmt.Println("Those tiles cannot be matched.")
				continue
			}
			p.match(game.Pair{a, b})
		case "hint", "h":
			if pair, ok := game.Hint(p.tiles); ok {
				fmt.Printf("Try %d and %d (%s)\n", pair[0], pair[1], p.tiles[pair[0]].Label())
			} else {
				fmt.Println("No hint available.")
			}
		case "undo", "u":
			if !p.undo() {
				fmt.Println("Nothing to undo.")
			}
		case "shuffle", "s":
			if err := p.shuffle(); err != nil {
				fmt.Println("Shuffle failed:", err)
			}
		case "new", "n":
			if err := p.deal(); err != nil {
				fmt.Println("Deal failed:", err)
			}
		case "solve":
			if err := p.solve(); err != nil {
				fmt.Println("Solve failed:", err)
			}
		case "quit", "q":
			return
		default:
			fmt.Println("Commands: match a b | hint | undo | shuffle | new | solve | quit")
		}
	}
}

func (p *play) deal() error {
	tiles, err := p.solver.GenerateSolvableGame(p.layout, p.copies)
	if err != nil {
		return err
	}
	p.tiles = tiles
	p.history = nil
	p.moves = 0
	return nil
}

func (p *play) match(pair game.Pair) {
	p.tiles[pair[0]].Removed = true
	p.tiles[pair[1]].Removed = true
	p.history = append(p.history, pair)
	p.moves++
}

func (p *play) undo() bool {
	if len(p.history) == 0 {
		return false
	}
	last := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	p.tiles[last[0]].Removed = false
	p.tiles[last[1]].Removed = false
	return true
}

func (p *play) shuffle() error {
	tiles, err := p.solver.SolvableShuffle(p.tiles)
	if err != nil {
		return err
	}
	p.tiles = tiles
	return nil
}

// solve plays hints until the board is cleared, shuffling whenever it gets
// stuck.
func (p *play) solve() error {
	for !game.IsWon(p.tiles) {
		pair, ok := game.Hint(p.tiles)
		if !ok {
			if err := p.shuffle(); err != nil {
				return err
			}
			continue
		}
		fmt.Printf("match %d %d (%s)\n", pair[0], pair[1], p.tiles[pair[0]].Label())
		p.match(pair)
	}
	return nil
}

func (p *play) print() {
	free := game.FreeTiles(p.tiles)
	fmt.Printf("\n%s: %d tiles left, %d moves\n", p.layout.Name, game.Remaining(p.tiles), p.moves)
	fmt.Println("Free tiles:")
	for _, t := range free {
		fmt.Printf("  %3d  %-12s (x=%.1f y=%.1f z=%d)\n", t.ID, t.Label(), t.X, t.Y, t.Z)
	}
}
