package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"chess-rules/chessmg"
	"chess-rules/crosscheck"
)

func main() {
	fen := flag.String("fen", chessmg.StartPlacement+" w - - 0 1", "FEN string (defaults to initial position)")
	file := flag.String("file", "", "File with one FEN per line; overrides -fen")
	verbose := flag.Bool("v", false, "Print move counts for positions without divergences")
	flag.Parse()

	fens := []string{*fen}
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening %s: %v\n", *file, err)
			os.Exit(2)
		}
		fens = fens[:0]
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			fens = append(fens, line)
		}
		_ = f.Close()
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "reading %s: %v\n", *file, err)
			os.Exit(2)
		}
	}

	failed := 0
	for _, s := range fens {
		r, err := crosscheck.Compare(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", s, err)
			failed++
			continue
		}
		if !r.OK() {
			failed++
			fmt.Printf("%s\n", r.FEN)
			for _, d := range r.Divergences {
				fmt.Printf("  %s\n", d)
			}
			continue
		}
		if *verbose {
			fmt.Printf("%s \tours %d \tgoose %d \tdragon %d\n", r.FEN, r.Ours, r.Goose, r.Dragon)
		}
	}
	fmt.Printf("positions %d \tdivergent %d\n", len(fens), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
