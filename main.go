package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chess-rules/config"
	"chess-rules/engine"
	"chess-rules/shell"
)

var configPath = flag.String("config", "", "path to a config file (yaml, toml or json)")

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var cfg config.Config
	if err := cfg.Load(*configPath); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	g := engine.New(
		engine.WithRules(cfg.Rules),
		engine.WithStartPosition(cfg.StartPosition),
		engine.WithStrictPlacement(cfg.StrictPlacement),
	)
	if err := g.SetUpBoard(); err != nil {
		log.Fatal().Err(err).Msg("setting up board")
	}
	log.Info().Str("rules", cfg.Rules.String()).Msg("game ready, type help for commands")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	sc := shell.NewShellController(g)
	go func() {
		if err := sc.Loop(cfg.HistoryFile, sig); err != nil {
			log.Error().Err(err).Msg("shell")
			sig <- syscall.SIGINT
		}
	}()
	<-sig
	sc.Stop()
	log.Info().Msg("bye")
}
