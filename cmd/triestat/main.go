// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Command triestat loads a word list into a trie and reports how the chosen
// backend laid it out.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	trie "github.com/absolutelightning/go-trie"
)

// CLI is the command line of triestat.
type CLI struct {
	Words    string `arg:"" type:"existingfile" help:"File with one key per line."`
	Backend  string `enum:"simple,double-array" default:"double-array" help:"Node backend (${enum})."`
	Delete   int    `help:"Delete every Nth key after loading. Zero keeps all keys." default:"0"`
	Capacity int    `help:"Initial double array capacity." default:"256"`
	Verbose  bool   `short:"v" help:"Log array growth and relocations."`
}

// Report is what triestat prints for a loaded word list.
type Report struct {
	Lines   int
	Keys    int
	Deleted int
	Shape   trie.Shape
	Stats   *trie.Stats
}

func (r Report) write(w io.Writer) {
	fmt.Fprintf(w, "lines:     %d\n", r.Lines)
	fmt.Fprintf(w, "keys:      %d\n", r.Keys)
	fmt.Fprintf(w, "deleted:   %d\n", r.Deleted)
	fmt.Fprintf(w, "nodes:     %d\n", r.Shape.Nodes)
	fmt.Fprintf(w, "max depth: %d\n", r.Shape.MaxDepth)
	if r.Stats != nil {
		fmt.Fprintf(w, "cells:     %d (%d used, %d free)\n", r.Stats.TotalCells, r.Stats.UsedCells, r.Stats.FreeCells)
		fmt.Fprintf(w, "fill:      %.3f\n", r.Stats.FillRatio())
		fmt.Fprintf(w, "relocated: %d\n", r.Stats.Relocations)
		fmt.Fprintf(w, "grown:     %d\n", r.Stats.Grows)
	}
}

// Run loads the word list and writes the report to stdout.
func (c *CLI) Run(logger zerolog.Logger) error {
	report, err := c.load(logger)
	if err != nil {
		return err
	}
	report.write(os.Stdout)
	return nil
}

func (c *CLI) load(logger zerolog.Logger) (Report, error) {
	f, err := os.Open(c.Words)
	if err != nil {
		return Report{}, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	if !c.Verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	switch c.Backend {
	case "simple":
		return load(trie.NewSimple[string, int, byte](trie.StringKeys{}), f, c.Delete, logger)
	default:
		tr := trie.NewDoubleArray[string, int, byte](trie.StringKeys{},
			trie.WithCapacity(c.Capacity), trie.WithLogger(logger))
		report, err := load(tr, f, c.Delete, logger)
		if err != nil {
			return report, err
		}
		stats := tr.Backend().(*trie.DoubleArray[byte, *trie.Entry[string, int]]).Stats()
		report.Stats = &stats
		return report, nil
	}
}

func load[S comparable](tr *trie.Trie[string, int, byte, S], r io.Reader, every int, logger zerolog.Logger) (Report, error) {
	var report Report
	var keys []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		report.Lines++
		key := scanner.Text()
		if _, ok := tr.Insert(key, report.Lines); ok {
			keys = append(keys, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("read word list: %w", err)
	}
	logger.Info().Int("lines", report.Lines).Int("keys", tr.Len()).Msg("loaded word list")

	for _, k := range keys {
		if tr.Find(k) == nil {
			return report, fmt.Errorf("key %q missing after load", k)
		}
	}

	if every > 0 {
		for i := every - 1; i < len(keys); i += every {
			if !tr.Delete(keys[i]) {
				return report, fmt.Errorf("delete %q: key not found", keys[i])
			}
			report.Deleted++
		}
		logger.Info().Int("deleted", report.Deleted).Msg("deleted keys")
	}

	report.Keys = tr.Len()
	report.Shape = trie.ShapeOf(tr.Backend())
	return report, nil
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("triestat"),
		kong.Description("Load keys into a trie and report its layout."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(logger); err != nil {
		logger.Error().Err(err).Msg("triestat failed")
		os.Exit(1)
	}
}
