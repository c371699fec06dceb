package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jumboframes/acmatch/ahocorasick"
	acio "github.com/jumboframes/acmatch/io"
	"github.com/jumboframes/acmatch/log"
	"github.com/jumboframes/acmatch/scanpool"
	"github.com/jumboframes/acmatch/sigaction"
)

var (
	errNoDictionary = errors.New("no dictionary, use --word or --dict")
	errBadBatch     = errors.New("batch must be positive")
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

func run(cmd *cobra.Command, conf *config, args []string) error {
	if conf.noColor {
		color.NoColor = true
	}
	if conf.batch <= 0 {
		return errBadBatch
	}

	dictionary, err := loadDictionary(conf)
	if err != nil {
		return err
	}
	alphabet, err := parseAlphabet(conf.alphabet)
	if err != nil {
		return err
	}
	options := []ahocorasick.BuildOption{ahocorasick.OptionAlphabet(alphabet)}
	if conf.rejectEmpty {
		options = append(options, ahocorasick.OptionRejectEmpty())
	}
	automaton, err := ahocorasick.Build(dictionary, options...)
	if err != nil {
		return fmt.Errorf("build dictionary: %w", err)
	}
	log.Infof("dictionary loaded, words: %d, states: %d", len(automaton.Words()), automaton.States())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sig := sigaction.NewSignal(sigaction.OptionSignalCancel(cancel))
	go sig.Wait(ctx)

	out := &printer{w: cmd.OutOrStdout()}
	if conf.stream && len(args) == 0 {
		return streamStdin(ctx, cmd.InOrStdin(), automaton, conf, out)
	}

	poolOptions := []scanpool.Option{scanpool.OptionQueue(conf.batch)}
	if conf.workers > 0 {
		poolOptions = append(poolOptions, scanpool.OptionWorkers(conf.workers))
	}
	pool, err := scanpool.New(automaton, poolOptions...)
	if err != nil {
		return err
	}
	defer pool.Close()

	if len(args) > 0 {
		results, err := pool.ScanAll(args, conf.timeout)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return out.words(results[0])
		}
		for i, text := range args {
			if err := out.labeled(text, results[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return scanLines(ctx, cmd.InOrStdin(), pool, conf, out)
}

func loadDictionary(conf *config) ([]string, error) {
	dictionary := append([]string(nil), conf.words...)
	if conf.dictFile != "" {
		file, err := os.Open(conf.dictFile)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			word := strings.TrimRight(scanner.Text(), "\r")
			if word == "" {
				continue
			}
			dictionary = append(dictionary, word)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", conf.dictFile, err)
		}
	}
	if len(dictionary) == 0 {
		return nil, errNoDictionary
	}
	return dictionary, nil
}

func parseAlphabet(name string) (ahocorasick.Alphabet, error) {
	switch name {
	case "lower", "":
		return ahocorasick.Lowercase, nil
	case "bytes":
		return ahocorasick.Bytes, nil
	default:
		alphabet, err := ahocorasick.NewAlphabet(name)
		if err != nil {
			return nil, fmt.Errorf("alphabet %q: %w", name, err)
		}
		return alphabet, nil
	}
}

func streamStdin(ctx context.Context, in io.Reader, automaton *ahocorasick.Automaton, conf *config, out *printer) error {
	scanner := automaton.NewScanner()
	done := make(chan error, 1)
	go func() {
		_, err := acio.Feed(ctx, in, scanner, conf.chunk)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return err
		}
		return out.words(scanner.Matches())
	case <-ctx.Done():
		return ctx.Err()
	}
}

func scanLines(ctx context.Context, in io.Reader, pool *scanpool.Pool, conf *config, out *printer) error {
	reader := bufio.NewScanner(in)
	reader.Buffer(make([]byte, 64*1024), 16*1024*1024)

	lineno := 0
	lines := make([]string, 0, conf.batch)
	flush := func() error {
		if len(lines) == 0 {
			return nil
		}
		results, err := pool.ScanAll(lines, conf.timeout)
		if err != nil {
			return fmt.Errorf("lines %d-%d: %w", lineno-len(lines)+1, lineno, err)
		}
		for i, matches := range results {
			if matches.Len() == 0 {
				continue
			}
			label := strconv.Itoa(lineno - len(lines) + 1 + i)
			if err := out.labeled(label, matches); err != nil {
				return err
			}
		}
		lines = lines[:0]
		return nil
	}

	for reader.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineno++
		lines = append(lines, strings.TrimRight(reader.Text(), "\r"))
		if len(lines) == cap(lines) {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := reader.Err(); err != nil {
		return err
	}
	return flush()
}

type printer struct {
	w io.Writer
}

func (p *printer) words(matches ahocorasick.Matches) error {
	var buf bytes.Buffer
	for _, word := range matches.Words() {
		buf.WriteString(green(word))
		buf.WriteByte('\n')
	}
	_, err := acio.WriteAll(buf.Bytes(), p.w)
	return err
}

func (p *printer) labeled(label string, matches ahocorasick.Matches) error {
	var buf bytes.Buffer
	buf.WriteString(cyan(label))
	buf.WriteByte(':')
	for _, word := range matches.Words() {
		buf.WriteByte(' ')
		buf.WriteString(green(word))
	}
	buf.WriteByte('\n')
	_, err := acio.WriteAll(buf.Bytes(), p.w)
	return err
}
