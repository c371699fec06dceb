package main

import (
	goflag "flag"
	"os"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/jumboframes/acmatch/log"
)

type config struct {
	words       []string
	dictFile    string
	alphabet    string
	rejectEmpty bool
	stream      bool
	chunk       int
	workers     int
	timeout     time.Duration
	batch       int
	noColor     bool
}

func newRootCmd() *cobra.Command {
	conf := &config{}
	cmd := &cobra.Command{
		Use:   "acmatch [flags] [text ...]",
		Short: "Report which dictionary words occur in texts",
		Long: `acmatch builds an Aho-Corasick automaton from a dictionary and reports
every dictionary word occurring in the given texts.

Texts are taken from the arguments. Without arguments stdin is read, one
text per line, or as a single stream with --stream.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, conf, args)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&conf.words, "word", "w", nil, "Dictionary word, repeatable")
	flags.StringVarP(&conf.dictFile, "dict", "d", "", "Dictionary file, one word per line")
	flags.StringVar(&conf.alphabet, "alphabet", "lower", "Alphabet: lower, bytes, or the literal list of supported symbols")
	flags.BoolVar(&conf.rejectEmpty, "reject-empty", false, "Fail on empty dictionary words instead of skipping them")
	flags.BoolVar(&conf.stream, "stream", false, "Scan stdin as a single text")
	flags.IntVar(&conf.chunk, "chunk", 32*1024, "Read size in bytes for --stream")
	flags.IntVar(&conf.workers, "workers", 0, "Scanning goroutines, 0 for one per CPU")
	flags.DurationVar(&conf.timeout, "timeout", 0, "Per text scan timeout, 0 for none")
	flags.IntVar(&conf.batch, "batch", 1024, "Lines scanned per batch when reading stdin")
	flags.BoolVar(&conf.noColor, "no-color", false, "Disable colored output")

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)
	return cmd
}

func main() {
	err := newRootCmd().Execute()
	log.Flush()
	if err != nil {
		os.Exit(1)
	}
}
