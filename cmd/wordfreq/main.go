package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ieee0824/bli-go/corpus"
	"github.com/ieee0824/bli-go/internal/logging"
)

func main() {
	n := flag.Int("n", 0, "number of most frequent words to print (0 = all)")
	output := flag.String("output", "", "output file (default: stdout)")
	counts := flag.Bool("counts", true, "print the count after each word")
	normalize := flag.Bool("normalize", false, "lower-case lines and map digits to 0 before counting")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wordfreq [options] [corpus-files...]")
		fmt.Fprintln(os.Stderr, "  Prints the words of cleaned corpora ordered by frequency.")
		fmt.Fprintln(os.Stderr, "  Input: one sentence per line. Several files are counted together.")
		fmt.Fprintln(os.Stderr, "  If no input files given, reads from stdin.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()
	log := logging.New(*logLevel, nil)

	c := corpus.NewCounter()
	var lines int
	if flag.NArg() == 0 {
		read, err := readLines(c, os.Stdin, *normalize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: stdin: %v\n", err)
			os.Exit(1)
		}
		lines = read
	} else {
		for _, path := range flag.Args() {
			f, err := os.Open(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: open %s: %v\n", path, err)
				os.Exit(1)
			}
			read, err := readLines(c, f, *normalize)
			f.Close()
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, err)
				os.Exit(1)
			}
			lines += read
		}
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: create %s: %v\n", *output, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	for _, wc := range c.MostCommon(*n) {
		if *counts {
			fmt.Fprintf(bw, "%s\t%d\n", wc.Word, wc.Count)
		} else {
			fmt.Fprintln(bw, wc.Word)
		}
	}
	if err := bw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: write: %v\n", err)
		os.Exit(1)
	}

	log.WithField("lines", lines).WithField("types", c.Len()).WithField("tokens", c.Tokens()).Info("counted corpus")
}

func readLines(c *corpus.Counter, r io.Reader, normalize bool) (int, error) {
	if !normalize {
		return c.ReadLines(r)
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	count := 0
	for scanner.Scan() {
		c.AddLine(corpus.Normalize(scanner.Text()))
		count++
	}
	return count, scanner.Err()
}
