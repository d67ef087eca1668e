package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/google/btree"
)

// digitTokenRe matches a token carrying a normalized digit together with the
// surrounding whitespace. Such tokens are numbers, dates or codes and never
// enter the vocabulary.
var digitTokenRe = regexp.MustCompile(`\s*[A-z-]*0[A-z-]*\s*`)

type entry struct {
	word  string
	count int
	first int // order of first occurrence, breaks count ties
}

func byFrequency(a, b *entry) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	return a.first < b.first
}

// Counter counts words and keeps them ordered by frequency so the most
// common words can be read off without sorting.
type Counter struct {
	entries map[string]*entry
	order   *btree.BTreeG[*entry]
	tokens  int
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{
		entries: make(map[string]*entry),
		order:   btree.NewG(32, byFrequency),
	}
}

// Add counts one occurrence of word.
func (c *Counter) Add(word string) {
	c.tokens++
	e, ok := c.entries[word]
	if !ok {
		e = &entry{word: word, first: len(c.entries)}
		c.entries[word] = e
	} else {
		c.order.Delete(e)
	}
	e.count++
	c.order.ReplaceOrInsert(e)
}

// AddLine counts the words of one corpus line. Tokens containing the
// normalized digit are dropped; the rest is split on single spaces.
func (c *Counter) AddLine(line string) {
	line = strings.TrimRight(line, "\r\n")
	line = digitTokenRe.ReplaceAllString(line, " ")
	for _, w := range strings.Split(line, " ") {
		if w != "" {
			c.Add(w)
		}
	}
}

// Count returns the number of occurrences of word.
func (c *Counter) Count(word string) int {
	if e, ok := c.entries[word]; ok {
		return e.count
	}
	return 0
}

// Len returns the number of distinct words.
func (c *Counter) Len() int { return len(c.entries) }

// Tokens returns the number of counted tokens.
func (c *Counter) Tokens() int { return c.tokens }

// WordCount is a word with its frequency.
type WordCount struct {
	Word  string
	Count int
}

// MostCommon returns the n most frequent words, most frequent first. Words
// with equal counts keep their first-occurrence order. n <= 0 returns all.
func (c *Counter) MostCommon(n int) []WordCount {
	if n <= 0 || n > len(c.entries) {
		n = len(c.entries)
	}
	out := make([]WordCount, 0, n)
	c.order.Ascend(func(e *entry) bool {
		if len(out) == n {
			return false
		}
		out = append(out, WordCount{Word: e.word, Count: e.count})
		return true
	})
	return out
}

// Words is MostCommon without the counts.
func (c *Counter) Words(n int) []string {
	wc := c.MostCommon(n)
	words := make([]string, len(wc))
	for i, w := range wc {
		words[i] = w.Word
	}
	return words
}

// ReadLines counts every line of r and returns the number of lines read.
func (c *Counter) ReadLines(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		c.AddLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("line %d: %w", n+1, err)
	}
	return n, nil
}

// WordOrderByFrequency returns the n most frequent words of a corpus read
// from r (n <= 0 returns all of them).
func WordOrderByFrequency(r io.Reader, n int) ([]string, error) {
	c := NewCounter()
	if _, err := c.ReadLines(r); err != nil {
		return nil, err
	}
	return c.Words(n), nil
}

// CountFiles counts the lines of every file in paths, in order.
func CountFiles(paths ...string) (*Counter, error) {
	c := NewCounter()
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		_, err = c.ReadLines(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return c, nil
}

// WordOrderByFrequencyFiles is WordOrderByFrequency over the concatenation
// of several corpus files.
func WordOrderByFrequencyFiles(n int, paths ...string) ([]string, error) {
	c, err := CountFiles(paths...)
	if err != nil {
		return nil, err
	}
	return c.Words(n), nil
}
