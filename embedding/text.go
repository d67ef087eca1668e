package embedding

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Options controls Load.
type Options struct {
	Dim   int // expected dimensionality; 0 = header or first vector decides
	Limit int // keep only the first Limit vectors; 0 = all
}

// Load reads embeddings in word2vec text format: an optional "count dim"
// header line followed by "word v1 v2 ..." lines. GloVe output, which has
// no header, is read the same way. Lines whose vector length differs from
// the expected dimensionality are skipped and counted in Table.Skipped.
// Input without a single usable vector returns ErrEmpty.
func Load(r io.Reader, opts Options) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	dim := opts.Dim
	var words []string
	var data []float64
	skipped := 0
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if lineNum == 1 && len(fields) == 2 {
			_, errCount := strconv.Atoi(fields[0])
			hdim, errDim := strconv.Atoi(fields[1])
			if errCount == nil && errDim == nil {
				if dim == 0 {
					dim = hdim
				}
				continue
			}
		}
		if dim == 0 {
			dim = len(fields) - 1
		}
		if len(fields)-1 != dim {
			skipped++
			continue
		}
		for _, s := range fields[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			data = append(data, v)
		}
		words = append(words, fields[0])
		if opts.Limit > 0 && len(words) >= opts.Limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
	}

	if len(words) == 0 {
		return nil, ErrEmpty
	}
	t, err := NewTable(words, mat.NewDense(len(words), dim, data))
	if err != nil {
		return nil, err
	}
	t.Skipped = skipped
	return t, nil
}

// LoadFile is a convenience wrapper that opens a file path.
func LoadFile(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Write stores t in word2vec text format with a "count dim" header.
func Write(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", t.Len(), t.Dim())
	buf := make([]byte, 0, 64)
	for i, word := range t.Words {
		bw.WriteString(word)
		for _, v := range t.Vectors.RawRowView(i) {
			buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
			bw.WriteByte(' ')
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile stores t at path.
func WriteFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
