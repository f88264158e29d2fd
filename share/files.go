package share

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// LoadVector reads n decimal field elements, one per line, from path.
func LoadVector(path string, n int) (Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open share file: %v", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	v := make(Vector, n)
	for i := range v {
		if _, err := fmt.Fscan(r, &v[i]); err != nil {
			return nil, fmt.Errorf("Unexpected EOF in %s at entry %d: %v", path, i, err)
		}
	}
	return v, nil
}

// SaveVector writes the vector to path, one decimal element per line.
func SaveVector(path string, v Vector) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Cannot open share file for writing: %v", err)
	}
	w := bufio.NewWriter(f)
	if err := WriteVector(w, v); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteVector writes the vector to w, one decimal element per line.
func WriteVector(w io.Writer, v Vector) error {
	for _, e := range v {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return err
		}
	}
	return nil
}
