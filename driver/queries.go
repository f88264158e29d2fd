package driver

import (
	"bufio"
	"fmt"
	"os"

	"mpcrec/dpf"

	"github.com/fatih/color"
)

// Query is one private update request: the row of U to use and this
// party's share of the one-hot item selector.
type Query struct {
	UserID uint32
	Key    dpf.Key
}

// LoadQueries reads one party's query file: a "count domain" header
// followed by count records, each a user id line and a text-serialised
// DPF key.
func LoadQueries(path string, expectedDomain uint64) ([]Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to open query file: %v", err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var count uint32
	var domain uint64
	if _, err := fmt.Fscan(r, &count, &domain); err != nil {
		return nil, fmt.Errorf("Malformed query file header in %s: %v", path, err)
	}
	if domain != expectedDomain {
		color.Yellow("Warning: query domain %d != expected %d", domain, expectedDomain)
	}

	queries := make([]Query, 0, count)
	for i := uint32(0); i < count; i++ {
		var q Query
		if _, err := fmt.Fscan(r, &q.UserID); err != nil {
			return nil, fmt.Errorf("Malformed query %d in %s: %v", i, path, err)
		}
		if q.Key, err = dpf.ReadText(r); err != nil {
			return nil, fmt.Errorf("Malformed DPF key in query %d of %s: %v", i, path, err)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// WriteQueries writes one party's query file in the LoadQueries format.
func WriteQueries(path string, queries []Query, domain uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Failed to open %s for writing: %v", path, err)
	}
	w := bufio.NewWriter(f)

	if _, err := fmt.Fprintf(w, "%d %d\n", len(queries), domain); err != nil {
		f.Close()
		return err
	}
	for i := range queries {
		if _, err := fmt.Fprintf(w, "%d\n", queries[i].UserID); err != nil {
			f.Close()
			return err
		}
		if err := queries[i].Key.WriteText(w); err != nil {
			f.Close()
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
