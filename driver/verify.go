package driver

import (
	"fmt"

	"mpcrec/field"
)

// Replay applies every query to cleartext U and V the way the protocol
// should in reconstruction: V[j] += u * (1 - u*V[j]) for the item j
// programmed into the query's key pair. The two parties' query files
// must be passed side by side so the keys can be recombined.
func Replay(U, V []field.Elem, q0, q1 []Query) error {
	if len(q0) != len(q1) {
		return fmt.Errorf("query files disagree on count: %d vs %d", len(q0), len(q1))
	}
	for i := range q0 {
		item, err := selectedItem(&q0[i], &q1[i])
		if err != nil {
			return fmt.Errorf("query %d: %v", i, err)
		}
		u := U[int(q0[i].UserID)%len(U)]
		vj := V[item]
		V[item] = field.Add(vj, field.Mul(u, field.Sub(1, field.Mul(u, vj))))
	}
	return nil
}

// selectedItem recombines a key pair into its programmed point. The
// recombined vector must be exactly one-hot with value 1.
func selectedItem(a, b *Query) (int, error) {
	if a.UserID != b.UserID {
		return 0, fmt.Errorf("user ids disagree: %d vs %d", a.UserID, b.UserID)
	}
	if a.Key.Size != b.Key.Size {
		return 0, fmt.Errorf("key domains disagree: %d vs %d", a.Key.Size, b.Key.Size)
	}
	full0 := a.Key.EvalFull()
	full1 := b.Key.EvalFull()

	item := -1
	for i := range full0 {
		switch full0[i] ^ full1[i] {
		case 0:
		case 1:
			if item != -1 {
				return 0, fmt.Errorf("indicator has more than one hot slot (%d and %d)", item, i)
			}
			item = i
		default:
			return 0, fmt.Errorf("slot %d recombines to %d, want 0 or 1", i, full0[i]^full1[i])
		}
	}
	if item == -1 {
		return 0, fmt.Errorf("indicator has no hot slot")
	}
	return item, nil
}

// Diff lists the indices where two vectors differ.
func Diff(a, b []field.Elem) []int {
	var diffs []int
	for i := range a {
		if a[i] != b[i] {
			diffs = append(diffs, i)
		}
	}
	return diffs
}
