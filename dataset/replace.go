package dataset

import "fmt"

// Replace returns a copy of ds in which every textual cell equal to a key of
// replacements is replaced by the mapped value, parsed by the column type. A common
// use is mapping a "[NULL]" token to nil in datasets loaded from text.
func Replace(ds *Dataset, replacements map[string]any) (*Dataset, error) {
	out := ds.Clone()
	if len(replacements) == 0 {
		return out, nil
	}
	for _, t := range out.tables {
		for r, row := range t.rows {
			for i, v := range row {
				s, ok := textOf(v)
				if !ok {
					continue
				}
				repl, ok := replacements[s]
				if !ok {
					continue
				}
				p, err := t.normalize(i, repl)
				if err != nil {
					return nil, fmt.Errorf("replace row %d: %w", r, err)
				}
				row[i] = p
			}
		}
	}
	return out, nil
}

func textOf(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	return "", false
}
