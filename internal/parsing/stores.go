package parsing

import "strings"

// storeScanLines is how many leading lines may carry the store name
const storeScanLines = 10

// Store is a canonical store name with the spellings it appears under
type Store struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// StorePatternTable maps aliases to canonical store names. Order matters:
// earlier stores win when several aliases match the same line.
type StorePatternTable struct {
	stores []foldedStore
}

type foldedStore struct {
	name    string
	aliases []string
}

// NewStorePatternTable folds every alias once so matching never reallocates them
func NewStorePatternTable(stores []Store) *StorePatternTable {
	t := &StorePatternTable{stores: make([]foldedStore, 0, len(stores))}
	for _, s := range stores {
		fs := foldedStore{name: s.Name}
		for _, alias := range s.Aliases {
			if a := foldForMatch(alias); a != "" {
				fs.aliases = append(fs.aliases, a)
			}
		}
		t.stores = append(t.stores, fs)
	}
	return t
}

// Identify returns the canonical name of the first store whose alias occurs
// in one of the leading lines, or UnrecognizedStore
func (t *StorePatternTable) Identify(lines []string) string {
	if len(lines) > storeScanLines {
		lines = lines[:storeScanLines]
	}
	for _, line := range lines {
		folded := foldForMatch(line)
		if folded == "" {
			continue
		}
		for _, store := range t.stores {
			for _, alias := range store.aliases {
				if strings.Contains(folded, alias) {
					return store.name
				}
			}
		}
	}
	return UnrecognizedStore
}

// Len returns the number of stores in the table
func (t *StorePatternTable) Len() int {
	return len(t.stores)
}
