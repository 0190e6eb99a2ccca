package parsing

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tables holds the read-only lookup data shared by every parse
type Tables struct {
	Stores     *StorePatternTable
	Classifier *Classifier
}

// tablesFile is the on-disk layout of a lookup table override
type tablesFile struct {
	Stores           []Store    `yaml:"stores"`
	Categories       []Category `yaml:"categories"`
	FallbackCategory string     `yaml:"fallback_category"`
}

// DefaultTables returns tables built from the compiled-in store and category lists
func DefaultTables() *Tables {
	return &Tables{
		Stores:     NewStorePatternTable(DefaultStores),
		Classifier: NewClassifier(DefaultCategories, Uncategorized),
	}
}

// LoadTables reads store and category tables from a YAML file. Sections
// missing from the file keep their defaults.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables file: %w", err)
	}
	return ParseTables(data)
}

// ParseTables decodes and validates YAML table data
func ParseTables(data []byte) (*Tables, error) {
	var tf tablesFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("unmarshaling tables: %w", err)
	}
	if err := tf.validate(); err != nil {
		return nil, err
	}

	stores := tf.Stores
	if len(stores) == 0 {
		stores = DefaultStores
	}
	categories := tf.Categories
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return &Tables{
		Stores:     NewStorePatternTable(stores),
		Classifier: NewClassifier(categories, strings.TrimSpace(tf.FallbackCategory)),
	}, nil
}

func (tf *tablesFile) validate() error {
	for i, s := range tf.Stores {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("store %d: name is required", i)
		}
		if len(s.Aliases) == 0 {
			return fmt.Errorf("store %q: at least one alias is required", s.Name)
		}
	}
	for i, c := range tf.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("category %d: name is required", i)
		}
	}
	return nil
}
