package parsing

import "strings"

// Category groups the keywords that put an item into it
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type keywordRule struct {
	keyword  string
	category string
}

// Classifier maps item names to categories by keyword containment.
// Multi-word keywords are checked before single words so that phrases like
// "milk chocolate" are not claimed by "milk".
type Classifier struct {
	rules    []keywordRule
	fallback string
}

// NewClassifier builds the ordered rule list from categories in table order
func NewClassifier(categories []Category, fallback string) *Classifier {
	if fallback == "" {
		fallback = Uncategorized
	}
	var phrases, words []keywordRule
	for _, c := range categories {
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			rule := keywordRule{keyword: kw, category: c.Name}
			if strings.ContainsAny(kw, " -") {
				phrases = append(phrases, rule)
			} else {
				words = append(words, rule)
			}
		}
	}
	return &Classifier{rules: append(phrases, words...), fallback: fallback}
}

// Classify returns the category of the first keyword found in name
func (c *Classifier) Classify(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range c.rules {
		if strings.Contains(lower, rule.keyword) {
			return rule.category
		}
	}
	return c.fallback
}
