package parsing

import (
	"log/slog"
	"math"
	"regexp"
	"time"
)

// Strategy selects how lines are turned into items
type Strategy int

const (
	// Strict filters noise and needs a price and a name on every item line
	Strict Strategy = iota
	// Aggressive takes the first plausible number on any non-trivial line
	Aggressive
)

func (s Strategy) String() string {
	switch s {
	case Strict:
		return "strict"
	case Aggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

const (
	aggressiveMinPrice = 1.0
	aggressiveMaxPrice = 1000.0
)

var (
	numberToken = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	nameDebris  = regexp.MustCompile(`[\d\p{Sc}\p{P}]+`)
)

// TimeSource provides the capture time stamped on results
type TimeSource interface {
	Now() time.Time
}

type defaultTimeSource struct{}

func (defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Parser turns OCR transcripts into ReceiptData. It is safe for concurrent use.
type Parser struct {
	tables     *Tables
	timeSource TimeSource
}

// NewParser creates a Parser using the given lookup tables, or the defaults if nil
func NewParser(tables *Tables) *Parser {
	return NewParserWithDeps(tables, defaultTimeSource{})
}

// NewParserWithDeps creates a Parser with a custom time source for testing
func NewParserWithDeps(tables *Tables, timeSource TimeSource) *Parser {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Parser{tables: tables, timeSource: timeSource}
}

// Parse interprets a raw OCR transcript. It never fails: unreadable input
// yields an empty item list, an unrecognized store and a zero total.
func (p *Parser) Parse(text string) *ReceiptData {
	lines := SplitLines(text)

	items := p.ExtractItems(Strict, lines)
	if len(items) == 0 {
		slog.Debug("Strict pass found no items, retrying aggressively", "lines", len(lines))
		items = p.ExtractItems(Aggressive, lines)
	}

	data := &ReceiptData{
		StoreName: p.tables.Stores.Identify(lines),
		Date:      p.timeSource.Now(),
		Items:     items,
	}
	data.TotalAmount = ExtractTotal(lines)
	if data.TotalAmount == 0 {
		data.TotalAmount = data.ItemsTotal()
	}
	return data
}

// ExtractItems runs a single pass over the lines
func (p *Parser) ExtractItems(strategy Strategy, lines []string) []ReceiptItem {
	acc := newItemAccumulator()
	for i, line := range lines {
		if isTotalLine(line) {
			continue
		}
		switch strategy {
		case Strict:
			p.strictLine(acc, lines, i)
		case Aggressive:
			p.aggressiveLine(acc, line)
		}
	}
	return acc.items
}

func (p *Parser) strictLine(acc *itemAccumulator, lines []string, i int) {
	line := lines[i]
	if IsNoise(line) {
		return
	}

	price, ok := ExtractPrice(line)
	// Receipts sometimes wrap the price onto the next line; a total
	// line's amount belongs to the receipt, not the line above it.
	if !ok && i+1 < len(lines) && !isTotalLine(lines[i+1]) {
		price, ok = ExtractPrice(lines[i+1])
	}
	if !ok {
		return
	}

	name, ok := ExtractName(line)
	if !ok {
		return
	}

	quantity := ExtractQuantity(line)
	unitPrice := roundCents(price / float64(quantity))
	if !inPriceBand(unitPrice) {
		return
	}

	acc.add(ReceiptItem{
		Name:     name,
		Price:    unitPrice,
		Quantity: quantity,
		Category: p.tables.Classifier.Classify(name),
	})
}

func (p *Parser) aggressiveLine(acc *itemAccumulator, line string) {
	if isAggressiveNoise(line) {
		return
	}
	for _, loc := range numberToken.FindAllStringIndex(line, -1) {
		price, ok := parseAmount(line[loc[0]:loc[1]])
		if !ok || price < aggressiveMinPrice || price > aggressiveMaxPrice {
			continue
		}
		rest := line[:loc[0]] + " " + line[loc[1]:]
		name, ok := cleanName(nameDebris.ReplaceAllString(rest, " "))
		if !ok {
			continue
		}
		if acc.add(ReceiptItem{
			Name:     name,
			Price:    price,
			Quantity: 1,
			Category: p.tables.Classifier.Classify(name),
		}) {
			return
		}
	}
}

// itemAccumulator keeps items in first-seen order and drops repeated names
type itemAccumulator struct {
	items []ReceiptItem
	seen  map[string]struct{}
}

func newItemAccumulator() *itemAccumulator {
	return &itemAccumulator{items: []ReceiptItem{}, seen: make(map[string]struct{})}
}

func (a *itemAccumulator) add(item ReceiptItem) bool {
	if _, dup := a.seen[item.Name]; dup {
		return false
	}
	a.seen[item.Name] = struct{}{}
	a.items = append(a.items, item)
	return true
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
