// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/clicksy/clicksy-api/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // verbose output; write errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatches outputs the requester and its ranked matches.
func (p *Printer) PrintMatches(requester *types.Profile, matches []types.MatchResult) {
	if requester == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Requester: %s (%s)\n", requester.DisplayName, requester.Role)
	if requester.Location != "" {
		fmt.Fprintf(&sb, "Location:  %s\n", requester.Location)
	}
	if len(requester.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills:    %s\n", strings.Join(requester.Skills, ", "))
	}
	sb.WriteString("\n")

	if len(matches) == 0 {
		sb.WriteString("No candidates to rank\n")
	}
	for i, m := range matches {
		fmt.Fprintf(&sb, "%d. [%3d] %s", i+1, m.Score, m.DisplayName)
		if m.Location != "" {
			fmt.Fprintf(&sb, ", %s", m.Location)
		}
		sb.WriteString("\n")
	}

	p.printBox("PEER RECOMMENDATIONS", sb.String())
}

// PrintEstimate outputs a price query and its suggested price.
func (p *Printer) PrintEstimate(query types.PriceQuery, price *int) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Item:      %s %s\n", query.Brand, query.Category)
	fmt.Fprintf(&sb, "Condition: %s\n", query.ConditionLabel)
	fmt.Fprintf(&sb, "Year:      %d\n", query.Year)
	sb.WriteString("\n")
	if price == nil {
		sb.WriteString("Suggested: (not enough market data)\n")
	} else {
		fmt.Fprintf(&sb, "Suggested: %d\n", *price)
	}

	p.printBox("PRICE ESTIMATE", sb.String())
}

// PrintCorpusSummary outputs record counts and price ranges per category.
func (p *Printer) PrintCorpusSummary(corpus []types.MarketListing) {
	type stats struct {
		count    int
		min, max int
	}
	byCategory := make(map[string]*stats)
	for _, l := range corpus {
		s, ok := byCategory[l.Category]
		if !ok {
			s = &stats{min: l.Price, max: l.Price}
			byCategory[l.Category] = s
		}
		s.count++
		s.min = min(s.min, l.Price)
		s.max = max(s.max, l.Price)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return byCategory[categories[i]].count > byCategory[categories[j]].count ||
			(byCategory[categories[i]].count == byCategory[categories[j]].count && categories[i] < categories[j])
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "Listings: %d\n\n", len(corpus))
	count := min(len(categories), maxItemsToShow)
	for _, c := range categories[:count] {
		s := byCategory[c]
		fmt.Fprintf(&sb, "  • %-12s %4d  %d-%d\n", c, s.count, s.min, s.max)
	}
	if len(categories) > maxItemsToShow {
		fmt.Fprintf(&sb, "  ... and %d more\n", len(categories)-maxItemsToShow)
	}

	p.printBox("MARKET CORPUS", sb.String())
}
