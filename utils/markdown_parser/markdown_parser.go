// Package markdown_parser extracts structured briefing data from the
// free-form markdown returned by the summarization model. Parsing is best
// effort: malformed blocks degrade to empty values and never produce errors,
// so callers treat any shortfall as partial data.
package markdown_parser

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	summaryMarker     = "**Summary:**"
	insightsMarker    = "**Insights:**"
	relatedTechMarker = "**Related tech:**"

	maxTopSections = 3
)

var hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_-]+)`)

// TopSection is one parsed "## Top k:" block of a briefing document.
type TopSection struct {
	Title       string
	Summary     string
	Insights    string
	RelatedTech []string
}

// ParseTopSections locates the "## Top 1:".."## Top 3:" headers in text and
// extracts title, summary, insights, and related-tech tokens from each
// section. A section whose title line is empty is dropped; sections are
// otherwise independent.
func ParseTopSections(text string) []TopSection {
	var sections []TopSection

	for k := 1; k <= maxTopSections; k++ {
		header := fmt.Sprintf("## Top %d:", k)
		start := strings.Index(text, header)
		if start < 0 {
			continue
		}

		end := len(text)
		if next := strings.Index(text[start+len(header):], fmt.Sprintf("## Top %d:", k+1)); next >= 0 {
			end = start + len(header) + next
		}
		body := text[start:end]

		title := sectionTitle(body, header)
		if title == "" {
			continue
		}

		sections = append(sections, TopSection{
			Title:       title,
			Summary:     between(body, summaryMarker, insightsMarker, relatedTechMarker),
			Insights:    between(body, insightsMarker, relatedTechMarker),
			RelatedTech: hashtags(after(body, relatedTechMarker)),
		})
	}

	return sections
}

// ParseSummaryInsight extracts the two-section response of a single-item
// analysis. Summary bullets are joined with newlines; if no bullets were
// found the raw text (capped at 200 runes) stands in for the summary.
func ParseSummaryInsight(text string) (summary string, insight string) {
	var summaryLines []string
	var insightParts []string

	inSummary := false
	inInsight := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "Summary"):
			inSummary, inInsight = true, false
			continue
		case strings.Contains(line, "Insight"):
			inSummary, inInsight = false, true
			continue
		}

		if inSummary && (strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•")) {
			summaryLines = append(summaryLines, strings.TrimSpace(strings.TrimLeft(line, "-• ")))
		} else if inInsight && line != "" {
			insightParts = append(insightParts, line)
		}
	}

	summary = strings.Join(summaryLines, "\n")
	if summary == "" {
		summary = truncate(strings.TrimSpace(text), 200)
	}
	insight = strings.Join(insightParts, " ")

	return summary, insight
}

func sectionTitle(body, header string) string {
	firstLine := body
	if idx := strings.Index(body, "\n"); idx >= 0 {
		firstLine = body[:idx]
	}
	return strings.TrimSpace(strings.TrimPrefix(firstLine, header))
}

// between returns trimmed text after marker up to the earliest of the stop
// markers, or to the end of body when none follow.
func between(body, marker string, stops ...string) string {
	start := strings.Index(body, marker)
	if start < 0 {
		return ""
	}
	rest := body[start+len(marker):]

	end := len(rest)
	for _, stop := range stops {
		if idx := strings.Index(rest, stop); idx >= 0 && idx < end {
			end = idx
		}
	}
	return strings.TrimSpace(rest[:end])
}

func after(body, marker string) string {
	start := strings.Index(body, marker)
	if start < 0 {
		return ""
	}
	return body[start+len(marker):]
}

func hashtags(text string) []string {
	var tokens []string
	for _, match := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		tokens = append(tokens, match[1])
	}
	return tokens
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
