package markdown_parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTopSections_WellFormed(t *testing.T) {
	text := `# Daily Briefing

## Top 1: Go 1.30 Released
**Summary:** The Go team shipped version 1.30 with a faster linker.
**Insights:** Toolchain speed keeps being a priority for the Go project.
**Related tech:** #Go #Compiler #Toolchain

## Top 2: Quantum Chip Benchmark
**Summary:** A new 400-qubit chip posted record error-correction numbers.
**Insights:** Error correction is becoming the main competitive axis.
**Related tech:** #Quantum #Hardware

## Top 3: Browser Engine Rewrite
**Summary:** A major browser vendor announced a memory-safe engine rewrite.
**Insights:** Memory safety pressure is reaching legacy codebases.
**Related tech:** #Rust #Browser #MemorySafety
`

	sections := ParseTopSections(text)
	require.Len(t, sections, 3)

	assert.Equal(t, "Go 1.30 Released", sections[0].Title)
	assert.Equal(t, "The Go team shipped version 1.30 with a faster linker.", sections[0].Summary)
	assert.Equal(t, "Toolchain speed keeps being a priority for the Go project.", sections[0].Insights)
	assert.Equal(t, []string{"Go", "Compiler", "Toolchain"}, sections[0].RelatedTech)

	assert.Equal(t, "Quantum Chip Benchmark", sections[1].Title)
	assert.Equal(t, []string{"Quantum", "Hardware"}, sections[1].RelatedTech)

	assert.Equal(t, "Browser Engine Rewrite", sections[2].Title)
	assert.Equal(t, []string{"Rust", "Browser", "MemorySafety"}, sections[2].RelatedTech)
}

func TestParseTopSections_MissingTitleDropsSection(t *testing.T) {
	text := `## Top 1:
**Summary:** orphaned summary
## Top 2: Real Title
**Summary:** kept
**Insights:** kept too
**Related tech:** #Keep
`

	sections := ParseTopSections(text)
	require.Len(t, sections, 1)
	assert.Equal(t, "Real Title", sections[0].Title)
	assert.Equal(t, "kept", sections[0].Summary)
}

func TestParseTopSections_MalformedBlocksDegrade(t *testing.T) {
	text := `## Top 1: Only A Title
no markers in this section at all

## Top 2: Partial Markers
**Summary:** summary without the rest
`

	sections := ParseTopSections(text)
	require.Len(t, sections, 2)

	assert.Equal(t, "Only A Title", sections[0].Title)
	assert.Empty(t, sections[0].Summary)
	assert.Empty(t, sections[0].Insights)
	assert.Empty(t, sections[0].RelatedTech)

	assert.Equal(t, "summary without the rest", sections[1].Summary)
	assert.Empty(t, sections[1].Insights)
}

func TestParseTopSections_EmptyInput(t *testing.T) {
	assert.Empty(t, ParseTopSections(""))
	assert.Empty(t, ParseTopSections("free text without any headers"))
}

func TestParseTopSections_SummaryBoundedByRelatedTech(t *testing.T) {
	// No Insights block; the summary span must stop at Related tech.
	text := `## Top 1: Title
**Summary:** short take
**Related tech:** #OnlyTag
`

	sections := ParseTopSections(text)
	require.Len(t, sections, 1)
	assert.Equal(t, "short take", sections[0].Summary)
	assert.Equal(t, []string{"OnlyTag"}, sections[0].RelatedTech)
}

func TestParseSummaryInsight(t *testing.T) {
	text := `Summary:
- First key point
- Second key point
- Third key point

Insight:
The trend is accelerating. Expect consolidation next year.
`

	summary, insight := ParseSummaryInsight(text)
	assert.Equal(t, "First key point\nSecond key point\nThird key point", summary)
	assert.Equal(t, "The trend is accelerating. Expect consolidation next year.", insight)
}

func TestParseSummaryInsight_NoBulletsFallsBackToRawText(t *testing.T) {
	raw := strings.Repeat("x", 300)

	summary, insight := ParseSummaryInsight(raw)
	assert.Len(t, []rune(summary), 200)
	assert.Empty(t, insight)
}
