package autotest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRuleLine(t *testing.T) {
	line := RuleLine()
	assert.Len(t, line, 85)
	assert.True(t, strings.HasPrefix(line, "+-"))
	assert.True(t, strings.HasSuffix(line, "-+"))
}

func TestBannerLine(t *testing.T) {
	line := BannerLine("STARTING AUTO TEST")
	assert.Len(t, line, 85)
	assert.Equal(t, "|"+strings.Repeat(" ", 32)+"STARTING AUTO TEST"+strings.Repeat(" ", 33)+"|", line)
}

func TestCaseLine(t *testing.T) {
	assert.Equal(t,
		"| Test case 1: Bootloader success"+strings.Repeat(" ", 41)+" Approved |",
		CaseLine(1, "Bootloader success", true))
	assert.Equal(t,
		"| Test case 2: Bootloader CRC error"+strings.Repeat(" ", 39)+"   Failed |",
		CaseLine(2, "Bootloader CRC error", false))
	assert.Len(t, CaseLine(3, "Backup success", true), 85)
}

func TestCaseLineTruncatesLongNames(t *testing.T) {
	name := strings.Repeat("n", 80)
	line := CaseLine(4, name, false)
	assert.Len(t, line, 85)
	assert.Contains(t, line, strings.Repeat("n", 59)+"   Failed |")

	unicodeName := strings.Repeat("é", 70)
	assert.Equal(t, 85, utf8.RuneCountInString(CaseLine(4, unicodeName, true)))
}
