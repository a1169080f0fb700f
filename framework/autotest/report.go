package autotest

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	reportInnerWidth = 83
	reportNameWidth  = 59
	reportStatWidth  = 8

	statusApproved = "Approved"
	statusFailed   = "Failed"
)

// RuleLine is the separator printed around the banner and after every test case.
func RuleLine() string {
	return "+" + strings.Repeat("-", reportInnerWidth) + "+"
}

// BannerLine centers title between vertical bars, with any odd padding space on the right.
func BannerLine(title string) string {
	title = fitWidth(title, reportInnerWidth)
	pad := reportInnerWidth - utf8.RuneCountInString(title)
	left := pad / 2
	return "|" + strings.Repeat(" ", left) + title + strings.Repeat(" ", pad-left) + "|"
}

// CaseLine formats the report line for one executed feature.
func CaseLine(index int, name string, passed bool) string {
	return caseLine(index, name, passed, func(s string) string { return s })
}

func caseLine(index int, name string, passed bool, paint func(string) string) string {
	status := statusFailed
	if passed {
		status = statusApproved
	}
	name = fitWidth(name, reportNameWidth)
	name += strings.Repeat(" ", reportNameWidth-utf8.RuneCountInString(name))
	return fmt.Sprintf("| Test case %d: %s %s |", index, name, paint(fmt.Sprintf("%*s", reportStatWidth, status)))
}

func fitWidth(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}
