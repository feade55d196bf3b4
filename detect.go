package main

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// pageState is what the attendance page says about today's attendance.
type pageState struct {
	CheckOut bool // a "Check Out" button exists, so check-in already happened
	CheckIn  bool // a "check in" button exists
	Marked   bool // the "attendance has been marked" banner is shown
}

// readPageState parses a DOM snapshot and looks for the attendance controls.
// Parse failures yield an empty state: nothing was found.
func readPageState(snapshot string, site siteProfile) pageState {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot))
	if err != nil {
		slog.Warn("Failed to parse page snapshot", "error", err)
		return pageState{}
	}
	return pageState{
		CheckOut: hasButton(doc, site.CheckOutLabel, false),
		CheckIn:  hasButton(doc, site.CheckInLabel, true),
		Marked:   hasText(doc, site.MarkedBanner),
	}
}

// hasButton reports whether some <button> has label in its leading text.
func hasButton(doc *goquery.Document, label string, foldCase bool) bool {
	found := false
	doc.Find("button").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = textMatches(leadingText(s), label, foldCase)
		return !found
	})
	return found
}

// hasText reports whether any element carries text in its leading text node.
func hasText(doc *goquery.Document, text string) bool {
	found := false
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = textMatches(leadingText(s), text, false)
		return !found
	})
	return found
}

func textMatches(have, want string, foldCase bool) bool {
	if want == "" {
		return false
	}
	if foldCase {
		return strings.Contains(strings.ToLower(have), strings.ToLower(want))
	}
	return strings.Contains(have, want)
}

// leadingText returns the first text node directly under the element. This
// is what an XPath contains(text(), ...) test looks at, so a click through
// the XPath locator hits the same element goquery found.
func leadingText(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c.Data
		}
	}
	return ""
}
