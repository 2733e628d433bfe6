// Package sources implements caption retrieval from YouTube.
//
// The implementation is split across three files by responsibility:
//
//	youtube.go           — video ID normalization and watch-page metadata
//	youtube_innertube.go — Innertube API types, constants, and HTTP primitives
//	youtube_captions.go  — caption track discovery, selection, and download
package sources

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// videoIDRE extracts the 11-character video ID from common YouTube URL
// shapes (watch, short link, embed).
var videoIDRE = regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`)

// bareIDRE matches a value that already is a video ID.
var bareIDRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ExtractVideoID normalizes a video URL or bare ID to the 11-character
// video ID. Pure string handling — no network.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if bareIDRE.MatchString(raw) {
		return raw, nil
	}
	if m := videoIDRE.FindStringSubmatch(raw); len(m) == 2 {
		return m[1], nil
	}
	return "", fmt.Errorf("cannot extract video ID from %q", raw)
}

// videoMeta is display metadata scraped from the watch page.
type videoMeta struct {
	Title   string
	Channel string
}

// parseWatchMeta pulls og: meta tags out of watch-page HTML with a
// tolerant tree parse; scripts and broken markup do not matter here.
func parseWatchMeta(body []byte) videoMeta {
	var meta videoMeta
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return meta
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var prop, name, content string
			for _, a := range n.Attr {
				switch a.Key {
				case "property":
					prop = a.Val
				case "name":
					name = a.Val
				case "content":
					content = a.Val
				}
			}
			switch {
			case prop == "og:title":
				meta.Title = content
			case name == "author":
				meta.Channel = content
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return meta
}
