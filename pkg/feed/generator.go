// Package feed exports derived views of summaries as RSS 2.0 and OPML
package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/summarylive/pkg/domain"
)

// Generator creates RSS feeds from summaries
type Generator struct {
	baseURL string
	title   string
}

// NewGenerator creates a new feed generator. Links in feeds point to baseURL, title prefixes channel titles.
func NewGenerator(baseURL, title string) *Generator {
	if title == "" {
		title = "Summaries"
	}
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		title:   title,
	}
}

// GenerateRSS creates an RSS 2.0 feed from summaries, empty category means all of them.
// Summaries are written in the given order.
func (g *Generator) GenerateRSS(items []domain.Summary, category string) (string, error) {
	title := g.title + " - All Categories"
	selfLink := g.baseURL + "/rss"
	description := "Latest news summaries"
	if category != "" {
		title = fmt.Sprintf("%s - %s", g.title, category)
		selfLink = fmt.Sprintf("%s/rss/%s", g.baseURL, url.PathEscape(category))
		description = fmt.Sprintf("Latest news summaries in %s", category)
	}

	rssItems := make([]*RSSItem, 0, len(items))
	for _, item := range items {
		rssItems = append(rssItems, g.convertToRSSItem(item))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   description,
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts a summary to an RSS item. Link is the first source, or the local detail endpoint.
func (g *Generator) convertToRSSItem(item domain.Summary) *RSSItem {
	link := fmt.Sprintf("%s/api/v1/summary/%s", g.baseURL, url.PathEscape(item.ID.String()))
	if len(item.Sources) > 0 && item.Sources[0] != "" {
		link = item.Sources[0]
	}

	desc := domain.PlainText(item.Body)
	if len(item.Sources) > 0 {
		desc += "\n\nSources:\n" + strings.Join(item.Sources, "\n")
	}

	res := &RSSItem{
		Title:       item.Title,
		Link:        link,
		GUID:        RSSGUID{Value: "summary-" + item.ID.String()},
		Description: strings.TrimSpace(desc),
		Categories:  item.Categories,
	}

	// publication time, fall back to generation time
	switch {
	case item.PublishedAt.Valid:
		res.PubDate = item.PublishedAt.Time.Format(time.RFC1123Z)
	case item.GeneratedAt.Valid:
		res.PubDate = item.GeneratedAt.Time.Format(time.RFC1123Z)
	}
	return res
}

// GenerateOPML creates an OPML file with a subscription per category feed
func (g *Generator) GenerateOPML(categories []string) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
		HTMLUrl string   `xml:"htmlUrl,attr,omitempty"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(categories)+1)
	outlines = append(outlines, outline{
		Text:    g.title + " - All Categories",
		Title:   g.title + " - All Categories",
		Type:    "rss",
		XMLUrl:  g.baseURL + "/rss",
		HTMLUrl: g.baseURL + "/",
	})
	for _, c := range categories {
		if strings.TrimSpace(c) == "" {
			continue
		}
		outlines = append(outlines, outline{
			Text:    c,
			Title:   fmt.Sprintf("%s - %s", g.title, c),
			Type:    "rss",
			XMLUrl:  fmt.Sprintf("%s/rss/%s", g.baseURL, url.PathEscape(c)),
			HTMLUrl: g.baseURL + "/",
		})
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       g.title + " Category Feeds",
			DateCreated: time.Now().Format(time.RFC1123Z),
		},
		Body: body{
			Outlines: outlines,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}
