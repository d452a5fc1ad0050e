package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/umputun/summarylive/pkg/domain"
	"github.com/umputun/summarylive/pkg/feed"
)

// rssHandler serves RSS feed of summaries.
// Supports /rss for the session's current view and /rss/{category} or /rss?category=... for a single category
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.PathValue("category"))
	if category == "" {
		category = strings.TrimSpace(r.URL.Query().Get("category"))
	}

	var items []domain.Summary
	if category != "" {
		items = s.session.Query(domain.Filter{Category: category})
	} else {
		v := s.session.View()
		items, category = v.Items, v.Filter.Category
	}

	rss, err := s.generator().GenerateRSS(items, category)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler serves OPML list of per-category feeds
func (s *Server) opmlHandler(w http.ResponseWriter, _ *http.Request) {
	opml, err := s.generator().GenerateOPML(s.session.Categories())
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}

func (s *Server) generator() *feed.Generator {
	baseURL, title := s.config.GetFeedConfig()
	return feed.NewGenerator(baseURL, title)
}
