package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/umputun/summarylive/pkg/api"
	"github.com/umputun/summarylive/pkg/domain"
	"github.com/umputun/summarylive/pkg/live"
	"github.com/umputun/summarylive/pkg/view"
)

// filterRequest is the body of PUT /api/v1/filter
type filterRequest struct {
	Date     string `json:"date"`
	Category string `json:"category"`
}

// categoryInfo is a single entry of the category index
type categoryInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// statusHandler returns server and session status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := struct {
		Health  string    `json:"status"`
		Version string    `json:"version"`
		Time    time.Time `json:"time"`
		live.Status
	}{
		Health:  "ok",
		Version: s.version,
		Time:    time.Now().UTC(),
		Status:  s.session.Status(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// summariesHandler returns a derived view for the filter given in query params,
// the session's own filter is not changed
func (s *Server) summariesHandler(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	items := s.session.Query(f)
	RenderJSON(w, r, http.StatusOK, map[string]any{
		"filter": f,
		"items":  items,
		"count":  len(items),
	})
}

// summaryHandler returns a single summary, from the store or the data source
func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	id := domain.SummaryID(strings.TrimSpace(r.PathValue("id")))
	if id == "" {
		RenderError(w, r, errors.New("empty summary id"), http.StatusBadRequest)
		return
	}

	summary, err := s.session.Summary(r.Context(), id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			RenderError(w, r, fmt.Errorf("summary %s not found", id), http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to get summary %s: %v", id, err)
		RenderError(w, r, err, http.StatusBadGateway)
		return
	}

	RenderJSON(w, r, http.StatusOK, summary)
}

// categoriesHandler returns the category index with per-category counts
func (s *Server) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	all := s.session.All()
	counts := view.Counts(all)
	cats := view.Categories(all)

	res := make([]categoryInfo, 0, len(cats))
	for _, c := range cats {
		res = append(res, categoryInfo{Name: c, Count: counts[strings.ToUpper(c)]})
	}
	RenderJSON(w, r, http.StatusOK, res)
}

// viewHandler returns the session's current derived view
func (s *Server) viewHandler(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, s.session.View())
}

// setFilterHandler replaces the session's active filter
func (s *Server) setFilterHandler(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	v := s.session.SetFilter(domain.Filter{Date: date, Category: strings.TrimSpace(req.Category)})
	RenderJSON(w, r, http.StatusOK, v)
}

// clearFilterHandler drops the session's active filter
func (s *Server) clearFilterHandler(w http.ResponseWriter, r *http.Request) {
	RenderJSON(w, r, http.StatusOK, s.session.ClearFilter())
}

// refreshHandler requests a refresh through the bridge
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Refresh(); err != nil {
		if errors.Is(err, live.ErrInactive) {
			RenderError(w, r, err, http.StatusServiceUnavailable)
			return
		}
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusAccepted, map[string]string{"status": "refresh requested"})
}

func filterFromQuery(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	date, err := domain.ParseDate(strings.TrimSpace(q.Get("date")))
	if err != nil {
		return domain.Filter{}, err
	}
	return domain.Filter{Date: date, Category: strings.TrimSpace(q.Get("category"))}, nil
}
