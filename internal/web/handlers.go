package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/davidkarpay/library-docent/internal/docent"
	"github.com/davidkarpay/library-docent/internal/library"
)

// searchResult is one search hit as serialized to the API: the entry plus
// its score and the presentation extras clients render.
type searchResult struct {
	library.Entry
	Score            float64               `json:"score"`
	Duration         string                `json:"duration,omitempty"`
	MatchingSections []docent.SectionMatch `json:"matching_sections,omitempty"`
}

// searchResponse echoes the effective filters alongside the results so
// callers can verify what was actually applied.
type searchResponse struct {
	Query   string         `json:"query"`
	Filters docent.Filters `json:"filters"`
	Total   int            `json:"total"`
	Results []searchResult `json:"results"`
}

func parseFilters(r *http.Request) docent.Filters {
	q := r.URL.Query()
	return docent.Filters{
		Type:       q.Get("type"),
		Topic:      q.Get("topic"),
		Difficulty: q.Get("difficulty"),
		Format:     q.Get("format"),
		Channel:    q.Get("channel"),
	}
}

func parseInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	filters := parseFilters(r)
	limit := docent.ClampLimit(parseInt(r, "limit", 0))
	terms := docent.Tokenize(query, docent.SearchTokenMin)

	var results []docent.Result
	if s.idx != nil && len(terms) > 0 {
		hits, err := s.idx.Search(query, filters, limit)
		if err != nil {
			respondDocentError(w, err)
			return
		}
		for _, hit := range hits {
			rec, err := s.store.Get(hit.ID)
			if err != nil {
				respondDocentError(w, err)
				return
			}
			if rec == nil {
				continue // index ahead of store, skip the orphan
			}
			results = append(results, docent.Result{Entry: rec.Entry, Score: hit.Score})
		}
	} else {
		entries, err := s.source.Entries(r.Context())
		if err != nil {
			respondDocentError(w, err)
			return
		}
		results = docent.Search(entries, query, filters, limit)
	}

	resp := searchResponse{
		Query:   query,
		Filters: filters,
		Total:   len(results),
		Results: make([]searchResult, 0, len(results)),
	}
	for _, res := range results {
		resp.Results = append(resp.Results, searchResult{
			Entry:            res.Entry,
			Score:            res.Score,
			Duration:         library.FormatDuration(res.Entry.DurationSeconds),
			MatchingSections: docent.MatchingSections(&res.Entry, terms),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

type recommendResponse struct {
	Topic           string          `json:"topic"`
	Level           string          `json:"level,omitempty"`
	Count           int             `json:"count"`
	Recommendations []library.Entry `json:"recommendations"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	level := r.URL.Query().Get("level")
	limit := docent.ClampLimit(parseInt(r, "limit", 0))

	entries, err := s.source.Entries(r.Context())
	if err != nil {
		respondDocentError(w, err)
		return
	}

	recs, err := docent.Recommend(entries, topic, level, limit)
	if err != nil {
		respondDocentError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, recommendResponse{
		Topic:           topic,
		Level:           level,
		Count:           len(recs),
		Recommendations: recs,
	})
}

type learningPathResponse struct {
	Goal   string             `json:"goal"`
	Levels []docent.PathLevel `json:"levels"`
}

func (s *Server) handleLearningPath(w http.ResponseWriter, r *http.Request) {
	goal := r.URL.Query().Get("goal")

	entries, err := s.source.Entries(r.Context())
	if err != nil {
		respondDocentError(w, err)
		return
	}

	path, err := docent.BuildPath(entries, goal)
	if err != nil {
		respondDocentError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, learningPathResponse{Goal: goal, Levels: path})
}

type whatsNewResponse struct {
	docent.WhatsNew
	Days int    `json:"days"`
	Type string `json:"type"`
}

func (s *Server) handleWhatsNew(w http.ResponseWriter, r *http.Request) {
	days := parseInt(r, "days", docent.DefaultWhatsNewDays)
	contentType := r.URL.Query().Get("type")
	if contentType == "" {
		contentType = docent.TypeAll
	}

	entries, err := s.source.Entries(r.Context())
	if err != nil {
		respondDocentError(w, err)
		return
	}

	recent := docent.RecentlyAdded(entries, days, contentType, s.now())
	respondJSON(w, http.StatusOK, whatsNewResponse{
		WhatsNew: recent,
		Days:     days,
		Type:     contentType,
	})
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entries, err := s.source.Entries(r.Context())
	if err != nil {
		respondDocentError(w, err)
		return
	}

	entry, err := docent.Lookup(entries, id)
	if err != nil {
		respondDocentError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

type relatedResponse struct {
	Source  string               `json:"source"`
	Count   int                  `json:"count"`
	Related []docent.RelatedItem `json:"related"`
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit := docent.ClampLimit(parseInt(r, "limit", 0))

	entries, err := s.source.Entries(r.Context())
	if err != nil {
		respondDocentError(w, err)
		return
	}

	source, related, err := docent.Related(entries, id, limit)
	if err != nil {
		respondDocentError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, relatedResponse{
		Source:  source.Title,
		Count:   len(related),
		Related: related,
	})
}

type statsResponse struct {
	Total      int            `json:"total"`
	ByType     map[string]int `json:"by_type"`
	Topics     int            `json:"topics"`
	IndexDocs  uint64         `json:"index_docs,omitempty"`
	IndexReady bool           `json:"index_ready"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	entries, err := s.source.Entries(r.Context())
	if err != nil {
		respondDocentError(w, err)
		return
	}

	resp := statsResponse{
		Total:  len(entries),
		ByType: make(map[string]int),
	}
	topics := make(map[string]bool)
	for i := range entries {
		resp.ByType[entries[i].ContentType]++
		for _, t := range entries[i].Facets.Topics {
			topics[strings.ToLower(t)] = true
		}
	}
	resp.Topics = len(topics)

	if s.idx != nil {
		if count, err := s.idx.Count(); err == nil {
			resp.IndexDocs = count
			resp.IndexReady = true
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRebuildIndex(w http.ResponseWriter, r *http.Request) {
	if s.idx == nil || s.store == nil {
		respondError(w, http.StatusNotFound, "no index attached to this host")
		return
	}

	count, err := s.idx.Rebuild(s.store)
	if err != nil {
		respondDocentError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"documents": count,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	entries, err := s.source.Entries(r.Context())
	if err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]any{
		"status":  status,
		"entries": len(entries),
	})
}
