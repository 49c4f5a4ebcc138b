package server

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/elonfeng/ytdash/internal/store"
	"github.com/elonfeng/ytdash/pkg/chart"
	"github.com/elonfeng/ytdash/pkg/dataset"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypePNG  = "image/png"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := s.lenientQuery(r)

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, s.dashboardData(q)); err != nil {
		s.log.ErrorContext(r.Context(), "render dashboard", "error", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeBody(w, contentTypeHTML, &buf)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := chart.Overview(&buf, s.table); err != nil {
		s.metrics.renderErrors.WithLabelValues("overview").Inc()
		s.log.ErrorContext(r.Context(), "render overview", "error", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeBody(w, contentTypeHTML, &buf)
}

// handleChart serves /charts/{kind} as HTML and /charts/{kind}.png as a
// static image.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name, asPNG := strings.CutSuffix(chi.URLParam(r, "kind"), ".png")
	kind, err := chart.ParseKind(name)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	if asPNG && !chart.SupportsPNG(kind) {
		writeError(w, r, http.StatusUnsupportedMediaType, chart.ErrUnsupportedFormat.Error())
		return
	}

	q := s.lenientQuery(r)
	v := s.view(string(kind), q)
	title := chart.Title(kind, q.Channel)

	var buf bytes.Buffer
	contentType := contentTypeHTML
	if asPNG {
		contentType = contentTypePNG
		err = chart.RenderPNG(&buf, kind, v, title)
	} else {
		var fig chart.Figure
		if fig, err = chart.Build(kind, v, title); err == nil {
			err = fig.Render(&buf)
		}
	}
	if err != nil {
		s.metrics.renderErrors.WithLabelValues(string(kind)).Inc()
		s.log.ErrorContext(r.Context(), "render chart", "kind", kind, "png", asPNG, "error", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeBody(w, contentType, &buf)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "rows": s.table.Len()})
}

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	channels := s.table.Channels()
	if channels == nil {
		channels = []dataset.ChannelSummary{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"data":  channels,
		"count": len(channels),
	})
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"min_publish_date":  nil,
		"max_trending_date": nil,
		"default_channel":   s.defaultChannel,
	}
	if s.table.Len() > 0 {
		resp["min_publish_date"] = s.minDate
		resp["max_trending_date"] = s.maxDate
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records := s.view("api", q).Records()
	if records == nil {
		records = []dataset.Record{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"query": q,
		"data":  records,
		"count": len(records),
	})
}

func (s *Server) handleViewXLSX(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := store.WriteXLSX(&buf, s.view("xlsx", q)); err != nil {
		s.metrics.renderErrors.WithLabelValues("xlsx").Inc()
		s.log.ErrorContext(r.Context(), "render xlsx", "error", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="view.xlsx"`)
	writeBody(w, contentTypeXLSX, &buf)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}
