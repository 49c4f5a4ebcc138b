package server

import (
	"fmt"
	"net/http"

	"cloud.google.com/go/civil"
)

// viewQuery selects one filtered view.
type viewQuery struct {
	Channel string     `json:"channel"`
	Start   civil.Date `json:"start"`
	End     civil.Date `json:"end"`
}

// parseQuery reads channel, start and end. Absent parameters take the
// dashboard defaults; malformed dates are an error.
func (s *Server) parseQuery(r *http.Request) (viewQuery, error) {
	q := s.defaultQuery()
	v := r.URL.Query()

	if ch := v.Get("channel"); ch != "" {
		q.Channel = ch
	}
	for _, p := range []struct {
		name string
		dst  *civil.Date
	}{{"start", &q.Start}, {"end", &q.End}} {
		raw := v.Get(p.name)
		if raw == "" {
			continue
		}
		d, err := civil.ParseDate(raw)
		if err != nil {
			return viewQuery{}, fmt.Errorf("invalid %s %q: want YYYY-MM-DD", p.name, raw)
		}
		*p.dst = d
	}
	return q, nil
}

// lenientQuery is parseQuery for pages: a malformed date falls back to its
// default instead of failing the request.
func (s *Server) lenientQuery(r *http.Request) viewQuery {
	q := s.defaultQuery()
	v := r.URL.Query()
	if ch := v.Get("channel"); ch != "" {
		q.Channel = ch
	}
	if d, err := civil.ParseDate(v.Get("start")); err == nil {
		q.Start = d
	}
	if d, err := civil.ParseDate(v.Get("end")); err == nil {
		q.End = d
	}
	return q
}

func (s *Server) defaultQuery() viewQuery {
	return viewQuery{Channel: s.defaultChannel, Start: s.minDate, End: s.maxDate}
}
