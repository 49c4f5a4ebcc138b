package server

import (
	"embed"
	"html/template"
	"net/url"

	"cloud.google.com/go/civil"

	"github.com/elonfeng/ytdash/pkg/chart"
)

//go:embed templates/*.html
var templatesFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

type chartFrame struct {
	Kind string
	Src  string
}

type dashboardData struct {
	Title    string
	Channels []string
	Selected string
	Start    string
	End      string
	Min      string
	Max      string
	Charts   map[string]chartFrame
}

func dateValue(d civil.Date) string {
	if !d.IsValid() {
		return ""
	}
	return d.String()
}

func (s *Server) dashboardData(q viewQuery) dashboardData {
	data := dashboardData{
		Title:    chart.PageTitle,
		Selected: q.Channel,
		Start:    dateValue(q.Start),
		End:      dateValue(q.End),
		Min:      dateValue(s.minDate),
		Max:      dateValue(s.maxDate),
		Charts:   make(map[string]chartFrame),
	}
	for _, c := range s.table.Channels() {
		data.Channels = append(data.Channels, c.Name)
	}

	params := url.Values{}
	params.Set("channel", q.Channel)
	if data.Start != "" {
		params.Set("start", data.Start)
	}
	if data.End != "" {
		params.Set("end", data.End)
	}
	for _, k := range chart.Kinds() {
		data.Charts[string(k)] = chartFrame{
			Kind: string(k),
			Src:  "/charts/" + string(k) + "?" + params.Encode(),
		}
	}
	return data
}
