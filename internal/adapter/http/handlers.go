package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/palegrove/skyline-explorer/internal/chart"
	"github.com/palegrove/skyline-explorer/internal/domain"
	"github.com/palegrove/skyline-explorer/internal/export"
	"github.com/palegrove/skyline-explorer/internal/views"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// cityCountsPayload wraps the ranking so an empty result encodes as an empty
// list rather than null.
type cityCountsPayload struct {
	Cities []domain.CityCount `json:"cities"`
}

// trendPayload wraps the yearly series the same way.
type trendPayload struct {
	Years []domain.YearCount `json:"years"`
}

func (s *Server) handleMeta(w http.ResponseWriter, _ *http.Request) {
	s.setLastModified(w)
	writeJSON(w, http.StatusOK, s.renderer.Meta())
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filterFrom(w, r)
	if !ok {
		return
	}
	s.setLastModified(w)
	writeJSON(w, http.StatusOK, s.renderer.Table(f))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filterFrom(w, r)
	if !ok {
		return
	}
	s.setLastModified(w)
	writeJSON(w, http.StatusOK, s.renderer.Stats(f))
}

func (s *Server) handleTopCities(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filterFrom(w, r)
	if !ok {
		return
	}
	counts := s.renderer.TopCities(f)
	if counts == nil {
		counts = []domain.CityCount{}
	}
	s.setLastModified(w)
	writeJSON(w, http.StatusOK, cityCountsPayload{Cities: counts})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filterFrom(w, r)
	if !ok {
		return
	}
	series := s.renderer.Trend(f)
	if series == nil {
		series = []domain.YearCount{}
	}
	s.setLastModified(w)
	writeJSON(w, http.StatusOK, trendPayload{Years: series})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filterFrom(w, r)
	if !ok {
		return
	}
	s.setLastModified(w)
	writeJSON(w, http.StatusOK, s.renderer.Map(f, r.URL.Query().Get("focus")))
}

func (s *Server) handleTopCitiesChart(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filterFrom(w, r)
	if !ok {
		return
	}
	png, err := chart.TopCitiesPNG(s.renderer.TopCities(f))
	if err != nil {
		s.logger.Error("chart render failed", "chart", "top-cities", "error", err)
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}
	s.writePNG(w, png)
}

func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filterFrom(w, r)
	if !ok {
		return
	}
	png, err := chart.TrendPNG(s.renderer.Trend(f))
	if err != nil {
		s.logger.Error("chart render failed", "chart", "trend", "error", err)
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}
	s.writePNG(w, png)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filterFrom(w, r)
	if !ok {
		return
	}
	data, err := s.renderer.ExportCSV(f)
	s.writeExport(w, data, err, "csv", export.CSVFilename, csvContentType)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	f, ok := s.filterFrom(w, r)
	if !ok {
		return
	}
	data, err := s.renderer.ExportXLSX(f)
	s.writeExport(w, data, err, "xlsx", export.XLSXFilename, xlsxContentType)
}

func (s *Server) writePNG(w http.ResponseWriter, png []byte) {
	s.setLastModified(w)
	w.Header().Set("Content-Type", "image/png")
	w.Write(png) //nolint:errcheck // client gone mid-write is not actionable
}

func (s *Server) writeExport(w http.ResponseWriter, data []byte, err error, format, filename, contentType string) {
	if errors.Is(err, views.ErrNoData) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("export failed", "format", format, "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	s.setLastModified(w)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data) //nolint:errcheck // client gone mid-write is not actionable
}

// setLastModified stamps data-bearing responses with the dataset load time.
func (s *Server) setLastModified(w http.ResponseWriter) {
	w.Header().Set("Last-Modified", s.renderer.LoadedAt().UTC().Format(http.TimeFormat))
}

// filterFrom builds the record filter for a request, starting from the
// dataset bounds and overriding from the query string. On a bad parameter it
// writes the 400 response itself and reports false.
func (s *Server) filterFrom(w http.ResponseWriter, r *http.Request) (domain.Filter, bool) {
	f, err := parseFilter(r.URL.Query(), s.renderer.DefaultFilter())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return domain.Filter{}, false
	}
	return f, true
}

// parseFilter overrides the default bounds with any yearMin, yearMax,
// heightMin, and heightMax parameters and collects repeated city values.
// Absent parameters keep the dataset bounds; no city values means no city
// predicate.
func parseFilter(q url.Values, def domain.Filter) (domain.Filter, error) {
	f := def
	var err error
	if f.YearMin, err = intParam(q, "yearMin", def.YearMin); err != nil {
		return domain.Filter{}, err
	}
	if f.YearMax, err = intParam(q, "yearMax", def.YearMax); err != nil {
		return domain.Filter{}, err
	}
	if f.HeightMin, err = floatParam(q, "heightMin", def.HeightMin); err != nil {
		return domain.Filter{}, err
	}
	if f.HeightMax, err = floatParam(q, "heightMax", def.HeightMax); err != nil {
		return domain.Filter{}, err
	}
	f.Cities = nil
	for _, c := range q["city"] {
		if c != "" {
			f.Cities = append(f.Cities, c)
		}
	}
	if err := f.Validate(); err != nil {
		return domain.Filter{}, err
	}
	return f, nil
}

func intParam(q url.Values, key string, fallback int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func floatParam(q url.Values, key string, fallback float64) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}
