package handlers

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/config"
	"github.com/bobmcallan/sharedash/internal/dashboard"
	"github.com/bobmcallan/sharedash/internal/filter"
	"github.com/bobmcallan/sharedash/internal/models"
)

// PageHandler serves the dashboard tabs rendered with Go templates.
type PageHandler struct {
	logger    *common.Logger
	templates *template.Template
	devMode   bool
	svc       *dashboard.Service
	base      models.FilterSpec
}

// NewPageHandler creates a new page handler that loads templates from the pages directory.
// base holds the sidebar selections used when the query string has none.
func NewPageHandler(logger *common.Logger, devMode bool, svc *dashboard.Service, base models.FilterSpec) *PageHandler {
	pagesDir := FindPagesDir()

	templates := template.Must(template.New("").Funcs(templateFuncs).ParseGlob(filepath.Join(pagesDir, "*.html")))
	template.Must(templates.ParseGlob(filepath.Join(pagesDir, "partials", "*.html")))

	return &PageHandler{
		logger:    logger,
		templates: templates,
		devMode:   devMode,
		svc:       svc,
		base:      base,
	}
}

var templateFuncs = template.FuncMap{
	"lower": strings.ToLower,
	"count": common.FormatCount,
}

// FindPagesDir locates the pages directory.
func FindPagesDir() string {
	dirs := []string{
		"./pages",
		"../pages",
		"../../pages",
		".",
	}

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

// tab is one entry of the tab bar.
type tab struct {
	Name   string
	Label  string
	URL    string
	Active bool
}

// option is one entry of a sidebar select.
type option struct {
	Value    string
	Label    string
	Selected bool
}

// hiddenField carries non-filter state through the sidebar form.
type hiddenField struct {
	Name  string
	Value string
}

// pageData is the template context shared by every tab.
type pageData struct {
	Page          string
	Title         string
	AppName       string
	DevMode       bool
	Version       string
	Spec          models.FilterSpec
	PMin          string
	PMax          string
	FilterQuery   string
	InvalidParams []string
	Tabs          []tab
	SortOptions   []option
	LimitOptions  []option
	Hidden        []hiddenField

	Shares         *sharesPage
	Probabilities  *probabilitiesPage
	Classification *dashboard.ClassificationView
}

var tabs = []tab{
	{Name: "shares", Label: "Share Information", URL: "/shares"},
	{Name: "probabilities", Label: "Probability Information", URL: "/probabilities"},
	{Name: "classification", Label: "Classification Area", URL: "/classification"},
}

func (h *PageHandler) newPageData(page string, spec models.FilterSpec, specErr error) *pageData {
	fq := filter.Query(spec).Encode()

	data := &pageData{
		Page:          page,
		AppName:       common.AppName,
		DevMode:       h.devMode,
		Version:       config.GetVersion(),
		Spec:          spec,
		PMin:          strconv.FormatFloat(spec.ProbMin, 'f', -1, 64),
		PMax:          strconv.FormatFloat(spec.ProbMax, 'f', -1, 64),
		FilterQuery:   fq,
		InvalidParams: invalidParams(specErr),
	}

	for _, t := range tabs {
		t.Active = t.Name == page
		if t.Active {
			data.Title = t.Label
		}
		t.URL += "?" + fq
		data.Tabs = append(data.Tabs, t)
	}

	for _, k := range models.SortKeys {
		data.SortOptions = append(data.SortOptions, option{
			Value:    string(k),
			Label:    k.Label(),
			Selected: k == spec.Sort,
		})
	}

	known := false
	for _, l := range models.LimitOptions {
		label := l.String()
		if l.All {
			label = "All"
		}
		selected := l == spec.Limit
		known = known || selected
		data.LimitOptions = append(data.LimitOptions, option{Value: l.String(), Label: label, Selected: selected})
	}
	if !known {
		data.LimitOptions = append(data.LimitOptions, option{Value: spec.Limit.String(), Label: spec.Limit.String(), Selected: true})
	}

	return data
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", name).Str("error", err.Error()).Msg("failed to render page")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Root redirects to the share tab, keeping the query string.
func (h *PageHandler) Root(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	target := "/shares"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// StaticFileHandler serves static files (CSS, JS, images).
func (h *PageHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	pagesDir := FindPagesDir()
	staticDir := filepath.Join(pagesDir, "static")

	// Remove /static/ prefix from URL path
	path := strings.TrimPrefix(r.URL.Path, "/static/")
	fullPath := filepath.Join(staticDir, path)

	// Security: prevent directory traversal
	absStaticDir, _ := filepath.Abs(staticDir)
	absFullPath, _ := filepath.Abs(fullPath)
	if !strings.HasPrefix(absFullPath, absStaticDir+string(filepath.Separator)) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, fullPath)
}
