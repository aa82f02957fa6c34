package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/pterm/pterm"
	"github.com/tidwall/gjson"
)

var headHunterFields = fieldPaths{
	Title:       "name",
	Requirement: []string{"snippet.requirement", "snippet.responsibility"},
	URL:         "alternate_url",
	From:        "salary.from",
	To:          "salary.to",
	Currency:    "salary.currency",
}

// HeadHunter searches vacancies through the public api.hh.ru endpoint.
// It needs no credentials; any failed page simply ends the search.
type HeadHunter struct {
	httpClient *http.Client
	cfg        config.HeadHunterConfig
	userAgent  string
	maxPages   int
	logger     *pterm.Logger
}

// NewHeadHunter creates a HeadHunter provider from the run configuration.
func NewHeadHunter(cfg *config.Config, logger *pterm.Logger) *HeadHunter {
	if logger == nil {
		logger = discardLogger()
	}
	return &HeadHunter{
		httpClient: client.CreateHTTPClient(cfg.Timeout, cfg.ProxyURL),
		cfg:        cfg.HeadHunter,
		userAgent:  cfg.UserAgent,
		maxPages:   cfg.MaxPages,
		logger:     logger,
	}
}

func (h *HeadHunter) Name() string  { return "hh" }
func (h *HeadHunter) Title() string { return h.cfg.Title }

// Search pages through every vacancy matching query.
func (h *HeadHunter) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	return paginate(ctx, h.logger, h.Name(), query, h.maxPages, h.fetchPage)
}

func (h *HeadHunter) fetchPage(ctx context.Context, query string, index int) (*page, error) {
	params := url.Values{}
	params.Set("text", query)
	params.Set("area", h.cfg.Area)
	params.Set("currency", h.cfg.Currency)
	params.Set("page", strconv.Itoa(index))
	if h.cfg.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(h.cfg.PerPage))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range client.APIHeaders(h.userAgent) {
		req.Header[key] = values
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vacancies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: h.Name(), Code: resp.StatusCode}
	}

	body, err := client.ReadResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON in response")
	}

	doc := gjson.ParseBytes(body)
	total := int(doc.Get("pages").Int())

	return &page{
		listings: extractListings(doc.Get("items").Array(), headHunterFields, h.cfg.Currency),
		total:    total,
		more:     index+1 < total,
	}, nil
}
