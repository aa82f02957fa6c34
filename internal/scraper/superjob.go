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

const superJobKeyHeader = "X-Api-App-Id"

var superJobFields = fieldPaths{
	Title:       "profession",
	Requirement: []string{"candidat", "vacancyRichText"},
	URL:         "link",
	From:        "payment_from",
	To:          "payment_to",
	Currency:    "currency",
}

// SuperJob searches vacancies through api.superjob.ru using an application key.
//
// The API answers 400 once a query is paged past its result window, so that
// status ends the search normally. Any other non-200 status aborts it;
// only network failures and timeouts leave a partial result.
type SuperJob struct {
	httpClient *http.Client
	cfg        config.SuperJobConfig
	secretKey  string
	userAgent  string
	maxPages   int
	logger     *pterm.Logger
}

// NewSuperJob creates a SuperJob provider. cfg.SecretKey must be set.
func NewSuperJob(cfg *config.Config, logger *pterm.Logger) *SuperJob {
	if logger == nil {
		logger = discardLogger()
	}
	return &SuperJob{
		httpClient: client.CreateHTTPClient(cfg.Timeout, cfg.ProxyURL),
		cfg:        cfg.SuperJob,
		secretKey:  cfg.SecretKey,
		userAgent:  cfg.UserAgent,
		maxPages:   cfg.MaxPages,
		logger:     logger,
	}
}

func (s *SuperJob) Name() string  { return "superjob" }
func (s *SuperJob) Title() string { return s.cfg.Title }

// Search pages through every vacancy matching query.
func (s *SuperJob) Search(ctx context.Context, query string) (*models.SearchResult, error) {
	return paginate(ctx, s.logger, s.Name(), query, s.maxPages, s.fetchPage)
}

func (s *SuperJob) fetchPage(ctx context.Context, query string, index int) (*page, error) {
	params := url.Values{}
	params.Set("keyword", query)
	params.Set("town", s.cfg.Town)
	params.Set("page", strconv.Itoa(index))
	if s.cfg.PerPage > 0 {
		params.Set("count", strconv.Itoa(s.cfg.PerPage))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range client.APIHeaders(s.userAgent) {
		req.Header[key] = values
	}
	req.Header.Set(superJobKeyHeader, s.secretKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vacancies: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, errEndOfResults
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %w", ErrFatalStatus, &StatusError{Provider: s.Name(), Code: resp.StatusCode})
	}

	body, err := client.ReadResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON in response")
	}

	doc := gjson.ParseBytes(body)
	return &page{
		listings: extractListings(doc.Get("objects").Array(), superJobFields, ""),
		total:    s.expectedPages(int(doc.Get("total").Int())),
		more:     doc.Get("more").Bool(),
	}, nil
}

func (s *SuperJob) expectedPages(total int) int {
	perPage := s.cfg.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	return (total + perPage - 1) / perPage
}
