package models

// Listing is one vacancy returned by a provider search, reduced to the
// fields the salary statistics need.
type Listing struct {
	Title       string `json:"title"`
	Requirement string `json:"requirement,omitempty"`
	URL         string `json:"url,omitempty"`
	SalaryFrom  *int   `json:"salary_from,omitempty"`
	SalaryTo    *int   `json:"salary_to,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

// LanguageStats aggregates the listings found for one programming language
// on one provider. AverageSalary is nil when no listing had a usable salary.
type LanguageStats struct {
	Language           string   `json:"language"`
	VacanciesFound     int      `json:"vacancies_found"`
	VacanciesProcessed int      `json:"vacancies_processed"`
	AverageSalary      *float64 `json:"average_salary"`
}

// SearchResult is the outcome of paging through a provider search.
// PagesExpected is 0 when the provider never reported a page count.
type SearchResult struct {
	Listings      []Listing `json:"listings"`
	PagesFetched  int       `json:"pages_fetched"`
	PagesExpected int       `json:"pages_expected"`
	Complete      bool      `json:"complete"`
	StopReason    string    `json:"stop_reason,omitempty"`
}

// ProviderReport holds the per-language statistics of one provider run,
// in the order the languages were requested.
type ProviderReport struct {
	Provider   string          `json:"provider"`
	Title      string          `json:"title"`
	Languages  []LanguageStats `json:"languages"`
	Incomplete []string        `json:"incomplete,omitempty"`
}
