package scraper

import (
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/tidwall/gjson"
)

// fieldPaths maps a provider's vacancy JSON onto a Listing. Requirement
// holds candidate paths tried in order.
type fieldPaths struct {
	Title       string
	Requirement []string
	URL         string
	From        string
	To          string
	Currency    string
}

// extractListings converts every vacancy in items. When currency is set,
// salaries quoted in any other currency are dropped so they do not skew
// the average; the vacancy itself is still counted.
func extractListings(items []gjson.Result, paths fieldPaths, currency string) []models.Listing {
	listings := make([]models.Listing, 0, len(items))
	for _, item := range items {
		listings = append(listings, extractListing(item, paths, currency))
	}
	return listings
}

func extractListing(item gjson.Result, paths fieldPaths, currency string) models.Listing {
	listing := models.Listing{
		Title:    strings.TrimSpace(item.Get(paths.Title).String()),
		URL:      item.Get(paths.URL).String(),
		Currency: item.Get(paths.Currency).String(),
	}

	for _, path := range paths.Requirement {
		if text := plainText(item.Get(path).String()); text != "" {
			listing.Requirement = text
			break
		}
	}

	if currency != "" && !strings.EqualFold(listing.Currency, currency) {
		return listing
	}

	listing.SalaryFrom = salaryBound(item.Get(paths.From))
	listing.SalaryTo = salaryBound(item.Get(paths.To))
	return listing
}

// salaryBound reads one end of a salary range. Missing, null, non-numeric
// and non-positive values are all unknown; SuperJob sends 0 for "not set".
func salaryBound(v gjson.Result) *int {
	var n int
	switch v.Type {
	case gjson.Number:
		n = int(math.Round(v.Float()))
	case gjson.String:
		parsed, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	if n <= 0 {
		return nil
	}
	return &n
}

// plainText strips markup such as HeadHunter's <highlighttext> tags and
// collapses whitespace.
func plainText(s string) string {
	if s == "" {
		return ""
	}
	if strings.Contains(s, "<") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
