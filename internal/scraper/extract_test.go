package scraper

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestSalaryBound(t *testing.T) {
	tests := []struct {
		name string
		json string
		want *int
	}{
		{"integer", `{"v":120000}`, intPtr(120000)},
		{"float rounds", `{"v":99999.6}`, intPtr(100000)},
		{"numeric string", `{"v":"80000"}`, intPtr(80000)},
		{"zero is unset", `{"v":0}`, nil},
		{"negative", `{"v":-5}`, nil},
		{"null", `{"v":null}`, nil},
		{"missing", `{}`, nil},
		{"garbage string", `{"v":"по договорённости"}`, nil},
		{"bool", `{"v":true}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := salaryBound(gjson.Get(tt.json, "v"))
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("salaryBound() = %d, want nil", *got)
			case tt.want != nil && got == nil:
				t.Errorf("salaryBound() = nil, want %d", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("salaryBound() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Опыт  работы\nот 3 лет", "Опыт работы от 3 лет"},
		{"highlight", "Знание <highlighttext>Python</highlighttext> и SQL", "Знание Python и SQL"},
		{"rich text", "<p>Требования:</p><ul><li>Go</li><li>PostgreSQL</li></ul>", "Требования:GoPostgreSQL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plainText(tt.input); got != tt.want {
				t.Errorf("plainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractListingCurrencyFilter(t *testing.T) {
	item := gjson.Parse(`{
		"name": " Go developer ",
		"alternate_url": "https://hh.ru/vacancy/1",
		"snippet": {"requirement": null, "responsibility": "Писать <highlighttext>Go</highlighttext>"},
		"salary": {"from": 3000, "to": 5000, "currency": "USD"}
	}`)

	listing := extractListing(item, headHunterFields, "RUR")
	if listing.Title != "Go developer" {
		t.Errorf("Title = %q", listing.Title)
	}
	if listing.Requirement != "Писать Go" {
		t.Errorf("Requirement = %q", listing.Requirement)
	}
	if listing.Currency != "USD" {
		t.Errorf("Currency = %q", listing.Currency)
	}
	if listing.SalaryFrom != nil || listing.SalaryTo != nil {
		t.Errorf("foreign currency bounds kept: %v %v", listing.SalaryFrom, listing.SalaryTo)
	}

	listing = extractListing(item, headHunterFields, "")
	if listing.SalaryFrom == nil || *listing.SalaryFrom != 3000 {
		t.Errorf("SalaryFrom = %v, want 3000 without a currency filter", listing.SalaryFrom)
	}
}

func intPtr(v int) *int { return &v }
