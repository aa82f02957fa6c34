package salary

import "github.com/fr4nk3nst1ner/langsalary/internal/models"

// Aggregate reduces the listings found for one language to its statistics.
func Aggregate(language string, listings []models.Listing) models.LanguageStats {
	stats := models.LanguageStats{
		Language:       language,
		VacanciesFound: len(listings),
	}

	var total float64
	for _, listing := range listings {
		estimate, ok := Estimate(listing.SalaryFrom, listing.SalaryTo)
		if !ok {
			continue
		}
		total += estimate
		stats.VacanciesProcessed++
	}

	if stats.VacanciesProcessed > 0 {
		average := total / float64(stats.VacanciesProcessed)
		stats.AverageSalary = &average
	}

	return stats
}
