// backend/src/processors/expiration.go
package processors

import (
	"sort"
	"time"

	"github.com/username/benefitpass/backend/src/logger"
	"github.com/username/benefitpass/backend/src/models"
)

// expireDateLayout is the calendar pattern every date source uses.
const expireDateLayout = "2006-01-02"

// SortDirection selects which end of the candidate ordering wins.
type SortDirection int

const (
	// Ascending surfaces the soonest date, i.e. the earliest constraint
	// across all applicable sources. This is what the eligibility path uses.
	Ascending SortDirection = iota
	// Descending surfaces the latest date.
	Descending
)

// NormalizeExpireDate converts one raw date source into a candidate.
// An empty date is not an error, it means "no candidate from this source".
// A date that does not match the calendar pattern is treated the same way
// after a warning; it must never crash resolution.
func NormalizeExpireDate(date, locale string) *models.DateCandidate {
	if date == "" {
		return nil
	}
	t, err := time.Parse(expireDateLayout, date)
	if err != nil {
		logger.L.Warn("Skipping malformed expire date", "date", date, "error", err)
		return nil
	}
	return &models.DateCandidate{Unix: t.Unix(), Locale: locale}
}

// ResolveExpireDate picks the single date to surface to the holder out of a
// mixed set of candidates. Nil candidates are skipped. Candidates with equal
// timestamps keep their relative input order.
func ResolveExpireDate(candidates []*models.DateCandidate, dir SortDirection) *models.DateCandidate {
	present := make([]*models.DateCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		return nil
	}
	sort.SliceStable(present, func(i, j int) bool {
		if dir == Descending {
			return present[i].Unix > present[j].Unix
		}
		return present[i].Unix < present[j].Unix
	})
	return present[0]
}
