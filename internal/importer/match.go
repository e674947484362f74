package importer

import (
	"regexp"
	"strings"

	"github.com/pledgebook/backend/internal/models"
)

// Honorifics and relationship prefixes that people add or drop between
// one list and the next. "mr" before "mrs" is fine, the regexp engine
// backtracks on the required whitespace.
var reHonorific = regexp.MustCompile(`(?i)^(mr|mrs|dr|prof|counsel|uncle|family of|family)\s+`)

// normalizeName lowercases and trims a contributor name for comparison.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// stripHonorific removes a leading honorific token from an already
// normalized name.
func stripHonorific(name string) string {
	return reHonorific.ReplaceAllString(name, "")
}

// matchPledge finds the existing pledge a candidate name refers to, or
// nil if the candidate is a new contributor.
//
// Rules are tried in order, the first hit wins:
//
//  1. exact equality after normalization
//  2. substring containment in either direction
//  3. equality or containment after stripping a leading honorific
//     from both names
//
// The matching is deliberately permissive: bulk lists are re-pasted
// with name variations all the time, and a duplicate pledge is worse
// for the treasurer than a merged one.
func matchPledge(name string, existing []models.Pledge) *models.Pledge {
	candidate := normalizeName(name)

	for i := range existing {
		pledge := normalizeName(existing[i].ContributorName)

		if pledge == candidate {
			return &existing[i]
		}

		if strings.Contains(pledge, candidate) || strings.Contains(candidate, pledge) {
			return &existing[i]
		}

		candidateStripped := stripHonorific(candidate)
		pledgeStripped := stripHonorific(pledge)

		if candidateStripped == pledgeStripped {
			return &existing[i]
		}

		if strings.Contains(pledge, candidateStripped) || strings.Contains(candidate, pledgeStripped) {
			return &existing[i]
		}
	}

	return nil
}
