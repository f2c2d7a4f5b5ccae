package recommender

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"movieReco/domain"
)

const maxReasonNames = 2

// ReasonGenerator builds the human-readable justification attached to each
// recommendation. The phrasing picker is injectable so tests can pin the
// template choice; the choice is cosmetic and never feeds back into scores.
type ReasonGenerator struct {
	pick func(n int) int
}

func NewReasonGenerator() *ReasonGenerator {
	return &ReasonGenerator{pick: rand.Intn}
}

func NewReasonGeneratorWithPicker(pick func(n int) int) *ReasonGenerator {
	return &ReasonGenerator{pick: pick}
}

func (r *ReasonGenerator) choose(templates []string) string {
	return templates[r.pick(len(templates))]
}

// GenreReason explains a plain genre-tier recommendation: shared genres
// first, then related genres, then a generic nod to the source title.
func (r *ReasonGenerator) GenreReason(userGenres, movieGenres []int, originalTitle string) string {
	userNames := genreNameSet(userGenres)
	movieNames := genreNameSet(movieGenres)

	common := intersectNames(userNames, movieNames)
	if len(common) > 0 {
		genreList := strings.Join(common, ", ")
		return r.choose([]string{
			fmt.Sprintf("Shared genres with %s: %s", originalTitle, genreList),
			fmt.Sprintf("You like %s in %s", genreList, originalTitle),
			fmt.Sprintf("Common genres: %s", genreList),
			fmt.Sprintf("Matches your %s preference from %s", genreList, originalTitle),
			fmt.Sprintf("Both feature %s", genreList),
		})
	}

	related := relatedNamesInMovie(userGenres, movieNames)
	if len(related) > 0 {
		relatedList := strings.Join(related, ", ")
		return r.choose([]string{
			fmt.Sprintf("Related to %s's genres: %s", originalTitle, relatedList),
			fmt.Sprintf("Genres that complement %s: %s", originalTitle, relatedList),
			fmt.Sprintf("If you like %s, try these related genres: %s", originalTitle, relatedList),
			fmt.Sprintf("Expanding from %s to %s", originalTitle, relatedList),
		})
	}

	return r.choose([]string{
		fmt.Sprintf("Similar style to %s", originalTitle),
		fmt.Sprintf("Recommended because you liked %s", originalTitle),
		fmt.Sprintf("Based on your interest in %s", originalTitle),
		fmt.Sprintf("Films like %s", originalTitle),
		fmt.Sprintf("Inspired by your taste for %s", originalTitle),
		fmt.Sprintf("Curated based on %s", originalTitle),
		fmt.Sprintf("AI recommendation from %s", originalTitle),
		fmt.Sprintf("Content similar to %s", originalTitle),
	})
}

// DetailedReason explains an enhanced-tier recommendation by priority:
// shared directors, shared actors, shared genres, then a generic fallback.
// At most two applicable pieces are joined.
func (r *ReasonGenerator) DetailedReason(liked domain.LikedMovie, candidate domain.Candidate, userGenres, movieGenres []int) string {
	var reasons []string

	commonDirectors := commonPersonNames(liked.Directors, candidate.Directors, 0)
	if len(commonDirectors) > 0 {
		reasons = append(reasons, "Same director: "+strings.Join(limitNames(commonDirectors, maxReasonNames), ", "))
	}

	commonActors := commonPersonNames(liked.Cast, candidate.Cast, 3)
	if len(commonActors) > 0 {
		reasons = append(reasons, "Same actors: "+strings.Join(limitNames(commonActors, maxReasonNames), ", "))
	}

	if len(reasons) == 0 {
		common := intersectNames(genreNameSet(userGenres), genreNameSet(movieGenres))
		if len(common) > 0 {
			reasons = append(reasons, "Shared genres: "+strings.Join(limitNames(common, maxReasonNames), ", "))
		}
	}

	if len(reasons) == 0 {
		return fmt.Sprintf("Similar style to %s", liked.Title)
	}

	if len(reasons) > maxReasonNames {
		reasons = reasons[:maxReasonNames]
	}
	return strings.Join(reasons, " | ")
}

func genreNameSet(ids []int) map[string]struct{} {
	names := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if name := GenreNameByID(id); name != "" {
			names[name] = struct{}{}
		}
	}
	return names
}

// intersectNames returns the sorted intersection of two name sets. Sorting
// keeps the wording stable for a given pair of movies.
func intersectNames(a, b map[string]struct{}) []string {
	var common []string
	for name := range a {
		if _, ok := b[name]; ok {
			common = append(common, name)
		}
	}
	sort.Strings(common)
	return common
}

func relatedNamesInMovie(userGenres []int, movieNames map[string]struct{}) []string {
	seen := make(map[string]struct{})
	var related []string
	for _, userGenre := range userGenres {
		for _, relatedID := range RelatedGenres(userGenre) {
			name := GenreNameByID(relatedID)
			if name == "" {
				continue
			}
			if _, ok := movieNames[name]; !ok {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			related = append(related, name)
		}
	}
	sort.Strings(related)
	return related
}

func commonPersonNames(liked, candidate []domain.Person, limit int) []string {
	if limit > 0 && len(liked) > limit {
		liked = liked[:limit]
	}
	if limit > 0 && len(candidate) > limit {
		candidate = candidate[:limit]
	}

	candidateNames := make(map[string]struct{}, len(candidate))
	for _, person := range candidate {
		if person.Name != "" {
			candidateNames[person.Name] = struct{}{}
		}
	}

	likedNames := make(map[string]struct{}, len(liked))
	for _, person := range liked {
		if person.Name != "" {
			likedNames[person.Name] = struct{}{}
		}
	}

	return intersectNames(likedNames, candidateNames)
}

func limitNames(names []string, limit int) []string {
	if len(names) > limit {
		return names[:limit]
	}
	return names
}
