package recommender

import "math"

const (
	// Affinity assumed for a genre or person missing from the profile.
	defaultGenreAffinity  = 0.5
	defaultPersonAffinity = 0.3

	// Partial credit for a candidate genre that is related to, but not the
	// same as, a liked genre.
	relatedGenreCredit = 0.6

	// Weights of the three factors in the detailed score.
	genreFactorWeight    = 0.5
	directorFactorWeight = 0.3
	actorFactorWeight    = 0.2
)

// GenreSimilarity scores a candidate's genre set against a liked movie's
// genre set. Exact matches earn the full affinity, related genres earn
// partial credit, everything else contributes nothing. The sum is normalized
// by the liked genre count and clamped to [0,1].
func GenreSimilarity(userGenres, movieGenres []int, analysis Analysis) float64 {
	if len(userGenres) == 0 || len(movieGenres) == 0 {
		return 0.0
	}

	total := 0.0
	matches := 0

	for _, userGenre := range userGenres {
		affinity := defaultGenreAffinity
		if entry, ok := analysis.GenreAffinity[userGenre]; ok {
			affinity = entry.Score
		}

		for _, movieGenre := range movieGenres {
			switch {
			case userGenre == movieGenre:
				total += 1.0 * affinity
				matches++
			case genresAreRelated(userGenre, movieGenre):
				total += relatedGenreCredit * affinity
				matches++
			}
		}
	}

	if matches == 0 {
		return 0.0
	}

	return math.Min(1.0, total/math.Max(1, float64(len(userGenres))))
}

// PersonSimilarity scores shared directors or actors. Each liked person
// matches at most once: the first candidate with the same identity earns
// that person's affinity and ends the scan for them.
func PersonSimilarity(userKeys, movieKeys []string, affinity map[string]PersonAffinity) float64 {
	if len(userKeys) == 0 || len(movieKeys) == 0 {
		return 0.0
	}

	total := 0.0
	matches := 0

	for _, userKey := range userKeys {
		score := defaultPersonAffinity
		if entry, ok := affinity[userKey]; ok {
			score = entry.Score
		}

		for _, movieKey := range movieKeys {
			if userKey == movieKey {
				total += 1.0 * score
				matches++
				break
			}
		}
	}

	if matches == 0 {
		return 0.0
	}

	return math.Min(1.0, total/float64(len(userKeys)))
}

// DetailedSimilarity combines genre, director and actor similarity into one
// bounded score. Two of the three factors are usually zero for unrelated
// catalog items, which is why the detailed acceptance threshold sits lower
// relative to the plain genre one.
func DetailedSimilarity(
	userGenres []int, userDirectors, userActors []string,
	movieGenres []int, movieDirectors, movieActors []string,
	analysis Analysis,
) float64 {
	if len(userGenres) == 0 || len(movieGenres) == 0 {
		return 0.0
	}

	genreScore := GenreSimilarity(userGenres, movieGenres, analysis)
	directorScore := PersonSimilarity(userDirectors, movieDirectors, analysis.DirectorAffinity)
	actorScore := PersonSimilarity(userActors, movieActors, analysis.ActorAffinity)

	total := genreScore*genreFactorWeight +
		directorScore*directorFactorWeight +
		actorScore*actorFactorWeight

	return math.Min(1.0, total)
}
