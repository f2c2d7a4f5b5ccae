package recommender

import (
	"math"

	"movieReco/domain"
	"movieReco/pkg/logger"
)

const (
	maxDirectorsPerMovie = 2
	maxActorsPerMovie    = 5

	// A person seen this many times across the history contributes at full
	// weight; below it the contribution is scaled down.
	personFrequencyCap = 3
)

type GenreAffinity struct {
	Name        string
	Score       float64
	Type        string // "primary" or "secondary"
	Count       int
	ConnectedTo []string
}

type PersonAffinity struct {
	Name  string
	Score float64
	Count int
}

// Analysis is the affinity profile derived from one request's liked movies.
// It is built once per request and read-only afterwards.
type Analysis struct {
	TotalMovies      int
	GenreAffinity    map[int]GenreAffinity
	DirectorAffinity map[string]PersonAffinity
	ActorAffinity    map[string]PersonAffinity
}

type genreCount struct {
	name  string
	count int
}

type secondaryCount struct {
	name        string
	count       int
	connectedTo []string
}

type personCount struct {
	name  string
	count int
}

// AnalyzeGenrePreferences derives genre affinities from the liked movies,
// counting both the genres themselves and the genres related to them.
func AnalyzeGenrePreferences(liked []domain.LikedMovie) Analysis {
	primary := make(map[int]*genreCount)
	secondary := make(map[int]*secondaryCount)

	for _, movie := range liked {
		for _, genre := range movie.Genres {
			id, name := resolveGenre(genre)
			if id == 0 {
				continue
			}

			pc, ok := primary[id]
			if !ok {
				pc = &genreCount{name: name}
				primary[id] = pc
			}
			pc.count++

			for _, relatedID := range RelatedGenres(id) {
				relatedName := GenreNameByID(relatedID)
				if relatedName == "" {
					continue
				}
				sc, ok := secondary[relatedID]
				if !ok {
					sc = &secondaryCount{name: relatedName}
					secondary[relatedID] = sc
				}
				sc.count++
				sc.connectedTo = append(sc.connectedTo, name)
			}
		}
	}

	analysis := Analysis{
		TotalMovies:   len(liked),
		GenreAffinity: genreAffinity(primary, secondary, len(liked)),
	}

	logger.Debug("genre_analysis",
		"movies", len(liked),
		"primary_genres", len(primary),
		"secondary_genres", len(secondary),
	)

	return analysis
}

// AnalyzeDetailedPreferences extends the genre analysis with director and
// actor affinities. Only the first credited directors and top-billed cast of
// each movie count, so a cameo-heavy history does not drown the profile.
func AnalyzeDetailedPreferences(liked []domain.LikedMovie) Analysis {
	primary := make(map[int]*genreCount)
	directors := make(map[string]*personCount)
	actors := make(map[string]*personCount)

	for _, movie := range liked {
		for _, genre := range movie.Genres {
			id, name := resolveGenre(genre)
			if id == 0 {
				continue
			}
			pc, ok := primary[id]
			if !ok {
				pc = &genreCount{name: name}
				primary[id] = pc
			}
			pc.count++
		}

		countPeople(directors, movie.Directors, maxDirectorsPerMovie)
		countPeople(actors, movie.Cast, maxActorsPerMovie)
	}

	analysis := Analysis{
		TotalMovies:      len(liked),
		GenreAffinity:    genreAffinity(primary, nil, len(liked)),
		DirectorAffinity: personAffinity(directors, len(liked)),
		ActorAffinity:    personAffinity(actors, len(liked)),
	}

	logger.Debug("detailed_analysis",
		"movies", len(liked),
		"genres", len(primary),
		"directors", len(directors),
		"actors", len(actors),
	)

	return analysis
}

func countPeople(counts map[string]*personCount, people []domain.Person, limit int) {
	if len(people) > limit {
		people = people[:limit]
	}
	for _, person := range people {
		if person.Name == "" {
			continue
		}
		key := person.Key()
		pc, ok := counts[key]
		if !ok {
			pc = &personCount{name: person.Name}
			counts[key] = pc
		}
		pc.count++
	}
}

// genreAffinity turns raw genre counts into scores. Primary genres score
// count/total scaled by the genre weight; secondary genres score at half
// importance with no weight multiplier. A genre appearing in both maps keeps
// the secondary entry, matching the reference behavior.
func genreAffinity(primary map[int]*genreCount, secondary map[int]*secondaryCount, totalMovies int) map[int]GenreAffinity {
	affinity := make(map[int]GenreAffinity, len(primary)+len(secondary))
	if totalMovies == 0 {
		return affinity
	}

	for id, pc := range primary {
		affinity[id] = GenreAffinity{
			Name:  pc.name,
			Score: float64(pc.count) / float64(totalMovies) * GenreWeight(id),
			Type:  "primary",
			Count: pc.count,
		}
	}

	for id, sc := range secondary {
		affinity[id] = GenreAffinity{
			Name:        sc.name,
			Score:       float64(sc.count) / float64(totalMovies*2),
			Type:        "secondary",
			Count:       sc.count,
			ConnectedTo: sc.connectedTo,
		}
	}

	return affinity
}

// personAffinity scores each person as count/total scaled by a frequency
// weight capped at personFrequencyCap occurrences, so someone seen once
// contributes less per occurrence than someone seen three or more times.
func personAffinity(counts map[string]*personCount, totalMovies int) map[string]PersonAffinity {
	affinity := make(map[string]PersonAffinity, len(counts))
	if totalMovies == 0 {
		return affinity
	}

	for key, pc := range counts {
		base := float64(pc.count) / float64(totalMovies)
		frequencyWeight := math.Min(1.0, float64(pc.count)/float64(personFrequencyCap))
		affinity[key] = PersonAffinity{
			Name:  pc.name,
			Score: base * frequencyWeight,
			Count: pc.count,
		}
	}

	return affinity
}

func resolveGenre(genre domain.Genre) (int, string) {
	if genre.ID != 0 {
		return genre.ID, genre.Name
	}
	return GenreIDByName(genre.Name), genre.Name
}

// resolveGenreIDs collects the resolvable TMDB genre ids of a movie,
// dropping entries that resolve to nothing.
func resolveGenreIDs(genres []domain.Genre) []int {
	ids := make([]int, 0, len(genres))
	for _, genre := range genres {
		if id, _ := resolveGenre(genre); id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
