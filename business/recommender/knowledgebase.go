package recommender

// GenreRelation describes how one TMDB genre relates to others. Weight is the
// relative importance used multiplicatively in affinity scoring and must stay
// above zero, otherwise the genre drops out of scoring entirely.
type GenreRelation struct {
	Name    string
	Related []int
	Weight  float64
}

// genreRelations covers the genres the scoring model has tuned relationships
// for. Genres outside this table still score through the default weight.
var genreRelations = map[int]GenreRelation{
	28:    {Name: "Action", Related: []int{12, 878, 53, 10752}, Weight: 1.0},
	12:    {Name: "Adventure", Related: []int{28, 14, 10751}, Weight: 0.9},
	878:   {Name: "Science Fiction", Related: []int{28, 12, 9648}, Weight: 0.8},
	18:    {Name: "Drama", Related: []int{10749, 10402, 36}, Weight: 0.7},
	35:    {Name: "Comedy", Related: []int{10749, 10751, 10402}, Weight: 0.8},
	10749: {Name: "Romance", Related: []int{35, 18, 10751}, Weight: 0.7},
	53:    {Name: "Thriller", Related: []int{28, 80, 9648}, Weight: 0.8},
	14:    {Name: "Fantasy", Related: []int{12, 10751, 878}, Weight: 0.7},
	27:    {Name: "Horror", Related: []int{53, 9648, 14}, Weight: 0.6},
}

var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

var genreIDs = map[string]int{
	"Action":          28,
	"Adventure":       12,
	"Animation":       16,
	"Comedy":          35,
	"Crime":           80,
	"Documentary":     99,
	"Drama":           18,
	"Family":          10751,
	"Fantasy":         14,
	"History":         36,
	"Horror":          27,
	"Music":           10402,
	"Mystery":         9648,
	"Romance":         10749,
	"Science Fiction": 878,
	"TV Movie":        10770,
	"Thriller":        53,
	"War":             10752,
	"Western":         37,
}

const defaultGenreWeight = 0.5

// RelatedGenres returns the ids related to the given genre, or nil when the
// genre has no tuned relationships.
func RelatedGenres(id int) []int {
	return genreRelations[id].Related
}

// GenreWeight returns the importance weight for a genre, falling back to a
// neutral default for genres outside the relationship table.
func GenreWeight(id int) float64 {
	if rel, ok := genreRelations[id]; ok {
		return rel.Weight
	}
	return defaultGenreWeight
}

// GenreNameByID returns the display name for a TMDB genre id, or "" when
// unknown.
func GenreNameByID(id int) string {
	return genreNames[id]
}

// GenreIDByName resolves a display name to its TMDB id, or 0 when unknown.
// Matching is exact and case sensitive.
func GenreIDByName(name string) int {
	return genreIDs[name]
}

func genresAreRelated(userGenre, movieGenre int) bool {
	for _, id := range genreRelations[userGenre].Related {
		if id == movieGenre {
			return true
		}
	}
	return false
}
