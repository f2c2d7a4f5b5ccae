package domain

import (
	"encoding/json"
	"strconv"
)

// Genre entries arrive either as {"id": 28, "name": "Action"} objects or as
// bare name strings, depending on which upstream collection the liked movie
// came from. A bare name leaves ID at 0 and is resolved later through the
// genre table.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (g *Genre) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		g.ID = 0
		g.Name = name
		return nil
	}

	var obj struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	g.ID = obj.ID
	g.Name = obj.Name
	return nil
}

// Person covers directors and cast members. TMDB credits carry numeric ids;
// hand-entered history may carry only a name.
type Person struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (p *Person) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		p.ID = 0
		p.Name = name
		return nil
	}

	var obj struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.ID = obj.ID
	p.Name = obj.Name
	return nil
}

// Key returns the identity used for affinity aggregation and matching.
// People without a TMDB id are keyed by name, so repeated occurrences of the
// same name still accumulate under one entry.
func (p Person) Key() string {
	if p.ID != 0 {
		return strconv.Itoa(p.ID)
	}
	return p.Name
}

type LikedMovie struct {
	MovieID   int      `json:"movieId"`
	Title     string   `json:"title"`
	Genres    []Genre  `json:"genres"`
	Directors []Person `json:"directors,omitempty"`
	Cast      []Person `json:"cast,omitempty"`
}

// Candidate is a movie fetched fresh from the catalog per request. The json
// tags match the TMDB discover payload so results decode directly; Directors
// and Cast are filled in by the per-movie credits lookup when detailed
// enrichment is requested.
type Candidate struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	GenreIDs    []int    `json:"genre_ids"`
	Genres      []Genre  `json:"genres,omitempty"`
	PosterPath  *string  `json:"poster_path"`
	VoteAverage float64  `json:"vote_average"`
	ReleaseDate string   `json:"release_date"`
	Overview    string   `json:"overview"`
	Directors   []Person `json:"directors,omitempty"`
	Cast        []Person `json:"cast,omitempty"`
}

type Recommendation struct {
	MovieID     int      `json:"movie_id"`
	Title       string   `json:"title"`
	Score       float64  `json:"score"`
	Source      string   `json:"source"`
	Reason      string   `json:"reason"`
	PosterPath  *string  `json:"poster_path"`
	VoteAverage float64  `json:"vote_average"`
	ReleaseDate string   `json:"release_date"`
	Overview    string   `json:"overview,omitempty"`
	GenreIDs    []int    `json:"genre_ids,omitempty"`
	Directors   []string `json:"directors,omitempty"`
	Actors      []string `json:"actors,omitempty"`
}
