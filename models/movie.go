package models

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// MovieID is an opaque movie identifier. The listing service may send it
// either as a JSON number or as a JSON string.
type MovieID string

func (s MovieID) String() string {
	return string(s)
}

func (s *MovieID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	switch b[0] {
	case '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = MovieID(str)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*s = MovieID(n.String())
		return nil
	}
	return errors.Errorf("wrong movie id %s", b)
}

func (s MovieID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

type Movie struct {
	ID         MovieID `json:"id"`
	PosterPath string  `json:"poster_path"`
	Title      string  `json:"title"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type MovieDetails struct {
	Movie
	Overview    string  `json:"overview"`
	Tagline     string  `json:"tagline"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
	Budget      int64   `json:"budget"`
	Revenue     int64   `json:"revenue"`
	Homepage    string  `json:"homepage"`
	Genres      []Genre `json:"genres"`
}
