package models

import "fmt"

type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// URL returns a watch link for the video or an empty string
// for hosting sites we do not know how to link to.
func (s Video) URL() string {
	if s.Key == "" {
		return ""
	}
	switch s.Site {
	case "YouTube":
		return fmt.Sprintf("https://www.youtube.com/watch?v=%v", s.Key)
	case "Vimeo":
		return fmt.Sprintf("https://vimeo.com/%v", s.Key)
	}
	return ""
}
