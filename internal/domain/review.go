package domain

import (
	"strings"
	"time"
)

// PublicationLayout is the layout of Review.PublicationDate.
const PublicationLayout = "2006-01-02"

type Review struct {
	DisplayTitle    string      `json:"display_title"`
	MPAARating      string      `json:"mpaa_rating"`
	CriticsPick     int         `json:"critics_pick"`
	Byline          string      `json:"byline"`
	Headline        string      `json:"headline"`
	SummaryShort    string      `json:"summary_short"`
	PublicationDate string      `json:"publication_date"`
	OpeningDate     *string     `json:"opening_date"`
	DateUpdated     string      `json:"date_updated"`
	Link            *Link       `json:"link,omitempty"`
	Multimedia      *Multimedia `json:"multimedia,omitempty"`
}

type Link struct {
	Type              string `json:"type"`
	URL               string `json:"url"`
	SuggestedLinkText string `json:"suggested_link_text"`
}

type Multimedia struct {
	Type   string `json:"type"`
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// PublishedOn parses PublicationDate. ok is false when the date is missing or malformed.
func (r Review) PublishedOn() (t time.Time, ok bool) {
	s := strings.TrimSpace(r.PublicationDate)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(PublicationLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (r Review) IsCriticsPick() bool { return r.CriticsPick != 0 }
