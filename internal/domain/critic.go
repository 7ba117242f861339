package domain

type CriticStatus string

const (
	CriticStatusNone     CriticStatus = ""
	CriticStatusFullTime CriticStatus = "full-time"
	CriticStatusPartTime CriticStatus = "part-time"
)

type Critic struct {
	DisplayName string            `json:"display_name"`
	SortName    string            `json:"sort_name"`
	Status      CriticStatus      `json:"status"`
	Bio         string            `json:"bio"`
	SEOName     string            `json:"seo_name"`
	Multimedia  *CriticMultimedia `json:"multimedia,omitempty"`
}

type CriticMultimedia struct {
	Resource *Resource `json:"resource,omitempty"`
}

type Resource struct {
	Type   string `json:"type"`
	Src    string `json:"src"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
	Credit string `json:"credit"`
}
