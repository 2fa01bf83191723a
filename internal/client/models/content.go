package models

// Review is a client testimonial. Video reviews carry a video URL, text
// reviews carry the channel statistics shown next to the quote.
type Review struct {
	ID           string `json:"_id,omitempty"`
	Name         string `json:"name"`
	Position     string `json:"position,omitempty"`
	Quote        string `json:"quote,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	VideoURL     string `json:"videoUrl,omitempty"`
	Views        string `json:"views,omitempty"`
	Subscribers  string `json:"subscribers,omitempty"`
	Joined       string `json:"joined,omitempty"`
	Results      string `json:"results,omitempty"`
}

type FAQ struct {
	ID       string `json:"_id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// VideoReel is a showcased video embedded from YouTube.
type VideoReel struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"videoUrl"`
	Category    string `json:"category"`
}

// VideoCategory is a showcase slot with a fixed number of reels.
type VideoCategory struct {
	Value string
	Label string
	Limit int
}

// VideoCategories lists the showcase slots in display order.
var VideoCategories = []VideoCategory{
	{Value: "youtube", Label: "YouTube Videos", Limit: 4},
	{Value: "shorts", Label: "Shorts", Limit: 3},
	{Value: "saas", Label: "SaaS Videos", Limit: 4},
	{Value: "ads-vsl", Label: "Ads & VSL", Limit: 4},
	{Value: "introduction", Label: "Introduction", Limit: 1},
	{Value: "case-study", Label: "Case Study", Limit: 1},
}

// LookupCategory finds a category by its value.
func LookupCategory(value string) (VideoCategory, bool) {
	for _, c := range VideoCategories {
		if c.Value == value {
			return c, true
		}
	}
	return VideoCategory{}, false
}
