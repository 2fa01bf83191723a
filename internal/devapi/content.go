package devapi

import "sync"

type Review struct {
	ID           string `json:"_id"`
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
	ID       string `json:"_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type VideoReel struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"videoUrl"`
	Category    string `json:"category"`
}

// Content holds the dashboard listings.
type Content struct {
	mu                  sync.RWMutex
	reviewsWithVideo    []Review
	reviewsWithoutVideo []Review
	faqs                []FAQ
	reels               []VideoReel
}

// NewContent returns a store with a small showcase seed.
func NewContent() *Content {
	return &Content{
		reviewsWithVideo: []Review{
			{ID: "rv1", Name: "Maya Chen", Position: "Founder, Loopcast", VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		},
		reviewsWithoutVideo: []Review{
			{ID: "rt1", Name: "Tom Ortega", Quote: "Retention doubled in two months.", Views: "1.2M", Subscribers: "85K", Joined: "2021", Results: "+110% watch time"},
			{ID: "rt2", Name: "Priya Nair", Quote: "Every edit landed on time.", Subscribers: "40K"},
		},
		faqs: []FAQ{
			{ID: "f1", Question: "How long does an edit take?", Answer: "Most videos ship within five working days."},
			{ID: "f2", Question: "Do you write scripts?", Answer: "Yes, scripting is part of the SaaS and VSL packages."},
		},
		reels: []VideoReel{
			{ID: "v1", Title: "Channel trailer", VideoURL: "https://youtu.be/aaaaaaaaaaa", Category: "youtube"},
			{ID: "v2", Title: "Product launch", VideoURL: "https://youtu.be/bbbbbbbbbbb", Category: "youtube"},
			{ID: "v3", Title: "Hook test", VideoURL: "https://youtube.com/shorts/ccccccccccc", Category: "shorts"},
			{ID: "v4", Title: "Who we are", VideoURL: "https://youtu.be/ddddddddddd", Category: "introduction"},
		},
	}
}

func (c *Content) ReviewsWithVideo() []Review {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Review(nil), c.reviewsWithVideo...)
}

func (c *Content) ReviewsWithoutVideo() []Review {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Review(nil), c.reviewsWithoutVideo...)
}

func (c *Content) FAQs() []FAQ {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]FAQ(nil), c.faqs...)
}

// Reels returns the reels filed under category; never nil.
func (c *Content) Reels(category string) []VideoReel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []VideoReel{}
	for _, r := range c.reels {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// AddReel appends a reel. Tests use it to fill categories.
func (c *Content) AddReel(r VideoReel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reels = append(c.reels, r)
}
