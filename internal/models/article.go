package models

import "time"

// Categories is the fixed set of article categories accepted by the API.
var Categories = []string{
	"politics", "culture", "health", "education",
	"economy", "justice", "sports", "entertainment",
}

// ValidCategory reports whether c is one of the known article categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Article represents a published or draft news article.
type Article struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	Author        string    `json:"author"` // display name, not a user reference
	FeaturedImage string    `json:"featuredImage"`
	Tags          []string  `json:"tags"`
	Views         int       `json:"views"`
	ReadTime      int       `json:"readTime"` // minutes
	IsFeatured    bool      `json:"isFeatured"`
	IsPublished   bool      `json:"isPublished"`
	PublishedAt   time.Time `json:"publishedAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ArticleFilter narrows article listings. Nil fields are ignored.
type ArticleFilter struct {
	Category   string
	IsFeatured *bool
	Limit      int
	Skip       int
}
