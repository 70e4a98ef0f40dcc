package models

import "time"

// SocialLinks holds a user's optional social media handles.
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// ReadEntry records one article visit in a profile's reading history.
type ReadEntry struct {
	ArticleID string    `json:"articleId"`
	ReadAt    time.Time `json:"readAt"`
}

// EmailNotifications toggles per-category email delivery.
type EmailNotifications struct {
	NewArticles bool `json:"newArticles"`
	Comments    bool `json:"comments"`
	Replies     bool `json:"replies"`
	Newsletter  bool `json:"newsletter"`
}

// PushNotifications toggles per-category push delivery.
type PushNotifications struct {
	NewArticles bool `json:"newArticles"`
	Comments    bool `json:"comments"`
}

// NotificationPreferences groups all delivery toggles.
type NotificationPreferences struct {
	Email EmailNotifications `json:"email"`
	Push  PushNotifications  `json:"push"`
}

// PrivacySettings controls what a profile exposes to other readers.
type PrivacySettings struct {
	ProfileVisibility string `json:"profileVisibility"` // public, private, friends
	ShowEmail         bool   `json:"showEmail"`
	ShowLocation      bool   `json:"showLocation"`
}

// UserProfile is a 1:1 extension record for a user. It is created alongside
// the account and removed with it; no query or mutation currently reads the
// preference bags.
type UserProfile struct {
	ID                      string                  `json:"id"`
	UserID                  string                  `json:"userId"`
	Interests               []string                `json:"interests"`
	SocialLinks             SocialLinks             `json:"socialLinks"`
	ReadingHistory          []ReadEntry             `json:"readingHistory"`
	SavedArticles           []string                `json:"savedArticles"`
	LikedArticles           []string                `json:"likedArticles"`
	NotificationPreferences NotificationPreferences `json:"notificationPreferences"`
	PrivacySettings         PrivacySettings         `json:"privacySettings"`
	LastActive              time.Time               `json:"lastActive"`
	CreatedAt               time.Time               `json:"createdAt"`
	UpdatedAt               time.Time               `json:"updatedAt"`
}

// DefaultNotificationPreferences mirrors the defaults applied to new profiles.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		Email: EmailNotifications{NewArticles: true, Comments: true, Replies: true, Newsletter: true},
		Push:  PushNotifications{NewArticles: false, Comments: true},
	}
}

// DefaultPrivacySettings mirrors the defaults applied to new profiles.
func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{ProfileVisibility: "public", ShowEmail: false, ShowLocation: true}
}
