package services

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/blacknews/blacknews-be/internal/models"
)

// ProfileServiceProvider defines the interface for user profile services.
// Profiles are an extension record created with the account and removed with
// it; nothing in the query surface reads the preference bags yet.
type ProfileServiceProvider interface {
	EnsureForUser(userID string) (models.UserProfile, error)
	GetByUserID(userID string) (models.UserProfile, error)
	Touch(userID string) error
	DeleteForUser(userID string) error
}

// ProfileService provides the persistent user profile collection.
type ProfileService struct {
	db *sql.DB
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *sql.DB) *ProfileService {
	return &ProfileService{db: db}
}

// EnsureForUser creates a profile row with default preferences if the user
// has none, and returns the existing one otherwise.
func (s *ProfileService) EnsureForUser(userID string) (models.UserProfile, error) {
	if p, err := s.GetByUserID(userID); err == nil {
		return p, nil
	} else if err != ErrNotFound {
		return models.UserProfile{}, err
	}

	now := time.Now().UTC()
	profile := models.UserProfile{
		ID:                      uuid.New().String(),
		UserID:                  userID,
		Interests:               []string{},
		ReadingHistory:          []models.ReadEntry{},
		SavedArticles:           []string{},
		LikedArticles:           []string{},
		NotificationPreferences: models.DefaultNotificationPreferences(),
		PrivacySettings:         models.DefaultPrivacySettings(),
		LastActive:              now,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	notifJSON, _ := json.Marshal(profile.NotificationPreferences)
	privacyJSON, _ := json.Marshal(profile.PrivacySettings)

	_, err := s.db.Exec(`INSERT INTO user_profiles
		(id, user_id, notification_prefs_json, privacy_settings_json, last_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.UserID, string(notifJSON), string(privacyJSON),
		profile.LastActive, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}

// GetByUserID retrieves the profile extension record for a user.
func (s *ProfileService) GetByUserID(userID string) (models.UserProfile, error) {
	var p models.UserProfile
	var interests, social, history, saved, liked, notif, privacy string

	row := s.db.QueryRow(`SELECT id, user_id, interests_json, social_links_json,
		reading_history_json, saved_articles_json, liked_articles_json,
		notification_prefs_json, privacy_settings_json, last_active, created_at, updated_at
		FROM user_profiles WHERE user_id = ?`, userID)
	err := row.Scan(&p.ID, &p.UserID, &interests, &social, &history, &saved, &liked,
		&notif, &privacy, &p.LastActive, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, err
	}

	_ = json.Unmarshal([]byte(interests), &p.Interests)
	_ = json.Unmarshal([]byte(social), &p.SocialLinks)
	_ = json.Unmarshal([]byte(history), &p.ReadingHistory)
	_ = json.Unmarshal([]byte(saved), &p.SavedArticles)
	_ = json.Unmarshal([]byte(liked), &p.LikedArticles)
	_ = json.Unmarshal([]byte(notif), &p.NotificationPreferences)
	_ = json.Unmarshal([]byte(privacy), &p.PrivacySettings)
	return p, nil
}

// Touch refreshes the profile's activity and update timestamps.
func (s *ProfileService) Touch(userID string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec("UPDATE user_profiles SET last_active = ?, updated_at = ? WHERE user_id = ?",
		now, now, userID)
	return err
}

// DeleteForUser removes the profile row alongside its account.
func (s *ProfileService) DeleteForUser(userID string) error {
	_, err := s.db.Exec("DELETE FROM user_profiles WHERE user_id = ?", userID)
	return err
}
