package rest

import (
	"time"

	"github.com/dmitrijs2005/lifelog/internal/server/models"
)

type signupRequest struct {
	Email    string `json:"email"`
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type signupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID       string  `json:"id"`
	UserName *string `json:"user_name"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// profileJSON is the only user shape that carries the email. No user shape
// has a password field.
type profileJSON struct {
	ID        string  `json:"id"`
	UserName  *string `json:"user_name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

type meResponse struct {
	User profileJSON `json:"user"`
}

type profileResponse struct {
	Message string      `json:"message"`
	User    profileJSON `json:"user"`
}

type categoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type categoryJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type categoryResponse struct {
	Category categoryJSON `json:"category"`
}

type categoriesResponse struct {
	Categories []categoryJSON `json:"categories"`
}

type recordRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DateLogged  string `json:"date_logged"`
	CategoryID  string `json:"category_id"`
}

type recordJSON struct {
	ID          string    `json:"id"`
	CategoryID  *string   `json:"category_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DateLogged  string    `json:"date_logged"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type recordCreatedResponse struct {
	Message  string  `json:"message"`
	RecordID string  `json:"recordId"`
	ImageURL *string `json:"imageUrl"`
}

type recordResponse struct {
	Message string     `json:"message,omitempty"`
	Record  recordJSON `json:"record"`
}

type statsJSON struct {
	Total         int64 `json:"total"`
	ThisMonth     int64 `json:"this_month"`
	LastSevenDays int64 `json:"last_seven_days"`
	Categories    int64 `json:"categories"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toProfile(p *models.UserProfile) profileJSON {
	return profileJSON{ID: p.ID, UserName: optional(p.UserName), Email: p.Email, AvatarURL: p.AvatarURL}
}

func toCategory(c *models.Category) categoryJSON {
	return categoryJSON{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func toRecord(r *models.Record) recordJSON {
	return recordJSON{
		ID:          r.ID,
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Description: r.Description,
		DateLogged:  r.DateLogged.Format(models.DateLayout),
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
	}
}
