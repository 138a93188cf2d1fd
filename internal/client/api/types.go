package api

import "time"

type User struct {
	ID        string  `json:"id"`
	UserName  *string `json:"user_name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

// DisplayName is the user name when set, otherwise the email.
func (u User) DisplayName() string {
	if u.UserName != nil && *u.UserName != "" {
		return *u.UserName
	}
	return u.Email
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type Record struct {
	ID          string    `json:"id"`
	CategoryID  *string   `json:"category_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DateLogged  string    `json:"date_logged"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Stats struct {
	Total         int64 `json:"total"`
	ThisMonth     int64 `json:"this_month"`
	LastSevenDays int64 `json:"last_seven_days"`
	Categories    int64 `json:"categories"`
}
