package models

// Role is the authorization level of a principal
type Role string

const (
	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
	RolePremium Role = "PREMIUM"
)

// User is the client's cached copy of the authenticated principal
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
	IsLocked  *bool     `json:"isLocked,omitempty"`
}

// IsAdmin reports whether the user may enter the admin section
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AuthResponse is returned by every credential exchange endpoint
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleAuthRequest struct {
	Token string `json:"token"`
}

// UserProfile is the self-service view of the account
type UserProfile struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	Role         Role      `json:"role"`
	DarkMode     *bool     `json:"darkMode,omitempty"`
	Language     string    `json:"language,omitempty"`
	ChannelCount int64     `json:"channelCount"`
	VideoCount   int64     `json:"videoCount"`
	CommentCount int64     `json:"commentCount"`
	CreatedAt    Timestamp `json:"createdAt"`
	UpdatedAt    Timestamp `json:"updatedAt"`
}

type UpdateProfileRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type UpdatePreferencesRequest struct {
	DarkMode *bool  `json:"darkMode,omitempty"`
	Language string `json:"language,omitempty"`
}
