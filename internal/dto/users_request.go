package dto

type CreateUserDto struct {
	Username      string                 `json:"username"`
	Email         string                 `json:"email"`
	Password      string                 `json:"password"`
	CurrentStreak int                    `json:"current_streak"`
	LongestStreak int                    `json:"longest_streak"`
	Profile       map[string]interface{} `json:"profile"`
}
