package redisrepo

import "fmt"

const (
	POST_KEY = "post:%s" // <postID>
	USER_KEY = "user:%s" // <userID>
)

func PostKey(postID string) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func UserKey(userID string) string {
	return fmt.Sprintf(USER_KEY, userID)
}
