package api

import (
	"net/http" // HTTP status codes
	"strings"  // Name formatting

	"trading_dashboard/internal/utils" // Flash helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client (flash store)
)

// Mailer delivers transactional email. A failed send is surfaced to the
// user as a flash message and never rolls back a committed database write.
type Mailer interface {
	SendText(to, subject, body string) error
	SendHTML(to, subject, html string) error
}

// render executes a page template, attaching any queued flash messages.
func render(c *gin.Context, rdb *redis.Client, name string, data gin.H) {
	data["flashes"] = utils.PopFlashes(c.Request.Context(), rdb, c)
	c.HTML(http.StatusOK, name, data)
}

// flashAndRedirect queues a flash message and redirects.
func flashAndRedirect(c *gin.Context, rdb *redis.Client, kind, message, location string) {
	_ = utils.SetFlash(c.Request.Context(), rdb, c, kind, message)
	c.Redirect(http.StatusFound, location)
}

// displayName returns the user's capitalized first name for page headers.
func displayName(name string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	if first == "" {
		return ""
	}
	return strings.ToUpper(first[:1]) + first[1:]
}
