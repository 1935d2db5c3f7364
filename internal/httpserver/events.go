package httpserver

import (
	"io"

	"github.com/gin-gonic/gin"

	"foodcheq-companion/internal/notify"
)

// eventsHandler streams storage change notifications to the page as
// server-sent events. An empty key means "an external writer changed
// something; re-read what you render". Pages treat this exactly like the
// storage event: a wakeup, not a payload.
func eventsHandler(bus *notify.Bus) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch, cancel := bus.Subscribe(notify.Wildcard)
		defer cancel()

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Stream(func(w io.Writer) bool {
			select {
			case key, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent("change", gin.H{"key": key})
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
