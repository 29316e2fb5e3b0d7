package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
)

// BindDocument decodes the JSON body as a free-form document. It writes a
// 400 and returns false when the body is not a JSON object.
func BindDocument(c *gin.Context) (store.Document, bool) {
	var doc store.Document
	if err := c.ShouldBindJSON(&doc); err != nil || doc == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, false
	}
	return doc, true
}

// ServerError logs err against the request id and writes a generic 500.
func ServerError(c *gin.Context, op string, err error) {
	log.Printf("[api] id=%s %s %s: %s failed: %v", c.GetString("request_id"), c.Request.Method, c.Request.URL.Path, op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
}

// BadRequest writes a 400 with msg.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
