package consoletest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/consoleapi/apiv0"
)

func (s *Server) registerDocs(g *gin.RouterGroup) {
	g.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.listDocuments())
	})

	g.GET("/:path", func(c *gin.Context) {
		doc, ok := s.store.document(c.Param("path"))
		if !ok {
			apiError(c, http.StatusNotFound, "not found")
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	// The sub-resource is either "versions" or a tag name.
	g.GET("/:path/:sub", func(c *gin.Context) {
		path, sub := c.Param("path"), c.Param("sub")
		if sub == "versions" {
			versions, ok := s.store.documentVersions(path)
			if !ok {
				apiError(c, http.StatusNotFound, "not found")
				return
			}
			c.JSON(http.StatusOK, versions)
			return
		}

		doc, ok := s.store.document(path)
		if !ok {
			apiError(c, http.StatusNotFound, "not found")
			return
		}
		for _, tag := range doc.Metadata.Tags {
			if len(tag) > 0 && tag[0] == sub {
				c.JSON(http.StatusOK, append([]string{}, tag[1:]...))
				return
			}
		}
		apiError(c, http.StatusNotFound, "tag not found")
	})

	g.POST("/:path", func(c *gin.Context) {
		id, err := uuid.Parse(c.Query("id"))
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid id: "+err.Error())
			return
		}
		date, err := time.Parse(time.RFC3339Nano, c.Query("date"))
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date: "+err.Error())
			return
		}
		var req apiv0.NewDocument
		if err := c.ShouldBindJSON(&req); err != nil {
			apiError(c, http.StatusBadRequest, "invalid body: "+err.Error())
			return
		}

		doc, err := s.store.updateDocument(c.Param("path"), id, date, req.Content)
		switch {
		case errors.Is(err, errNotFound):
			apiError(c, http.StatusNotFound, "not found")
		case errors.Is(err, errConflict):
			apiError(c, http.StatusConflict, err.Error())
		case err != nil:
			apiError(c, http.StatusInternalServerError, err.Error())
		default:
			c.JSON(http.StatusOK, doc)
		}
	})
}

func (s *Server) registerUsers(g *gin.RouterGroup) {
	g.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.Users())
	})

	g.POST("/", func(c *gin.Context) {
		var users []apiv0.User
		if err := c.ShouldBindJSON(&users); err != nil {
			apiError(c, http.StatusBadRequest, "invalid body: "+err.Error())
			return
		}
		s.store.addUsers(users)
		c.Status(http.StatusOK)
	})
}
