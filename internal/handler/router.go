package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Search  *SearchHandler
	Chunks  *ChunkHandler
	Session *SessionHandler
	Cache   *CacheHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/search", deps.Search.Search)
	api.GET("/search/current", deps.Search.Current)

	api.GET("/chunks", deps.Chunks.List)
	api.GET("/chunks/:id", deps.Chunks.Get)
	api.GET("/chunks/:id/related", deps.Chunks.Related)

	api.GET("/facets", deps.Session.Facets)
	api.GET("/session/results", deps.Session.Results)
	api.POST("/session/filters", deps.Session.SetFilters)
	api.POST("/session/more", deps.Session.LoadMore)
	api.POST("/session/reload", deps.Session.Reload)

	api.DELETE("/cache", deps.Cache.Clear)
}
