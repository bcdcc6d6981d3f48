package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"

	"github.com/bredeby/chunkview/internal/corpus"
	"github.com/bredeby/chunkview/internal/pkg/response"
	"github.com/bredeby/chunkview/internal/search"
)

type CacheHandler struct {
	dispatcher *search.Dispatcher
	loader     *corpus.Loader
}

func NewCacheHandler(dispatcher *search.Dispatcher, loader *corpus.Loader) *CacheHandler {
	return &CacheHandler{dispatcher: dispatcher, loader: loader}
}

// Clear drops both cache layers: the in-memory search results and the
// persisted corpus entries (aggregate plus derived per-item rows).
func (h *CacheHandler) Clear(c *gin.Context) {
	ctx := c.Request.Context()
	h.dispatcher.ClearCache()
	h.loader.ClearCache(ctx)
	logutil.GetLogger(ctx).Info("caches cleared")
	response.Success(c, gin.H{"ok": true})
}
