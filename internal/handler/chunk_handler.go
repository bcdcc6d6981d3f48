package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/bredeby/chunkview/internal/corpus"
	"github.com/bredeby/chunkview/internal/model"
	"github.com/bredeby/chunkview/internal/pkg/response"
)

const defaultChunkPageSize = 50

type ChunkHandler struct {
	loader *corpus.Loader
}

func NewChunkHandler(loader *corpus.Loader) *ChunkHandler {
	return &ChunkHandler{loader: loader}
}

func (h *ChunkHandler) List(c *gin.Context) {
	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", defaultChunkPageSize)
	list, err := h.loader.Load(c.Request.Context(), skip, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, list)
}

func (h *ChunkHandler) Get(c *gin.Context) {
	chunk, err := h.loader.GetChunk(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, chunk)
}

// Related resolves a chunk's navigation links: its related chunks and
// its successor. Links that no longer resolve are skipped, not errors;
// the corpus export is allowed to dangle.
func (h *ChunkHandler) Related(c *gin.Context) {
	ctx := c.Request.Context()
	chunk, err := h.loader.GetChunk(ctx, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	related := make([]*model.Chunk, 0, len(chunk.RelatedChunks))
	for _, id := range chunk.RelatedChunks {
		linked, err := h.loader.GetChunk(ctx, id)
		if err != nil {
			logutil.GetLogger(ctx).Warn("related chunk unresolved", zap.String("id", id), zap.Error(err))
			continue
		}
		related = append(related, linked)
	}
	var next *model.Chunk
	if chunk.NextChunkID != "" {
		if linked, err := h.loader.GetChunk(ctx, chunk.NextChunkID); err == nil {
			next = linked
		}
	}
	response.Success(c, gin.H{"related": related, "next": next})
}
