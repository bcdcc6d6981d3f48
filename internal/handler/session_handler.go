package handler

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bredeby/chunkview/internal/corpus"
	"github.com/bredeby/chunkview/internal/pkg/errcode"
	"github.com/bredeby/chunkview/internal/pkg/response"
)

// SessionHandler owns the browse session: corpus, facets, filters, and
// the pagination window. The corpus is loaded lazily on first use so a
// briefly unreachable backend does not block startup.
type SessionHandler struct {
	loader        *corpus.Loader
	pageSize      int
	loadMoreDelay time.Duration

	mu      sync.Mutex
	session *corpus.Session
}

func NewSessionHandler(loader *corpus.Loader, pageSize int, loadMoreDelay time.Duration) *SessionHandler {
	return &SessionHandler{
		loader:        loader,
		pageSize:      pageSize,
		loadMoreDelay: loadMoreDelay,
	}
}

func (h *SessionHandler) ensureSession(ctx context.Context) (*corpus.Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session != nil {
		return h.session, nil
	}
	list, err := h.loader.LoadAll(ctx, h.pageSize)
	if err != nil {
		return nil, err
	}
	h.session = corpus.NewSession(list, h.loadMoreDelay)
	return h.session, nil
}

func (h *SessionHandler) Facets(c *gin.Context) {
	session, err := h.ensureSession(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, session.Facets())
}

func (h *SessionHandler) Results(c *gin.Context) {
	session, err := h.ensureSession(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	h.respondResults(c, session)
}

func (h *SessionHandler) SetFilters(c *gin.Context) {
	var input corpus.FilterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid filter state")
		return
	}
	session, err := h.ensureSession(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	session.SetFilters(input)
	h.respondResults(c, session)
}

func (h *SessionHandler) LoadMore(c *gin.Context) {
	session, err := h.ensureSession(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	session.LoadMore()
	h.respondResults(c, session)
}

// Reload drops the cached corpus and rebuilds the session from a fresh
// fetch.
func (h *SessionHandler) Reload(c *gin.Context) {
	ctx := c.Request.Context()
	h.loader.ClearCache(ctx)
	list, err := h.loader.LoadAll(ctx, h.pageSize)
	if err != nil {
		handleError(c, err)
		return
	}
	h.mu.Lock()
	if h.session == nil {
		h.session = corpus.NewSession(list, h.loadMoreDelay)
	} else {
		h.session.ReplaceCorpus(list)
	}
	session := h.session
	h.mu.Unlock()
	h.respondResults(c, session)
}

func (h *SessionHandler) respondResults(c *gin.Context, session *corpus.Session) {
	views, state, total := session.Results()
	response.Success(c, gin.H{
		"chunks": views,
		"pager":  state,
		"total":  total,
	})
}
