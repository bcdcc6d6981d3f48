package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bredeby/chunkview/internal/model"
	"github.com/bredeby/chunkview/internal/pkg/errcode"
	"github.com/bredeby/chunkview/internal/pkg/response"
	"github.com/bredeby/chunkview/internal/search"
)

const (
	defaultSearchLimit = 10
	defaultRRFK        = 60
)

type SearchHandler struct {
	dispatcher *search.Dispatcher
}

func NewSearchHandler(dispatcher *search.Dispatcher) *SearchHandler {
	return &SearchHandler{dispatcher: dispatcher}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, errcode.ErrInvalid, "q required")
		return
	}
	method, opts, ok := searchParams(c)
	if !ok {
		return
	}
	limit := intQuery(c, "limit", defaultSearchLimit)
	resp, err := h.dispatcher.Search(c.Request.Context(), method, query, limit, opts)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, resp)
}

// Current serves the active result. When the request carries a query
// encoded in its parameters (a reload of a prior search), the cached
// result for that request is restored first; the dispatcher guarantees
// restoration happens at most once and never touches the network.
func (h *SearchHandler) Current(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		method, opts, ok := searchParams(c)
		if !ok {
			return
		}
		limit := intQuery(c, "limit", defaultSearchLimit)
		h.dispatcher.Restore(c.Request.Context(), method, query, limit, opts)
	}
	response.Success(c, gin.H{"result": h.dispatcher.Current()})
}

func searchParams(c *gin.Context) (model.SearchMethod, *model.HybridOptions, bool) {
	methodValue := c.DefaultQuery("method", string(model.MethodHybrid))
	method, err := model.ParseSearchMethod(methodValue)
	if err != nil {
		response.Error(c, errcode.ErrInvalid, err.Error())
		return "", nil, false
	}
	var opts *model.HybridOptions
	if method == model.MethodHybrid {
		opts = &model.HybridOptions{RRFK: intQuery(c, "rrf_k", defaultRRFK)}
	}
	return method, opts, true
}
