package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"offline_sync/internal/domain"
)

type HealthResponse struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Checks map[string]string `json:"checks"`
}

// GET /health
func (s *Server) health(c *gin.Context) {
	checks := map[string]string{"database": "ok"}
	status := "healthy"

	if err := s.deps.DB.PingContext(c.Request.Context()); err != nil {
		checks["database"] = "error: " + err.Error()
		status = "unhealthy"
	}

	switch ns := s.deps.Network.State(); {
	case ns.IsLoading:
		checks["network"] = "unknown"
	case ns.IsOffline:
		checks["network"] = "offline"
	default:
		checks["network"] = "online"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, HealthResponse{
		Status: status,
		Time:   time.Now().Format(time.RFC3339),
		Checks: checks,
	})
}

type StatusResponse struct {
	Phase          domain.SyncPhase `json:"phase"`
	IsOffline      bool             `json:"is_offline"`
	IsLoading      bool             `json:"is_loading"`
	PendingActions int              `json:"pending_actions"`
	LastSync       *LastSync        `json:"last_sync,omitempty"`
}

type LastSync struct {
	Trigger       domain.Trigger `json:"trigger"`
	Replayed      int            `json:"replayed"`
	Failed        int            `json:"failed"`
	Refreshed     int            `json:"refreshed"`
	RefreshErrors int            `json:"refresh_errors"`
	DurationMs    int64          `json:"duration_ms"`
}

// GET /status
func (s *Server) status(c *gin.Context) {
	pending, err := s.deps.Sync.PendingCount(c.Request.Context())
	if err != nil {
		s.respondError(c, err, "count pending actions")
		return
	}

	ns := s.deps.Network.State()
	resp := StatusResponse{
		Phase:          s.deps.Sync.Phase(),
		IsOffline:      ns.IsOffline,
		IsLoading:      ns.IsLoading,
		PendingActions: pending,
	}
	if r := s.deps.Sync.LastResult(); r != nil {
		resp.LastSync = &LastSync{
			Trigger:       r.Trigger,
			Replayed:      r.Success,
			Failed:        r.Failed,
			Refreshed:     r.Refreshed,
			RefreshErrors: r.RefreshErrors,
			DurationMs:    r.Duration.Milliseconds(),
		}
	}
	c.JSON(http.StatusOK, resp)
}

// POST /sync requests a manual sync. The run itself is asynchronous.
func (s *Server) triggerSync(c *gin.Context) {
	s.deps.Trigger.TriggerNow()
	c.JSON(http.StatusAccepted, gin.H{"message": "sync requested"})
}

type networkRequest struct {
	Online *bool `json:"online"`
}

// PUT /network records connectivity reported by the host platform.
func (s *Server) setNetwork(c *gin.Context) {
	var req networkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if req.Online == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "online is required"})
		return
	}

	s.deps.Network.Set(*req.Online)
	ns := s.deps.Network.State()
	c.JSON(http.StatusOK, gin.H{"is_offline": ns.IsOffline, "is_loading": ns.IsLoading})
}

type actionRequest struct {
	ActionType string          `json:"action_type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

type ReceiptResponse struct {
	ActionID string             `json:"action_id,omitempty"`
	State    domain.ActionState `json:"state"`
}

// POST /actions
func (s *Server) submitAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	actionType, err := domain.ParseActionType(req.ActionType)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	entityType, err := domain.ParseEntityType(req.EntityType)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if req.EntityID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "entity_id is required"})
		return
	}

	var payload []byte
	if len(req.Payload) > 0 {
		payload = req.Payload
	}

	receipt, err := s.deps.Actions.Submit(c.Request.Context(), actionType, entityType, req.EntityID, payload)
	if err != nil {
		s.respondError(c, err, "submit action")
		return
	}

	code := http.StatusOK
	if receipt.State == domain.StateQueued {
		code = http.StatusAccepted
	}
	c.JSON(code, ReceiptResponse{ActionID: receipt.ActionID, State: receipt.State})
}

// GET /actions/:id
func (s *Server) actionState(c *gin.Context) {
	id := c.Param("id")
	state, err := s.deps.Actions.State(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err, "action state")
		return
	}
	c.JSON(http.StatusOK, ReceiptResponse{ActionID: id, State: state})
}

type BookmarkResponse struct {
	Type      domain.BookmarkType `json:"type"`
	EntityID  string              `json:"entity_id"`
	Data      json.RawMessage     `json:"data,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// GET /bookmarks?type=news
func (s *Server) listBookmarks(c *gin.Context) {
	var t domain.BookmarkType
	if raw := c.Query("type"); raw != "" {
		parsed, err := domain.ParseBookmarkType(raw)
		if err != nil {
			respondBadRequest(c, err)
			return
		}
		t = parsed
	}

	bookmarks, err := s.deps.Bookmarks.List(c.Request.Context(), t)
	if err != nil {
		s.respondError(c, err, "list bookmarks")
		return
	}

	resp := make([]BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		resp = append(resp, BookmarkResponse{
			Type:      b.Type,
			EntityID:  b.EntityID,
			Data:      rawJSON(b.Data),
			CreatedAt: b.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// POST /bookmarks/:type/:id/toggle with the entity snapshot as optional body.
func (s *Server) toggleBookmark(c *gin.Context) {
	t, err := domain.ParseBookmarkType(c.Param("type"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	data, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if len(data) == 0 {
		data = nil
	} else if !json.Valid(data) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "body must be JSON"})
		return
	}

	bookmarked, receipt, err := s.deps.Actions.ToggleBookmark(c.Request.Context(), t, c.Param("id"), data)
	if err != nil {
		s.respondError(c, err, "toggle bookmark")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookmarked": bookmarked,
		"receipt":    ReceiptResponse{ActionID: receipt.ActionID, State: receipt.State},
	})
}

// GET /content/:table?limit=20
func (s *Server) listContent(c *gin.Context) {
	table, err := domain.ParseTable(c.Param("table"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	limit, ok := queryLimit(c, 50)
	if !ok {
		return
	}

	entries, err := s.deps.Content.Entries(c.Request.Context(), table, 0)
	if err != nil {
		s.respondError(c, err, "list content")
		return
	}

	items := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		if limit > 0 && len(items) == limit {
			break
		}
		if json.Valid(e.Data) {
			items = append(items, e.Data)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GET /content/:table/:key
func (s *Server) getContent(c *gin.Context) {
	table, err := domain.ParseTable(c.Param("table"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	entry, err := s.deps.Content.Entry(c.Request.Context(), table, c.Param("key"))
	if err != nil {
		s.respondError(c, err, "get content")
		return
	}
	if !json.Valid(entry.Data) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", entry.Data)
}

func rawJSON(data []byte) json.RawMessage {
	if len(data) == 0 || !json.Valid(data) {
		return nil
	}
	return data
}
