package apihandlers

import (
	"context"
	"net/http"

	"pitstop/internal/app"
	"pitstop/internal/costtracker"
	"pitstop/internal/logger"
	"pitstop/internal/services"

	"github.com/gin-gonic/gin"
)

// Responder answers one customer message.
type Responder interface {
	Respond(ctx context.Context, message string) services.ChatOutcome
}

type APIHandler struct {
	StoreName   string
	Chat        Responder
	Completion  services.CompletionService
	CostTracker costtracker.CostTracker
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{
		StoreName:   a.Config.Store.Name,
		Chat:        a.ChatService,
		Completion:  a.CompletionService,
		CostTracker: a.CostTracker,
	}
}

// ChatRequest is the body of POST /chat.
// Message is a pointer so a missing field can be told apart from an empty one.
type ChatRequest struct {
	Message *string `json:"message"`
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// ChatHandler runs the support pipeline for one message. Completion failures
// still return 200 with the apology text.
func (h *APIHandler) ChatHandler(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Message == nil {
		BadRequest(c, "message is required")
		return
	}

	out := h.Chat.Respond(c.Request.Context(), *req.Message)

	entry := logger.FromContext(c).WithField("categories", out.Categories)
	if out.Fallback {
		entry.WithError(out.Err).Warn("Replied with fallback message")
	} else {
		entry.Debug("Replied to chat message")
	}

	c.JSON(http.StatusOK, ChatResponse{Response: out.Reply})
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if h.StoreName != "" {
		resp["store"] = h.StoreName
	}
	if h.Completion != nil {
		resp["provider"] = h.Completion.Name()
		resp["model"] = h.Completion.ModelName()
		resp["provider_status"] = h.Completion.Status().String()
	}
	if h.CostTracker != nil {
		if total, err := h.CostTracker.TotalCost(c.Request.Context()); err == nil {
			resp["total_cost_usd"] = total
		}
		if byOp, err := h.CostTracker.CostByOperation(c.Request.Context()); err == nil {
			resp["cost_by_operation_usd"] = byOp
		}
	}
	c.JSON(http.StatusOK, resp)
}
