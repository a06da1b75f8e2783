package webhook

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"chef-virtual/internal/core/catalog"
	"chef-virtual/internal/core/chef"
	"chef-virtual/internal/core/notify"
	"chef-virtual/internal/core/orders"
	"chef-virtual/internal/core/pipeline"
	"chef-virtual/internal/core/session"
	"chef-virtual/internal/core/users"
	"chef-virtual/internal/infrastructure/config"
	"chef-virtual/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// payload is the WhatsApp Cloud API webhook envelope, reduced to the fields
// the flow needs.
type payload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Contacts []struct {
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
				} `json:"contacts"`
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
					Interactive struct {
						ButtonReply struct {
							ID string `json:"id"`
						} `json:"button_reply"`
					} `json:"interactive"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// Handler drives the conversational ordering flow over the WhatsApp
// webhook: a recipe request, then a retailer choice via buttons.
type Handler struct {
	config   *config.Config
	users    *users.Registry
	sessions *session.Store
	chef     *chef.Service
	catalog  *catalog.Client
	pipeline *pipeline.Service
	orders   *orders.Client
	notifier *notify.WhatsAppClient
}

// NewHandler creates the webhook handler.
func NewHandler(cfg *config.Config, registry *users.Registry, sessions *session.Store, chefSvc *chef.Service, catalogClient *catalog.Client, pipelineSvc *pipeline.Service, ordersClient *orders.Client, notifier *notify.WhatsAppClient) *Handler {
	return &Handler{
		config:   cfg,
		users:    registry,
		sessions: sessions,
		chef:     chefSvc,
		catalog:  catalogClient,
		pipeline: pipelineSvc,
		orders:   ordersClient,
		notifier: notifier,
	}
}

// HandleVerify answers the Cloud API subscription handshake.
func (h *Handler) HandleVerify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.config.WhatsApp.VerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.Status(http.StatusForbidden)
}

// HandleMessage processes one inbound message. The webhook always gets a
// 200 back: a failed reply is logged, not redelivered forever.
func (h *Handler) HandleMessage(c *gin.Context) {
	var p payload
	if err := c.ShouldBindJSON(&p); err != nil {
		common.LogWarn("invalid webhook payload", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	from, profileName, text, buttonID, ok := extractMessage(&p)
	if !ok {
		c.Status(http.StatusOK)
		return
	}

	ctx := c.Request.Context()
	if err := h.process(ctx, from, profileName, text, buttonID); err != nil {
		common.LogError("webhook processing failed",
			zap.Error(err),
			zap.String("from", from),
		)
	}
	c.Status(http.StatusOK)
}

func extractMessage(p *payload) (from, profileName, text, buttonID string, ok bool) {
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			value := change.Value
			if len(value.Messages) == 0 {
				continue
			}
			msg := value.Messages[0]
			if len(value.Contacts) > 0 {
				profileName = value.Contacts[0].Profile.Name
			}
			return msg.From, profileName, msg.Text.Body, msg.Interactive.ButtonReply.ID, true
		}
	}
	return "", "", "", "", false
}

func (h *Handler) process(ctx context.Context, from, profileName, text, buttonID string) error {
	userName := h.users.Resolve(from, profileName)

	state, err := h.sessions.Get(ctx, from)
	if err != nil {
		common.LogWarn("session lookup failed, starting fresh",
			zap.Error(err),
			zap.String("from", from),
		)
		state = &session.State{State: session.StateAwaitingRecipe}
	}

	choice := buttonID
	if choice == "" {
		if retailer, ok := common.ParseRetailer(text); ok {
			choice = string(retailer)
		} else if strings.EqualFold(strings.TrimSpace(text), "listar") {
			choice = "listar"
		}
	}

	if state.State == session.StateChoosingRetailer && choice != "" {
		return h.handleChoice(ctx, from, choice, state)
	}

	return h.handleRecipeRequest(ctx, from, userName, text)
}

func (h *Handler) handleRecipeRequest(ctx context.Context, from, userName, text string) error {
	recipeText, err := h.chef.GenerateRecipe(ctx, userName, text)
	if err != nil {
		return h.notifier.SendText(ctx, from, "⚠️ No pude generar la receta, intentá de nuevo.")
	}

	products, err := h.catalog.FetchProducts(ctx)
	if err != nil {
		common.LogWarn("catalog unavailable for webhook request", zap.Error(err))
		products = nil
	}

	result := h.pipeline.Resolve(recipeText, products)
	if err := h.notifier.SendText(ctx, from, result.FormatReply(userName)); err != nil {
		return err
	}

	hasLines := false
	for _, order := range result.Orders {
		if len(order.Lines) > 0 {
			hasLines = true
			break
		}
	}
	if !hasLines {
		return nil
	}

	if err := h.sessions.Set(ctx, from, &session.State{
		State:      session.StateChoosingRetailer,
		Orders:     result.Orders,
		LastRecipe: recipeText,
	}); err != nil {
		common.LogWarn("failed to persist session", zap.Error(err))
	}

	return h.notifier.SendButtons(ctx, from,
		"¿Querés hacer el pedido en un supermercado?", notify.RetailerButtons)
}

func (h *Handler) handleChoice(ctx context.Context, from, choice string, state *session.State) error {
	if choice == "listar" {
		return h.notifier.SendText(ctx, from, formatOrderSummary(state.Orders))
	}

	retailer, ok := common.ParseRetailer(choice)
	if !ok {
		return h.notifier.SendText(ctx, from, "⚠️ Supermercado no válido.")
	}

	pending := state.Orders[retailer]
	if pending == nil || len(pending.Lines) == 0 {
		return h.notifier.SendText(ctx, from,
			fmt.Sprintf("⚠️ No hay productos para %s.", retailer.DisplayName()))
	}
	pending.Retailer = retailer
	pending.RecalcTotal()

	if err := h.orders.Submit(ctx, from, pending); err != nil {
		return h.notifier.SendText(ctx, from, "❌ Error enviando el pedido.")
	}

	if err := h.sessions.Set(ctx, from, &session.State{State: session.StateAwaitingRecipe}); err != nil {
		common.LogWarn("failed to reset session", zap.Error(err))
	}

	return h.notifier.SendText(ctx, from,
		fmt.Sprintf("✅ Pedido enviado a %s. Total: $%s", retailer.DisplayName(), pending.Total.StringFixed(2)))
}

func formatOrderSummary(order common.Order) string {
	var sb strings.Builder
	sb.WriteString("📦 Resumen del pedido:\n")
	for _, retailer := range common.Retailers {
		pending := order[retailer]
		if pending == nil || len(pending.Lines) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s:\n", retailer.DisplayName())
		for _, line := range pending.Lines {
			fmt.Fprintf(&sb, "• %d x %s — $%s\n", line.PackCount, line.ProductName, line.LineTotal.StringFixed(2))
		}
		fmt.Fprintf(&sb, "Total: $%s\n", pending.Total.StringFixed(2))
	}
	return sb.String()
}
