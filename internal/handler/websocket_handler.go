package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/domain"
	"github.com/wahinekai/memberdb-backend/internal/websocket"
)

// SubscriptionResolver turns a bearer token into the chapter feed its member may follow
type SubscriptionResolver interface {
	ValidateToken(ctx context.Context, token string) (domain.Chapter, error)
}

// WebSocketHandler serves the live member feed at GET /ws
type WebSocketHandler struct {
	hub      *websocket.Hub
	resolver SubscriptionResolver
	origins  map[string]struct{}
	upgrader ws.Upgrader
}

func NewWebSocketHandler(hub *websocket.Hub, resolver SubscriptionResolver, allowedOrigins []string) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:      hub,
		resolver: resolver,
		origins:  make(map[string]struct{}, len(allowedOrigins)),
	}
	for _, origin := range allowedOrigins {
		h.origins[strings.TrimRight(origin, "/")] = struct{}{}
	}
	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.originAllowed,
	}
	return h
}

// originAllowed accepts non-browser clients, which send no Origin, and the CORS origins
func (h *WebSocketHandler) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	_, ok := h.origins[strings.TrimRight(origin, "/")]
	return ok
}

// bearerToken reads the token from the query string, which is all a browser
// can set on an upgrade request, or from an Authorization header
func bearerToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	scheme, token, ok := strings.Cut(r.Header.Get(echo.HeaderAuthorization), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

// HandleWS handles GET /ws
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	req := c.Request()

	if !h.originAllowed(req) {
		log.Warn().Str("origin", req.Header.Get("Origin")).Msg("WebSocket subscription rejected: origin not allowed")
		return NewForbiddenError(c, "Origin not allowed")
	}

	token := bearerToken(req)
	if token == "" {
		return NewUnauthorizedError(c, "Missing token")
	}

	chapter, err := h.resolver.ValidateToken(req.Context(), token)
	switch {
	case errors.Is(err, websocket.ErrInvalidToken):
		log.Debug().Err(err).Msg("WebSocket subscription rejected: invalid token")
		return NewUnauthorizedError(c, "Invalid token")
	case errors.Is(err, websocket.ErrMemberNotFound):
		return NewForbiddenError(c, "No member record for this account")
	case err != nil:
		log.Error().Err(err).Msg("WebSocket subscription lookup failed")
		return NewServiceUnavailableError(c, "Unable to resolve subscription")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), req, nil)
	if err != nil {
		// the upgrader has already written the handshake error
		log.Warn().Err(err).Str("chapter", string(chapter)).Msg("WebSocket upgrade failed")
		return nil
	}

	client := websocket.NewClient(conn, chapter, h.hub)
	h.hub.Register(client)
	go client.Run()

	return nil
}
