package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Shop is the session-scoped store API served over HTTP
type Shop interface {
	CreateSession() string
	ActiveSessions() int
	EndSession(sessionID string) error
	ListItems(sessionID string) ([]domain.Item, error)
	SearchByName(sessionID, fragment string) ([]domain.Item, error)
	SearchByHashtag(sessionID, tag string) ([]domain.Item, error)
	AddItem(sessionID, fragment string) ([]domain.Item, error)
	RemoveItem(sessionID, fragment string) ([]domain.Item, error)
	ClearCart(sessionID string) error
	Cart(sessionID string) ([]domain.Item, int, error)
	Checkout(ctx context.Context, sessionID string) (int, error)
}

type StoreHandler struct {
	shop Shop
	log  *zap.Logger
}

func NewStoreHandler(shop Shop, log *zap.Logger) *StoreHandler {
	return &StoreHandler{
		shop: shop,
		log:  log,
	}
}

type ItemResponse struct {
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Hashtags    []string `json:"hashtags"`
	Description string   `json:"description"`
}

type ItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

type CartResponse struct {
	Items    []ItemResponse `json:"items"`
	Subtotal int            `json:"subtotal"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
}

type CheckoutResponse struct {
	Total int `json:"total"`
}

type AddItemRequestDTO struct {
	Name string `json:"name"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func (h *StoreHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Sessions: h.shop.ActiveSessions()})
}

func (h *StoreHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusCreated, SessionResponse{SessionID: h.shop.CreateSession()})
}

func (h *StoreHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.EndSession(getSessionID(r.Context())); err != nil {
		h.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StoreHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.shop.ListItems(getSessionID(r.Context()))
	if err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ItemsResponse{Items: convertItems(items)})
}

// Search takes exactly one of the "name" or "hashtag" query parameters.
// An empty name matches every item.
func (h *StoreHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	byName, byHashtag := query.Has("name"), query.Has("hashtag")
	if byName == byHashtag {
		respondError(w, http.StatusBadRequest, "invalid_query", "exactly one of name or hashtag is required")
		return
	}

	sessionID := getSessionID(r.Context())
	var (
		items []domain.Item
		err   error
	)
	if byName {
		items, err = h.shop.SearchByName(sessionID, query.Get("name"))
	} else {
		items, err = h.shop.SearchByHashtag(sessionID, query.Get("hashtag"))
	}
	if err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ItemsResponse{Items: convertItems(items)})
}

func (h *StoreHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	items, subtotal, err := h.shop.Cart(getSessionID(r.Context()))
	if err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CartResponse{Items: convertItems(items), Subtotal: subtotal})
}

func (h *StoreHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	items, err := h.shop.AddItem(getSessionID(r.Context()), req.Name)
	if err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, CartResponse{Items: convertItems(items), Subtotal: subtotal(items)})
}

func (h *StoreHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	fragment := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(fragment)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_name", "name is not a valid path segment")
			return
		}
		fragment = unescaped
	}

	items, err := h.shop.RemoveItem(getSessionID(r.Context()), fragment)
	if err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CartResponse{Items: convertItems(items), Subtotal: subtotal(items)})
}

func (h *StoreHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.ClearCart(getSessionID(r.Context())); err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CartResponse{Items: []ItemResponse{}})
}

func (h *StoreHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	total, err := h.shop.Checkout(r.Context(), getSessionID(r.Context()))
	if err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CheckoutResponse{Total: total})
}

func convertItems(items []domain.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		hashtags := item.Hashtags
		if hashtags == nil {
			hashtags = []string{}
		}
		out[i] = ItemResponse{
			Name:        item.Name,
			Price:       item.Price,
			Hashtags:    hashtags,
			Description: item.Description,
		}
	}
	return out
}

func subtotal(items []domain.Item) int {
	total := 0
	for _, item := range items {
		total += item.Price
	}
	return total
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError converts service errors to HTTP status codes
func (h *StoreHandler) handleError(w http.ResponseWriter, err error) {
	var (
		httpStatus int
		code       string
	)

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		httpStatus = http.StatusNotFound
		code = "session_not_found"
	case errors.Is(err, domain.ErrItemNotFound):
		httpStatus = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, domain.ErrAmbiguousMatch):
		httpStatus = http.StatusConflict
		code = "ambiguous_match"
	case errors.Is(err, domain.ErrDuplicateItem):
		httpStatus = http.StatusConflict
		code = "already_exists"
	default:
		h.log.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondError(w, httpStatus, code, err.Error())
}
