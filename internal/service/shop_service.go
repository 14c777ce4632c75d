package service

import (
	"context"
	"time"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/DanielFadlon/simple-store/internal/events"
	"github.com/DanielFadlon/simple-store/internal/session"
	"github.com/DanielFadlon/simple-store/internal/store"
	"go.uber.org/zap"
)

// ShopService exposes the store operations per session to the transports.
type ShopService struct {
	sessions  *session.Manager
	publisher events.Publisher
	log       *zap.Logger
}

func NewShopService(sessions *session.Manager, publisher events.Publisher, log *zap.Logger) *ShopService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &ShopService{
		sessions:  sessions,
		publisher: publisher,
		log:       log,
	}
}

func (s *ShopService) CreateSession() string {
	return s.sessions.Create().ID
}

// ActiveSessions returns the number of live sessions.
func (s *ShopService) ActiveSessions() int {
	return s.sessions.Len()
}

func (s *ShopService) EndSession(sessionID string) error {
	return s.sessions.Delete(sessionID)
}

func (s *ShopService) ListItems(sessionID string) ([]domain.Item, error) {
	var items []domain.Item
	err := s.do(sessionID, func(st *store.Store) error {
		items = st.Items()
		return nil
	})
	return items, err
}

func (s *ShopService) SearchByName(sessionID, fragment string) ([]domain.Item, error) {
	var items []domain.Item
	err := s.do(sessionID, func(st *store.Store) error {
		items = st.SearchByName(fragment)
		return nil
	})
	return items, err
}

func (s *ShopService) SearchByHashtag(sessionID, tag string) ([]domain.Item, error) {
	var items []domain.Item
	err := s.do(sessionID, func(st *store.Store) error {
		items = st.SearchByHashtag(tag)
		return nil
	})
	return items, err
}

func (s *ShopService) AddItem(sessionID, fragment string) ([]domain.Item, error) {
	var cart []domain.Item
	err := s.do(sessionID, func(st *store.Store) error {
		if err := st.AddItem(fragment); err != nil {
			return err
		}
		cart = st.CartItems()
		return nil
	})
	if err != nil {
		s.log.Debug("add item rejected", zap.String("session_id", sessionID), zap.String("fragment", fragment), zap.Error(err))
		return nil, err
	}
	return cart, nil
}

func (s *ShopService) RemoveItem(sessionID, fragment string) ([]domain.Item, error) {
	var cart []domain.Item
	err := s.do(sessionID, func(st *store.Store) error {
		if err := st.RemoveItem(fragment); err != nil {
			return err
		}
		cart = st.CartItems()
		return nil
	})
	if err != nil {
		s.log.Debug("remove item rejected", zap.String("session_id", sessionID), zap.String("fragment", fragment), zap.Error(err))
		return nil, err
	}
	return cart, nil
}

func (s *ShopService) ClearCart(sessionID string) error {
	return s.do(sessionID, func(st *store.Store) error {
		st.ClearCart()
		return nil
	})
}

func (s *ShopService) Cart(sessionID string) ([]domain.Item, int, error) {
	var (
		items []domain.Item
		total int
	)
	err := s.do(sessionID, func(st *store.Store) error {
		items = st.CartItems()
		total = st.Checkout()
		return nil
	})
	return items, total, err
}

// Checkout returns the cart total and announces the checkout. A failed
// publish is logged and does not fail the checkout.
func (s *ShopService) Checkout(ctx context.Context, sessionID string) (int, error) {
	var event events.CheckoutEvent
	err := s.do(sessionID, func(st *store.Store) error {
		event = events.CheckoutEvent{
			SessionID:   sessionID,
			Items:       st.CartItems(),
			Total:       st.Checkout(),
			CompletedAt: time.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := s.publisher.PublishCheckout(ctx, event); err != nil {
		s.log.Error("failed to publish checkout", zap.String("session_id", sessionID), zap.Error(err))
	}
	s.log.Info("checkout", zap.String("session_id", sessionID), zap.Int("items", len(event.Items)), zap.Int("total", event.Total))

	return event.Total, nil
}

func (s *ShopService) do(sessionID string, fn func(st *store.Store) error) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	return sess.Do(fn)
}
