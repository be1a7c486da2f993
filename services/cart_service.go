package services

import (
	"context"
	"sync"
	"time"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// CartService loads and persists session carts through the cache. Carts are
// only read and written at request boundaries. Edits to one session are
// serialized within this process; separate replicas sharing a Redis cache
// still race and the last write wins.
type CartService struct {
	logger   *gecho.Logger
	cache    *CacheService
	products *ProductService
	ttl      time.Duration
	locks    sessionLocks
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// sessionLocks hands out one mutex per session and drops it once no request
// holds or waits on it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sessionLock
}

func (sl *sessionLocks) lock(id uuid.UUID) func() {
	sl.mu.Lock()
	if sl.locks == nil {
		sl.locks = make(map[uuid.UUID]*sessionLock)
	}
	l, ok := sl.locks[id]
	if !ok {
		l = &sessionLock{}
		sl.locks[id] = l
	}
	l.refs++
	sl.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		sl.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(sl.locks, id)
		}
		sl.mu.Unlock()
	}
}

func NewCartService(logger *gecho.Logger, cache *CacheService, products *ProductService, ttl time.Duration) *CartService {
	return &CartService{
		logger:   logger,
		cache:    cache,
		products: products,
		ttl:      ttl,
	}
}

func cartKey(session uuid.UUID) string {
	return "cart:" + session.String()
}

func parseSession(session string) (uuid.UUID, error) {
	id, err := uuid.Parse(session)
	if err != nil {
		return uuid.Nil, lib.Invalid("session", "must be a UUID")
	}
	return id, nil
}

// NewSession creates an empty cart and returns its session id.
func (cs *CartService) NewSession(ctx context.Context) (string, error) {
	session := uuid.New()
	if err := cs.save(ctx, session, &structs.Cart{Items: []structs.CartItem{}}); err != nil {
		return "", err
	}
	cs.logger.Debug("Cart session created", gecho.Field("session", session))
	return session.String(), nil
}

// Load returns the session's cart or a not-found error once it expired.
func (cs *CartService) Load(ctx context.Context, session string) (*structs.Cart, error) {
	id, err := parseSession(session)
	if err != nil {
		return nil, err
	}
	return cs.load(ctx, id)
}

func (cs *CartService) load(ctx context.Context, id uuid.UUID) (*structs.Cart, error) {
	cart, err := getJSON[structs.Cart](ctx, cs.cache, cartKey(id))
	if err != nil {
		cs.logger.Error("Failed to load cart", gecho.Field("session", id), gecho.Field("error", err))
		return nil, err
	}
	if cart == nil {
		return nil, lib.NotFound("cart", id)
	}
	return cart, nil
}

func (cs *CartService) save(ctx context.Context, id uuid.UUID, cart *structs.Cart) error {
	if err := setJSON(ctx, cs.cache, cartKey(id), cart, cs.ttl); err != nil {
		cs.logger.Error("Failed to persist cart", gecho.Field("session", id), gecho.Field("error", err))
		return err
	}
	return nil
}

// AddItem snapshots the current product row into the cart.
func (cs *CartService) AddItem(ctx context.Context, session string, productID int64) (*structs.Cart, error) {
	id, err := parseSession(session)
	if err != nil {
		return nil, err
	}
	unlock := cs.locks.lock(id)
	defer unlock()

	cart, err := cs.load(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := cs.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart.Add(structs.CartItem{
		ID:           product.ID,
		Title:        product.Title,
		PricePence:   product.PricePence,
		Seller:       product.Seller,
		RequireAge18: product.RequireAge18,
		RequireUK:    product.RequireUK,
	})
	if err := cs.save(ctx, id, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops one unit of productID, or all of them when all is set.
func (cs *CartService) RemoveItem(ctx context.Context, session string, productID int64, all bool) (*structs.Cart, error) {
	id, err := parseSession(session)
	if err != nil {
		return nil, err
	}
	unlock := cs.locks.lock(id)
	defer unlock()

	cart, err := cs.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if all {
		cart.RemoveAll(productID)
	} else {
		cart.RemoveOne(productID)
	}
	if err := cs.save(ctx, id, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear forgets the session's cart.
func (cs *CartService) Clear(ctx context.Context, session string) error {
	id, err := parseSession(session)
	if err != nil {
		return err
	}
	unlock := cs.locks.lock(id)
	defer unlock()

	return cs.cache.Delete(ctx, cartKey(id))
}
