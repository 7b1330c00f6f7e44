package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/alumex/aluminium-shop-platform/internal/cache"
	appErrors "github.com/alumex/aluminium-shop-platform/internal/errors"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	"github.com/alumex/aluminium-shop-platform/internal/pricing"
	repository "github.com/alumex/aluminium-shop-platform/internal/repositories"
	"github.com/alumex/aluminium-shop-platform/internal/utils"
	"github.com/google/uuid"
)

// CartService is the session cart store. Carts live in the injected cache
// backend (Redis in production, in-memory in tests) keyed by session id, and
// every structural mutation recomputes the affected line's derived fields
// through the pricing calculator.
//
// Wholesale discounting is deliberately NOT baked into line items here: the
// calculator is always called with isWholesale=false, and the weight-tiered
// rate is applied once by the aggregator. That keeps every line's price
// independent of mutation order, so nothing needs cart-wide recomputation
// when a later addition pushes the total weight over a tier boundary.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.Cart, error)
	UpdateItem(ctx context.Context, sessionID string, req *models.UpdateItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, itemID string) (*models.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
	Summary(ctx context.Context, sessionID string) (*models.CartSummary, error)
}

type cartService struct {
	store       cache.Cache
	productRepo repository.ProductRepository
	cartTTL     time.Duration
}

func NewCartService(store cache.Cache, productRepo repository.ProductRepository, cartTTL time.Duration) CartService {
	return &cartService{store: store, productRepo: productRepo, cartTTL: cartTTL}
}

// itemKey is the dedup identity of a line item: same product at the same
// length with the same cutting options merges into one line.
func itemKey(productID uuid.UUID, length float64, freeCutting bool, note string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%.4f|%t|%s", productID, length, freeCutting, note)

	return fmt.Sprintf("%016x", h.Sum64())
}

func (s *cartService) load(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart := &models.Cart{}

	found, err := s.store.Get(ctx, cache.Key(cache.CartKeyPrefix, sessionID), cart)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	if !found {
		cart = &models.Cart{
			SessionID: sessionID,
			Items:     []models.CartItem{},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}

	return cart, nil
}

func (s *cartService) save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	if err := s.store.Set(ctx, cache.Key(cache.CartKeyPrefix, cart.SessionID), cart, s.cartTTL); err != nil {
		return appErrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	return nil
}

// reprice refreshes a line's derived fields. Only the calculator ever writes
// CalculatedPrice and CalculatedWeight.
func reprice(item *models.CartItem) {
	quote := pricing.Calculate(&item.Product, item.Length, item.Quantity, false)
	item.CalculatedPrice = quote.FinalPrice
	item.CalculatedWeight = quote.TotalWeight
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	return s.load(ctx, sessionID)
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.Cart, error) {

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, appErrors.NotFoundError("Product not found").WithError(err)
	}

	note := utils.SanitizeText(req.ProcessingNote)
	key := itemKey(product.ID, req.Length, req.FreeCutting, note)

	merged := false

	for i := range cart.Items {
		if cart.Items[i].ID == key {
			cart.Items[i].Quantity += req.Quantity
			reprice(&cart.Items[i])

			merged = true

			break
		}
	}

	if !merged {
		item := models.CartItem{
			ID:             key,
			Product:        *product,
			Length:         req.Length,
			Quantity:       req.Quantity,
			FreeCutting:    req.FreeCutting,
			ProcessingNote: note,
		}
		reprice(&item)

		cart.Items = append(cart.Items, item)
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) UpdateItem(ctx context.Context, sessionID string, req *models.UpdateItemRequest) (*models.Cart, error) {

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := -1

	for i := range cart.Items {
		if cart.Items[i].ID == req.ItemID {
			idx = i

			break
		}
	}

	if idx == -1 {
		return nil, appErrors.BadRequestError("Item not found in the cart")
	}

	item := &cart.Items[idx]

	if req.Length != nil {
		item.Length = *req.Length
	}

	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}

	if req.FreeCutting != nil {
		item.FreeCutting = *req.FreeCutting
	}

	if req.ProcessingNote != nil {
		item.ProcessingNote = utils.SanitizeText(*req.ProcessingNote)
	}

	// The identity tuple may have changed; merge into an existing line with
	// the same new identity rather than leaving a duplicate.
	newKey := itemKey(item.Product.ID, item.Length, item.FreeCutting, item.ProcessingNote)

	if newKey != item.ID {
		for i := range cart.Items {
			if i != idx && cart.Items[i].ID == newKey {
				item.Quantity += cart.Items[i].Quantity
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

				if i < idx {
					idx--
				}

				item = &cart.Items[idx]

				break
			}
		}

		item.ID = newKey
	}

	reprice(item)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, itemID string) (*models.Cart, error) {

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

			if err := s.save(ctx, cart); err != nil {
				return nil, err
			}

			return cart, nil
		}
	}

	return nil, appErrors.BadRequestError("Item not found in the cart")
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {

	if err := s.store.Delete(ctx, cache.Key(cache.CartKeyPrefix, sessionID)); err != nil {
		return appErrors.ThirdPartyError("Failed to clear cart").WithError(err)
	}

	return nil
}

// Summary aggregates the cart with the current total weight deciding
// wholesale status, so the displayed grand total always matches what the
// order service will recompute at submission.
func (s *cartService) Summary(ctx context.Context, sessionID string) (*models.CartSummary, error) {

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := pricing.Aggregate(cart.Items)

	return &summary, nil
}
