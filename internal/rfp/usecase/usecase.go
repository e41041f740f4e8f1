package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/cache"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound           = apperror.NotFound("RFPNotFound")
	ErrCartEmpty          = apperror.Invalid("RFPCartEmpty")
	ErrIncomplete         = apperror.Invalid("RFPIncomplete")
	ErrTermsRequired      = apperror.Invalid("RFPTermsRequired")
	ErrProductUnavailable = apperror.Invalid("RFPProductUnavailable")
	ErrStepLocked         = apperror.Invalid("RFPStepLocked")
	ErrInvalidTransition  = apperror.Conflict("RFPInvalidTransition")
	ErrItemNotFound       = apperror.NotFound("RFPItemNotFound")
	ErrCartBusy           = apperror.Conflict("RFPCartBusy")
)

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
)

// ProductLookup resolves catalog products for cart snapshots.
type ProductLookup interface {
	GetProduct(ctx context.Context, id, locale string) (*model.Product, error)
}

// Publisher emits RFP events.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type rfpUseCase struct {
	repo          rfp.Repository
	carts         rfp.CartStore
	products      ProductLookup
	locker        cache.Locker // optional
	publisher     Publisher    // optional
	defaultLocale string
	logger        logger.ZapLogger
	now           func() time.Time
}

type Options struct {
	Locker        cache.Locker
	Publisher     Publisher
	DefaultLocale string
}

func NewRFPUseCase(repo rfp.Repository, carts rfp.CartStore, products ProductLookup, opts Options, log logger.ZapLogger) rfp.UseCase {
	return &rfpUseCase{
		repo:          repo,
		carts:         carts,
		products:      products,
		locker:        opts.Locker,
		publisher:     opts.Publisher,
		defaultLocale: opts.DefaultLocale,
		logger:        log,
		now:           time.Now,
	}
}

func (uc *rfpUseCase) load(ctx context.Context, cartID, locale string) (*model.RFPCart, error) {
	cart, err := uc.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &model.RFPCart{ID: cartID, Items: []model.CartItem{}, CurrentStep: rfp.StepItems}
	}
	if locale != "" {
		cart.Locale = locale
	}
	if cart.Locale == "" {
		cart.Locale = uc.defaultLocale
	}
	return cart, nil
}

// withCartLock runs fn while holding the cart lock. Without a locker fn runs
// unguarded.
func (uc *rfpUseCase) withCartLock(ctx context.Context, cartID string, fn func() error) error {
	if uc.locker == nil {
		return fn()
	}

	lockKey := "rfp:cart:" + cartID + ":lock"
	lockValue := uuid.New().String()
	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire cart lock", zap.String("cart_id", cartID), zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return ErrCartBusy
	}
	defer uc.locker.ReleaseLock(context.Background(), lockKey, lockValue)

	return fn()
}

// mutate runs fn on the cart under the cart lock and saves the result.
func (uc *rfpUseCase) mutate(ctx context.Context, cartID, locale string, fn func(cart *model.RFPCart) error) (*dto.CartView, error) {
	var view *dto.CartView
	err := uc.withCartLock(ctx, cartID, func() error {
		cart, err := uc.load(ctx, cartID, locale)
		if err != nil {
			return err
		}
		if err := fn(cart); err != nil {
			return err
		}
		rfp.Clamp(cart)
		cart.UpdatedAt = uc.now()

		if err := uc.carts.Save(ctx, cart); err != nil {
			return err
		}
		view = rfp.View(cart)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (uc *rfpUseCase) GetCart(ctx context.Context, cartID, locale string) (*dto.CartView, error) {
	cart, err := uc.load(ctx, cartID, locale)
	if err != nil {
		return nil, err
	}
	rfp.Clamp(cart)
	return rfp.View(cart), nil
}

// available returns the product when it can still be requested.
func (uc *rfpUseCase) available(ctx context.Context, productID, locale string) (*model.Product, error) {
	p, err := uc.products.GetProduct(ctx, productID, locale)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, ErrProductUnavailable
		}
		return nil, err
	}
	if p.Status != model.ProductStatusPublished {
		return nil, ErrProductUnavailable.WithData(map[string]interface{}{"SKU": p.SKU})
	}
	return p, nil
}

func (uc *rfpUseCase) AddItem(ctx context.Context, cartID string, input *dto.AddItemInput) (*dto.CartView, error) {
	return uc.mutate(ctx, cartID, input.Locale, func(cart *model.RFPCart) error {
		p, err := uc.available(ctx, input.ProductID, cart.Locale)
		if err != nil {
			return err
		}

		qty := input.Quantity
		if qty < 1 {
			qty = 1
		}
		for i := range cart.Items {
			if cart.Items[i].ProductID == p.ID {
				cart.Items[i].Quantity += qty
				if notes := strings.TrimSpace(input.Notes); notes != "" {
					cart.Items[i].Notes = notes
				}
				return nil
			}
		}

		item := model.CartItem{
			ProductID: p.ID,
			Quantity:  qty,
			Notes:     strings.TrimSpace(input.Notes),
			SKU:       p.SKU,
			Slug:      p.Slug,
			Name:      p.Name,
		}
		if len(p.ImageURLs) > 0 {
			item.ImageURL = p.ImageURLs[0]
		}
		cart.Items = append(cart.Items, item)
		return nil
	})
}

func (uc *rfpUseCase) UpdateItem(ctx context.Context, cartID string, input *dto.UpdateItemInput) (*dto.CartView, error) {
	return uc.mutate(ctx, cartID, "", func(cart *model.RFPCart) error {
		for i := range cart.Items {
			if cart.Items[i].ProductID != input.ProductID {
				continue
			}
			cart.Items[i].Quantity = input.Quantity
			if input.Notes != nil {
				cart.Items[i].Notes = strings.TrimSpace(*input.Notes)
			}
			return nil
		}
		return ErrItemNotFound
	})
}

func (uc *rfpUseCase) RemoveItem(ctx context.Context, cartID, productID string) (*dto.CartView, error) {
	return uc.mutate(ctx, cartID, "", func(cart *model.RFPCart) error {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(cart.Items) {
			return ErrItemNotFound
		}
		cart.Items = kept
		return nil
	})
}

func stepLocked(cart *model.RFPCart) error {
	return ErrStepLocked.WithData(map[string]interface{}{"Step": rfp.FirstIncomplete(cart)})
}

func (uc *rfpUseCase) SetContact(ctx context.Context, cartID string, contact *model.RFPContact) (*dto.CartView, error) {
	return uc.mutate(ctx, cartID, "", func(cart *model.RFPCart) error {
		if !rfp.CanReach(cart, rfp.StepContact) {
			return stepLocked(cart)
		}
		c := *contact
		c.Email = strings.ToLower(strings.TrimSpace(c.Email))
		cart.Contact = &c
		cart.CurrentStep = rfp.StepDetails
		return nil
	})
}

func (uc *rfpUseCase) SetDetails(ctx context.Context, cartID string, details *model.RFPDetails) (*dto.CartView, error) {
	return uc.mutate(ctx, cartID, "", func(cart *model.RFPCart) error {
		if !rfp.CanReach(cart, rfp.StepDetails) {
			return stepLocked(cart)
		}
		d := *details
		if d.Urgency == "" {
			d.Urgency = model.RFPUrgencyNormal
		}
		cart.Details = &d
		cart.CurrentStep = rfp.StepReview
		return nil
	})
}

func (uc *rfpUseCase) GoTo(ctx context.Context, cartID string, step int) (*dto.CartView, error) {
	return uc.mutate(ctx, cartID, "", func(cart *model.RFPCart) error {
		if !rfp.CanReach(cart, step) {
			return stepLocked(cart)
		}
		cart.CurrentStep = step
		return nil
	})
}

func (uc *rfpUseCase) ClearCart(ctx context.Context, cartID string) error {
	return uc.carts.Delete(ctx, cartID)
}

// Submit holds the cart lock from reading the draft until it is cleared, so
// a repeated submit of the same cart finds it empty.
func (uc *rfpUseCase) Submit(ctx context.Context, cartID string, input *dto.SubmitInput) (*model.RFPRequest, error) {
	var req *model.RFPRequest
	err := uc.withCartLock(ctx, cartID, func() error {
		var err error
		req, err = uc.submit(ctx, cartID, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.publishSubmitted(ctx, req)

	uc.logger.Info("rfp submitted",
		zap.String("rfp_id", req.ID),
		zap.String("reference", req.Reference),
		zap.Int("items", len(req.Items)),
	)
	return req, nil
}

func (uc *rfpUseCase) submit(ctx context.Context, cartID string, input *dto.SubmitInput) (*model.RFPRequest, error) {
	cart, err := uc.load(ctx, cartID, input.Locale)
	if err != nil {
		return nil, err
	}

	// 1. Validate the draft
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}
	if step := rfp.FirstIncomplete(cart); step < rfp.StepReview {
		return nil, ErrIncomplete.WithData(map[string]interface{}{"Step": step})
	}
	if !input.AcceptTerms && !cart.AcceptTerms {
		return nil, ErrTermsRequired
	}

	now := uc.now()
	req := &model.RFPRequest{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Status:     model.RFPStatusNew,
		Locale:     cart.Locale,
		RFPContact: *cart.Contact,
		RFPDetails: *cart.Details,
	}
	if req.Urgency == "" {
		req.Urgency = model.RFPUrgencyNormal
	}

	// 2. Snapshot products as they are now
	for _, item := range cart.Items {
		p, err := uc.available(ctx, item.ProductID, cart.Locale)
		if err != nil {
			if apperror.IsKind(err, apperror.KindInvalid) {
				return nil, ErrProductUnavailable.WithData(map[string]interface{}{"SKU": item.SKU})
			}
			return nil, err
		}
		productID := p.ID
		req.Items = append(req.Items, model.RFPItem{
			ID:          uuid.New().String(),
			ProductID:   &productID,
			ProductSKU:  p.SKU,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			Notes:       item.Notes,
		})
	}

	// 3. Allocate a unique reference
	req.Reference, err = uc.allocateReference(ctx, now)
	if err != nil {
		return nil, err
	}

	req.History = []model.RFPStatusHistory{{
		ID:        uuid.New().String(),
		ToStatus:  model.RFPStatusNew,
		ChangedBy: "customer",
		CreatedAt: now,
	}}

	// 4. Persist in one transaction
	if err := uc.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	// 5. Clear the draft
	if err := uc.carts.Delete(ctx, cartID); err != nil {
		uc.logger.Warn("failed to clear rfp cart", zap.String("cart_id", cartID), zap.Error(err))
	}
	return req, nil
}

func (uc *rfpUseCase) allocateReference(ctx context.Context, now time.Time) (string, error) {
	const attempts = 5
	for i := 0; i < attempts; i++ {
		ref, err := rfp.NewReference(now)
		if err != nil {
			return "", apperror.Internal(err)
		}
		exists, err := uc.repo.ReferenceExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}
	return "", apperror.Internal(fmt.Errorf("no free rfp reference after %d attempts", attempts))
}

func (uc *rfpUseCase) publishSubmitted(ctx context.Context, req *model.RFPRequest) {
	if uc.publisher == nil {
		return
	}
	event := model.RFPEvent{
		Type:       model.RFPEventSubmitted,
		RFPID:      req.ID,
		Reference:  req.Reference,
		Email:      req.Email,
		ItemCount:  len(req.Items),
		Locale:     req.Locale,
		OccurredAt: req.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal rfp event", zap.Error(err))
		return
	}
	if err := uc.publisher.Publish(ctx, req.ID, payload); err != nil {
		// The request is stored; reviewers still see it as new.
		uc.logger.Error("failed to publish rfp event", zap.String("rfp_id", req.ID), zap.Error(err))
	}
}

func (uc *rfpUseCase) ListRequests(ctx context.Context, filters *dto.RFPFilters) ([]model.RFPRequest, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *rfpUseCase) GetRequest(ctx context.Context, id string) (*model.RFPRequest, error) {
	req, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}
	return req, nil
}

func (uc *rfpUseCase) UpdateStatus(ctx context.Context, input *dto.UpdateStatusInput) (*model.RFPRequest, error) {
	req, err := uc.GetRequest(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	if input.Status != "" && input.Status != req.Status {
		if !req.Status.CanTransition(input.Status) {
			return nil, ErrInvalidTransition.WithData(map[string]interface{}{"From": string(req.Status), "To": string(input.Status)})
		}
		h := &model.RFPStatusHistory{
			ID:         uuid.New().String(),
			RFPID:      req.ID,
			FromStatus: req.Status,
			ToStatus:   input.Status,
			Note:       strings.TrimSpace(input.Note),
			ChangedBy:  input.ChangedBy,
			CreatedAt:  now,
		}
		moved, err := uc.repo.TransitionStatus(ctx, h, now)
		if err != nil {
			return nil, err
		}
		if !moved {
			// someone else moved it first
			return nil, ErrInvalidTransition.WithData(map[string]interface{}{"From": string(req.Status), "To": string(input.Status)})
		}
	}

	if input.InternalNotes != nil {
		if err := uc.repo.UpdateNotes(ctx, req.ID, *input.InternalNotes, now); err != nil {
			return nil, err
		}
	}
	return uc.GetRequest(ctx, req.ID)
}

func (uc *rfpUseCase) MarkInReview(ctx context.Context, id string) error {
	now := uc.now()
	h := &model.RFPStatusHistory{
		ID:         uuid.New().String(),
		RFPID:      id,
		FromStatus: model.RFPStatusNew,
		ToStatus:   model.RFPStatusInReview,
		Note:       "received",
		ChangedBy:  "system",
		CreatedAt:  now,
	}
	moved, err := uc.repo.TransitionStatus(ctx, h, now)
	if err != nil {
		return err
	}
	if !moved {
		uc.logger.Debug("rfp already past new", zap.String("rfp_id", id))
	}
	return nil
}
