package rfp

import (
	"context"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp/dto"
)

type UseCase interface {
	// Cart wizard
	GetCart(ctx context.Context, cartID, locale string) (*dto.CartView, error)
	AddItem(ctx context.Context, cartID string, input *dto.AddItemInput) (*dto.CartView, error)
	UpdateItem(ctx context.Context, cartID string, input *dto.UpdateItemInput) (*dto.CartView, error)
	RemoveItem(ctx context.Context, cartID, productID string) (*dto.CartView, error)
	SetContact(ctx context.Context, cartID string, contact *model.RFPContact) (*dto.CartView, error)
	SetDetails(ctx context.Context, cartID string, details *model.RFPDetails) (*dto.CartView, error)
	GoTo(ctx context.Context, cartID string, step int) (*dto.CartView, error)
	ClearCart(ctx context.Context, cartID string) error
	Submit(ctx context.Context, cartID string, input *dto.SubmitInput) (*model.RFPRequest, error)

	// Back office
	ListRequests(ctx context.Context, filters *dto.RFPFilters) ([]model.RFPRequest, int, error)
	GetRequest(ctx context.Context, id string) (*model.RFPRequest, error)
	UpdateStatus(ctx context.Context, input *dto.UpdateStatusInput) (*model.RFPRequest, error)

	// MarkInReview is applied by the event listener. Requests that already
	// left the new status are ignored.
	MarkInReview(ctx context.Context, id string) error
}
