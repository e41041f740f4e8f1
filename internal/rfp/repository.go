package rfp

import (
	"context"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp/dto"
)

type Repository interface {
	// Create stores the request, its items and the initial history row in
	// one transaction.
	Create(ctx context.Context, req *model.RFPRequest) error
	FindByID(ctx context.Context, id string) (*model.RFPRequest, error)
	FindAll(ctx context.Context, filters *dto.RFPFilters) ([]model.RFPRequest, int, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)

	// TransitionStatus moves the request from one status to another and
	// records the history row. It reports false when the request was no
	// longer in status from.
	TransitionStatus(ctx context.Context, h *model.RFPStatusHistory, at time.Time) (bool, error)
	UpdateNotes(ctx context.Context, id, notes string, at time.Time) error
}

// CartStore keeps anonymous drafts. Get returns nil, nil for an unknown or
// expired cart.
type CartStore interface {
	Get(ctx context.Context, id string) (*model.RFPCart, error)
	Save(ctx context.Context, cart *model.RFPCart) error
	Delete(ctx context.Context, id string) error
}
