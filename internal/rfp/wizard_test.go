package rfp

import (
	"regexp"
	"testing"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullContact() *model.RFPContact {
	return &model.RFPContact{FullName: "Amina El Idrissi", Email: "amina@chu.ma", Company: "CHU Rabat", Country: "MA"}
}

func TestFirstIncomplete(t *testing.T) {
	items := []model.CartItem{{ProductID: "p1", Quantity: 1}}

	tests := []struct {
		name string
		cart model.RFPCart
		want int
	}{
		{name: "empty", cart: model.RFPCart{}, want: StepItems},
		{name: "items only", cart: model.RFPCart{Items: items}, want: StepContact},
		{
			name: "contact missing company",
			cart: model.RFPCart{Items: items, Contact: &model.RFPContact{FullName: "A", Email: "a@b.c", Country: "MA"}},
			want: StepContact,
		},
		{name: "contact done", cart: model.RFPCart{Items: items, Contact: fullContact()}, want: StepDetails},
		{
			name: "details done",
			cart: model.RFPCart{Items: items, Contact: fullContact(), Details: &model.RFPDetails{InstitutionType: "hospital"}},
			want: StepReview,
		},
		{
			name: "contact without items",
			cart: model.RFPCart{Contact: fullContact(), Details: &model.RFPDetails{InstitutionType: "clinic"}},
			want: StepItems,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstIncomplete(&tt.cart))
		})
	}
}

func TestCanReachAndClamp(t *testing.T) {
	cart := &model.RFPCart{Items: []model.CartItem{{ProductID: "p1", Quantity: 2}}, Contact: fullContact(), CurrentStep: StepDetails}

	assert.True(t, CanReach(cart, StepItems))
	assert.True(t, CanReach(cart, StepDetails))
	assert.False(t, CanReach(cart, StepReview))
	assert.False(t, CanReach(cart, 0))
	assert.False(t, CanReach(cart, 5))

	cart.Items = nil
	Clamp(cart)
	assert.Equal(t, StepItems, cart.CurrentStep)
}

func TestView(t *testing.T) {
	cart := &model.RFPCart{Items: []model.CartItem{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 3}}}
	v := View(cart)

	assert.Equal(t, 5, v.TotalQuantity)
	require.Len(t, v.Steps, 4)
	assert.True(t, v.Steps[0].Complete)
	assert.True(t, v.Steps[1].Reachable)
	assert.False(t, v.Steps[2].Reachable)
	assert.Equal(t, "review", v.Steps[3].Name)
}

func TestNewReference(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^RFP-20260314-[A-HJ-NP-Z2-9]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref, err := NewReference(now)
		require.NoError(t, err)
		assert.Regexp(t, pattern, ref)
		seen[ref] = true
	}
	assert.Greater(t, len(seen), 45)
}
