package rfp

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp/dto"
)

const (
	StepItems   = 1
	StepContact = 2
	StepDetails = 3
	StepReview  = 4
)

var stepNames = map[int]string{
	StepItems:   "items",
	StepContact: "contact",
	StepDetails: "details",
	StepReview:  "review",
}

func ContactComplete(c *model.RFPContact) bool {
	return c != nil &&
		strings.TrimSpace(c.FullName) != "" &&
		strings.TrimSpace(c.Email) != "" &&
		strings.TrimSpace(c.Company) != "" &&
		strings.TrimSpace(c.Country) != ""
}

func DetailsComplete(d *model.RFPDetails) bool {
	return d != nil && strings.TrimSpace(d.InstitutionType) != ""
}

// StepComplete reports whether step holds everything it asks for. Review is
// complete once the terms are accepted.
func StepComplete(cart *model.RFPCart, step int) bool {
	switch step {
	case StepItems:
		return len(cart.Items) > 0
	case StepContact:
		return ContactComplete(cart.Contact)
	case StepDetails:
		return DetailsComplete(cart.Details)
	case StepReview:
		return cart.AcceptTerms
	}
	return false
}

// FirstIncomplete returns the furthest step the visitor may open: the first
// data step still missing, or review when items, contact and details are done.
func FirstIncomplete(cart *model.RFPCart) int {
	for step := StepItems; step < StepReview; step++ {
		if !StepComplete(cart, step) {
			return step
		}
	}
	return StepReview
}

func CanReach(cart *model.RFPCart, step int) bool {
	return step >= StepItems && step <= StepReview && step <= FirstIncomplete(cart)
}

// Clamp pulls CurrentStep back when an earlier step became incomplete.
func Clamp(cart *model.RFPCart) {
	if cart.CurrentStep < StepItems {
		cart.CurrentStep = StepItems
	}
	if limit := FirstIncomplete(cart); cart.CurrentStep > limit {
		cart.CurrentStep = limit
	}
}

func View(cart *model.RFPCart) *dto.CartView {
	v := &dto.CartView{RFPCart: cart, Steps: make([]dto.Step, 0, StepReview)}
	limit := FirstIncomplete(cart)
	for step := StepItems; step <= StepReview; step++ {
		v.Steps = append(v.Steps, dto.Step{
			Number:    step,
			Name:      stepNames[step],
			Complete:  StepComplete(cart, step),
			Reachable: step <= limit,
		})
	}
	for _, item := range cart.Items {
		v.TotalQuantity += item.Quantity
	}
	return v
}

// referenceAlphabet leaves out 0/O and 1/I.
const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewReference returns a human readable id such as RFP-20260314-K7Q2ZD.
func NewReference(now time.Time) (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return fmt.Sprintf("RFP-%s-%s", now.UTC().Format("20060102"), buf), nil
}
