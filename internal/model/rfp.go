package model

import "time"

type RFPStatus string

const (
	RFPStatusNew      RFPStatus = "new"
	RFPStatusInReview RFPStatus = "in_review"
	RFPStatusQuoted   RFPStatus = "quoted"
	RFPStatusClosed   RFPStatus = "closed"
	RFPStatusRejected RFPStatus = "rejected"
)

var rfpTransitions = map[RFPStatus][]RFPStatus{
	RFPStatusNew:      {RFPStatusInReview, RFPStatusRejected},
	RFPStatusInReview: {RFPStatusQuoted, RFPStatusRejected},
	RFPStatusQuoted:   {RFPStatusClosed, RFPStatusRejected},
}

func (s RFPStatus) Valid() bool {
	switch s {
	case RFPStatusNew, RFPStatusInReview, RFPStatusQuoted, RFPStatusClosed, RFPStatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether an RFP in status s may move to next.
// Closed and rejected are terminal.
func (s RFPStatus) CanTransition(next RFPStatus) bool {
	for _, allowed := range rfpTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type RFPUrgency string

const (
	RFPUrgencyNormal RFPUrgency = "normal"
	RFPUrgencyUrgent RFPUrgency = "urgent"
)

type RFPContact struct {
	FullName string `db:"full_name" json:"full_name" binding:"required,max=200"`
	Email    string `db:"email" json:"email" binding:"required,email"`
	Phone    string `db:"phone" json:"phone" binding:"max=50"`
	Company  string `db:"company" json:"company" binding:"required,max=200"`
	JobTitle string `db:"job_title" json:"job_title" binding:"max=200"`
	Country  string `db:"country" json:"country" binding:"required,max=100"`
	City     string `db:"city" json:"city" binding:"max=100"`
}

type RFPDetails struct {
	InstitutionType string     `db:"institution_type" json:"institution_type" binding:"required,max=100"`
	Message         string     `db:"message" json:"message" binding:"max=5000"`
	Budget          *string    `db:"budget" json:"budget"`
	DesiredDate     *time.Time `db:"desired_date" json:"desired_date"`
	Urgency         RFPUrgency `db:"urgency" json:"urgency" binding:"omitempty,oneof=normal urgent"`
}

type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`

	// Display snapshot taken when the item is added.
	SKU      string `json:"sku"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// RFPCart is the anonymous visitor's draft request, kept in Redis.
type RFPCart struct {
	ID          string      `json:"id"`
	Items       []CartItem  `json:"items"`
	Contact     *RFPContact `json:"contact,omitempty"`
	Details     *RFPDetails `json:"details,omitempty"`
	AcceptTerms bool        `json:"accept_terms"`
	CurrentStep int         `json:"current_step"`
	Locale      string      `json:"locale"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type RFPRequest struct {
	BaseModel
	Reference string    `db:"reference" json:"reference"`
	Status    RFPStatus `db:"status" json:"status"`
	Locale    string    `db:"locale" json:"locale"`
	RFPContact
	RFPDetails
	InternalNotes string `db:"internal_notes" json:"internal_notes"`

	Items   []RFPItem          `db:"-" json:"items,omitempty"`
	History []RFPStatusHistory `db:"-" json:"history,omitempty"`
}

type RFPItem struct {
	ID          string  `db:"id" json:"id"`
	RFPID       string  `db:"rfp_id" json:"-"`
	ProductID   *string `db:"product_id" json:"product_id"`
	ProductSKU  string  `db:"product_sku" json:"product_sku"`
	ProductName string  `db:"product_name" json:"product_name"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Notes       string  `db:"notes" json:"notes"`
}

type RFPStatusHistory struct {
	ID         string    `db:"id" json:"id"`
	RFPID      string    `db:"rfp_id" json:"-"`
	FromStatus RFPStatus `db:"from_status" json:"from_status"`
	ToStatus   RFPStatus `db:"to_status" json:"to_status"`
	Note       string    `db:"note" json:"note"`
	ChangedBy  string    `db:"changed_by" json:"changed_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RFPEvent is published on the RFP topic.
type RFPEvent struct {
	Type       string    `json:"type"`
	RFPID      string    `json:"rfp_id"`
	Reference  string    `json:"reference"`
	Email      string    `json:"email"`
	ItemCount  int       `json:"item_count"`
	Locale     string    `json:"locale"`
	OccurredAt time.Time `json:"occurred_at"`
}

const RFPEventSubmitted = "rfp.submitted"
