package entity

import (
	"time"
)

type SwapMode string

const (
	SwapModeSwap  SwapMode = "Swap"
	SwapModeCoins SwapMode = "Coins"
)

func (m SwapMode) Valid() bool {
	return m == SwapModeSwap || m == SwapModeCoins
}

type SwapStatus string

const (
	SwapPending   SwapStatus = "Pending"
	SwapAccepted  SwapStatus = "Accepted"
	SwapRejected  SwapStatus = "Rejected"
	SwapCompleted SwapStatus = "Completed"
)

func (s SwapStatus) Valid() bool {
	switch s {
	case SwapPending, SwapAccepted, SwapRejected, SwapCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s SwapStatus) Terminal() bool {
	return s == SwapRejected || s == SwapCompleted
}

var swapTransitions = map[SwapStatus][]SwapStatus{
	SwapPending:  {SwapAccepted, SwapRejected, SwapCompleted},
	SwapAccepted: {SwapRejected, SwapCompleted},
}

// CanTransitionSwap reports whether a request may move from one status to another.
// Completed is reachable straight from Pending.
func CanTransitionSwap(from, to SwapStatus) bool {
	for _, next := range swapTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type SwapRequest struct {
	ID          string     `json:"id" firestore:"id" gorm:"primaryKey;size:64"`
	ProductID   string     `json:"productId" firestore:"productId" gorm:"index;size:64;not null"`
	RequestedBy string     `json:"requestedBy" firestore:"requestedBy" gorm:"index;size:64;not null"`
	Mode        SwapMode   `json:"mode" firestore:"mode" gorm:"size:16"`
	SwapImage   string     `json:"swapImage,omitempty" firestore:"swapImage,omitempty"`
	Status      SwapStatus `json:"status" firestore:"status" gorm:"size:16"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" firestore:"updatedAt"`
}

// SwapRequestWithRequester is the per-product listing row.
type SwapRequestWithRequester struct {
	*SwapRequest
	Requester *UserSummary `json:"requester,omitempty"`
}

// SwapRequestWithProduct is the per-user listing row.
type SwapRequestWithProduct struct {
	*SwapRequest
	Product *Product `json:"product,omitempty"`
}
