package transaction

import "ctlpay/internal/models"

// State is the local lifecycle of the current purchase attempt.
type State string

const (
	// StateIdle means no transaction is loaded.
	StateIdle State = "idle"
	// StateLoading means a lookup is in flight.
	StateLoading State = "loading"
	// StateLoaded means a transaction is displayed and may be payable.
	StateLoaded State = "loaded"
	// StatePaying means a payment request is in flight.
	StatePaying State = "paying"
	// StateConfirmed means the payment succeeded and awaits acknowledgement.
	StateConfirmed State = "confirmed"
)

// Snapshot is a read-only view of the controller for the rendering layer.
type Snapshot struct {
	State       State               `json:"etat"`
	Transaction *models.Transaction `json:"transaction,omitempty"`
	StatusLabel string              `json:"statutLibelle,omitempty"`
	Payable     bool                `json:"payable"`
}
