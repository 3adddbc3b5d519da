package gateway

import "ctlpay/internal/models"

// Per-endpoint response envelopes. Every endpoint carries a success flag
// and an optional human-readable error used verbatim in failure messages.
// Money fields are pointers so that a "successful" response missing its
// figure is distinguishable from a genuine zero and can be rejected.

type healthResponse struct {
	Status string `json:"status"`
}

type transactionResponse struct {
	Success bool                `json:"success"`
	Data    *models.Transaction `json:"data"`
	Error   string              `json:"error"`
}

type payResponse struct {
	Success    bool                `json:"success"`
	Data       *models.Transaction `json:"data"`
	NewBalance *int64              `json:"nouveauSoldeUtilisateur"`
	Error      string              `json:"error"`
}

type balanceResponse struct {
	Success bool   `json:"success"`
	Balance *int64 `json:"solde"`
	Error   string `json:"error"`
}

type rechargeRequest struct {
	Amount   int64  `json:"montant"`
	Operator string `json:"operateur,omitempty"`
}

type rechargeResponse struct {
	Success    bool   `json:"success"`
	NewBalance *int64 `json:"nouveauSolde"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}
