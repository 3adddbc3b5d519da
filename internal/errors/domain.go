package errors

var (
	ErrServerUnreachable = &DomainError{
		Code:    "NETWORK_UNREACHABLE",
		Message: "impossible de se connecter au serveur",
	}
	ErrServerRejected = &DomainError{
		Code:    "SERVER_REJECTED",
		Message: "requête refusée par le serveur",
	}
	ErrValidationFailed = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "format invalide",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "montant invalide",
	}
	ErrOperatorRequired = &DomainError{
		Code:    "OPERATOR_REQUIRED",
		Message: "veuillez sélectionner un opérateur",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "solde insuffisant - veuillez recharger",
	}
	ErrPaymentInFlight = &DomainError{
		Code:    "PAYMENT_IN_FLIGHT",
		Message: "un paiement est déjà en cours",
	}
	ErrTransactionNotPayable = &DomainError{
		Code:    "TRANSACTION_NOT_PAYABLE",
		Message: "la transaction ne peut plus être payée",
	}
	ErrNoTransaction = &DomainError{
		Code:    "NO_TRANSACTION",
		Message: "aucune transaction chargée",
	}
	ErrDeviceUnavailable = &DomainError{
		Code:    "DEVICE_UNAVAILABLE",
		Message: "impossible d'accéder à la caméra",
	}
)

// Unreachable wraps a transport failure as a NETWORK_UNREACHABLE error.
func Unreachable(err error) *DomainError {
	return ErrServerUnreachable.WithMessage("impossible de se connecter au serveur: %v", err)
}

// Rejected wraps a server-provided failure message as SERVER_REJECTED.
// The message is surfaced to the user verbatim.
func Rejected(message string) *DomainError {
	if message == "" {
		return ErrServerRejected
	}
	return ErrServerRejected.WithMessage("%s", message)
}
