package models

// Operator is a mobile-money provider used for top-ups. The fee rate is
// display-time only: the server owns the real accounting and the client
// never applies the rate to its cached balance.
type Operator struct {
	Key         string  `json:"key" yaml:"key"`
	DisplayName string  `json:"nom" yaml:"nom"`
	FeeRate     float64 `json:"frais" yaml:"frais"`
	Icon        string  `json:"logo" yaml:"logo"`
	AccentColor string  `json:"couleur" yaml:"couleur"`
}

// Valid reports whether the operator carries a usable fee rate (in [0, 1)).
func (o *Operator) Valid() bool {
	return o.Key != "" && o.FeeRate >= 0 && o.FeeRate < 1
}

// FeeQuote is the pre-submission top-up summary shown before confirming.
type FeeQuote struct {
	Operator string `json:"operateur"`
	Amount   int64  `json:"montant"`
	Fee      int64  `json:"frais"`
	Total    int64  `json:"total"`
}
