/*
Package wallet owns the client-side cached balance.

The cached figure is a mirror, never a source of truth: it is always
overwritten wholesale from the latest server response and never incremented
or decremented locally. The operator fee schedule is used only to build the
pre-submission quote shown to the user; the server computes the real
post-top-up balance.

Usage:

	svc := wallet.NewService(gateway, monitor, operators, metrics)

	// Pre-submission summary
	quote, err := svc.Quote(5000, "orange")

	// Top up through a mobile-money operator
	result, err := svc.TopUp(ctx, 5000, "orange")

	// After a successful payment
	svc.ApplyPaymentResult(newBalance)

Local rejections (non-positive amount, unknown operator, offline) never
reach the network.
*/
package wallet
