package billing

import "github.com/shopspring/decimal"

// SplitVAT splits a VAT-inclusive gross amount into its net and VAT parts:
//
//	net = gross / (100 + pct) * 100
//	vat = gross - net
//
// Both outputs are rounded to two decimals, half away from zero. The VAT
// part is computed as the rounded gross minus the rounded net, so
// net + vat always equals the gross rounded to two decimals.
func SplitVAT(gross, pct decimal.Decimal) (net, vat decimal.Decimal) {
	hundred := decimal.NewFromInt(100)
	net = gross.Mul(hundred).Div(hundred.Add(pct)).Round(2)
	vat = gross.Round(2).Sub(net)
	return net, vat
}
