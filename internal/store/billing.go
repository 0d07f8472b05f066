package store

import "github.com/shopspring/decimal"

// FeePolicy 结算费用策略
type FeePolicy struct {
	PlatformFee      decimal.Decimal
	DeliveryFee      decimal.Decimal
	TreeContribution decimal.Decimal
	GSTRate          decimal.Decimal
}

// DefaultFeePolicy 默认费用：平台费 5、配送费 10、植树捐助 3、GST 5%
func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		PlatformFee:      decimal.NewFromInt(5),
		DeliveryFee:      decimal.NewFromInt(10),
		TreeContribution: decimal.NewFromInt(3),
		GSTRate:          decimal.NewFromFloat(0.05),
	}
}

// Breakdown 结算明细（未取整）
type Breakdown struct {
	ItemSubtotal     decimal.Decimal
	PlatformFee      decimal.Decimal
	DeliveryFee      decimal.Decimal
	TreeContribution decimal.Decimal
	GST              decimal.Decimal
	GrandTotal       decimal.Decimal
}

// RoundedBreakdown 取整后的展示明细
type RoundedBreakdown struct {
	ItemSubtotal     int64 `json:"item_subtotal"`
	PlatformFee      int64 `json:"platform_fee"`
	DeliveryFee      int64 `json:"delivery_fee"`
	TreeContribution int64 `json:"tree_contribution"`
	GST              int64 `json:"gst"`
	GrandTotal       int64 `json:"grand_total"`
}

// Calculate 计算结算明细
// GST 只对商品小计计税，各费用不参与；计算过程不做中间取整
func Calculate(itemSubtotal decimal.Decimal, policy FeePolicy) Breakdown {
	gst := itemSubtotal.Mul(policy.GSTRate)
	grand := itemSubtotal.
		Add(policy.PlatformFee).
		Add(policy.DeliveryFee).
		Add(policy.TreeContribution).
		Add(gst)
	return Breakdown{
		ItemSubtotal:     itemSubtotal,
		PlatformFee:      policy.PlatformFee,
		DeliveryFee:      policy.DeliveryFee,
		TreeContribution: policy.TreeContribution,
		GST:              gst,
		GrandTotal:       grand,
	}
}

// Rounded 各项按整数货币单位四舍五入，仅用于展示
func (b Breakdown) Rounded() RoundedBreakdown {
	return RoundedBreakdown{
		ItemSubtotal:     roundUnit(b.ItemSubtotal),
		PlatformFee:      roundUnit(b.PlatformFee),
		DeliveryFee:      roundUnit(b.DeliveryFee),
		TreeContribution: roundUnit(b.TreeContribution),
		GST:              roundUnit(b.GST),
		GrandTotal:       roundUnit(b.GrandTotal),
	}
}

func roundUnit(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
