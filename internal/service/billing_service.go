package service

import (
	"fmt"
	"strings"

	"github.com/spirecart/internal/config"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/store"

	"github.com/shopspring/decimal"
)

// BillingView 结算明细响应
type BillingView struct {
	ItemSubtotal     models.Money           `json:"item_subtotal"`
	PlatformFee      models.Money           `json:"platform_fee"`
	DeliveryFee      models.Money           `json:"delivery_fee"`
	TreeContribution models.Money           `json:"tree_contribution"`
	GST              models.Money           `json:"gst"`
	GrandTotal       models.Money           `json:"grand_total"`
	Display          store.RoundedBreakdown `json:"display"`
}

// NewBillingView 转换结算明细
func NewBillingView(bill store.Breakdown) BillingView {
	return BillingView{
		ItemSubtotal:     models.NewMoneyFromDecimal(bill.ItemSubtotal),
		PlatformFee:      models.NewMoneyFromDecimal(bill.PlatformFee),
		DeliveryFee:      models.NewMoneyFromDecimal(bill.DeliveryFee),
		TreeContribution: models.NewMoneyFromDecimal(bill.TreeContribution),
		GST:              models.NewMoneyFromDecimal(bill.GST),
		GrandTotal:       models.NewMoneyFromDecimal(bill.GrandTotal),
		Display:          bill.Rounded(),
	}
}

// FeePolicyFromConfig 解析费用配置，空值使用默认费用
func FeePolicyFromConfig(cfg config.BillingConfig) (store.FeePolicy, error) {
	policy := store.DefaultFeePolicy()
	fields := []struct {
		name  string
		raw   string
		field *decimal.Decimal
	}{
		{"platform_fee", cfg.PlatformFee, &policy.PlatformFee},
		{"delivery_fee", cfg.DeliveryFee, &policy.DeliveryFee},
		{"tree_contribution", cfg.TreeContribution, &policy.TreeContribution},
		{"gst_rate", cfg.GSTRate, &policy.GSTRate},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil || value.IsNegative() {
			return store.FeePolicy{}, fmt.Errorf("%w: %s=%q", ErrInvalidBillingPolicy, f.name, f.raw)
		}
		*f.field = value
	}
	return policy, nil
}

// BillingService 结算预览
type BillingService struct {
	policy store.FeePolicy
}

// NewBillingService 创建结算服务
func NewBillingService(policy store.FeePolicy) *BillingService {
	return &BillingService{policy: policy}
}

// Policy 当前费用策略
func (s *BillingService) Policy() store.FeePolicy {
	return s.policy
}

// Preview 按商品小计计算结算明细
func (s *BillingService) Preview(subtotal string) (BillingView, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(subtotal))
	if err != nil || amount.IsNegative() {
		return BillingView{}, ErrInvalidAmount
	}
	return NewBillingView(store.Calculate(amount, s.policy)), nil
}
