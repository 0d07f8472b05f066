package models

import "time"

// Order 订单表（下单时刻的不可变快照，仅状态可流转）
type Order struct {
	ID               uint       `gorm:"primarykey" json:"-"`                                            // 主键
	OrderNo          string     `gorm:"uniqueIndex;type:varchar(64);not null" json:"id"`                // 订单编号
	UserID           uint       `gorm:"index;not null" json:"-"`                                        // 用户ID
	Status           string     `gorm:"type:varchar(32);index;not null" json:"status"`                  // 订单状态
	DateLabel        string     `gorm:"type:varchar(64)" json:"date"`                                   // 下单时间（展示格式）
	ItemSubtotal     Money      `gorm:"type:decimal(20,4);not null;default:0" json:"item_subtotal"`     // 商品小计
	DeliveryFee      Money      `gorm:"type:decimal(20,4);not null;default:0" json:"delivery_fee"`      // 配送费
	PlatformFee      Money      `gorm:"type:decimal(20,4);not null;default:0" json:"platform_fee"`      // 平台费
	GST              Money      `gorm:"column:gst;type:decimal(20,4);not null;default:0" json:"gst"`    // 商品及服务税
	TreeContribution Money      `gorm:"type:decimal(20,4);not null;default:0" json:"tree_contribution"` // 植树捐助
	Total            Money      `gorm:"type:decimal(20,4);not null;default:0" json:"total"`             // 实付总额
	PlacedAt         time.Time  `gorm:"index" json:"placed_at"`                                         // 下单时间
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`                                         // 取消时间
	DeliveredAt      *time.Time `json:"delivered_at,omitempty"`                                         // 送达时间
	CreatedAt        time.Time  `json:"-"`                                                              // 创建时间
	UpdatedAt        time.Time  `json:"-"`                                                              // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"` // 订单项快照
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// Clone 深拷贝订单及其订单项
func (o Order) Clone() Order {
	out := o
	out.CancelledAt = cloneTimePtr(o.CancelledAt)
	out.DeliveredAt = cloneTimePtr(o.DeliveredAt)
	if o.Items != nil {
		out.Items = make([]OrderItem, len(o.Items))
		for i := range o.Items {
			out.Items[i] = o.Items[i].Clone()
		}
	}
	return out
}

// ItemCount 订单商品件数
func (o Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

func cloneTimePtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
