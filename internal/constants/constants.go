package constants

// 订单状态常量（与前端展示文案保持一致）
const (
	OrderStatusProcessing = "Processing"
	OrderStatusOnTheWay   = "On the way"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// 地址标签常量
const (
	AddressTagHome  = "Home"
	AddressTagWork  = "Work"
	AddressTagOther = "Other"
)

// 商品分类常量
const (
	CategoryFashion     = "Fashion"
	CategoryGrocery     = "Grocery"
	CategoryFood        = "Food"
	CategoryPharmacy    = "Pharmacy"
	CategoryElectronics = "Electronics"
	CategoryBeauty      = "Beauty"
	CategoryHome        = "Home & Kitchen"
	CategoryToys        = "Toys & Baby"
)

// 用户角色常量
const (
	UserRoleCustomer = "customer"
	UserRoleOperator = "operator"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskOrderAdvanceStatus = "order:advance_status"
)

// 事件主题常量
const (
	TopicOrderPlaced        = "order-placed"
	TopicOrderStatusUpdated = "order-status-updated"
)

// OrderNoPrefix 订单编号前缀
const OrderNoPrefix = "ORD"

// IsValidAddressTag 判断地址标签是否合法
func IsValidAddressTag(tag string) bool {
	switch tag {
	case AddressTagHome, AddressTagWork, AddressTagOther:
		return true
	}
	return false
}

// IsValidCategory 判断分类是否合法
func IsValidCategory(category string) bool {
	switch category {
	case CategoryFashion, CategoryGrocery, CategoryFood, CategoryPharmacy,
		CategoryElectronics, CategoryBeauty, CategoryHome, CategoryToys:
		return true
	}
	return false
}

// 登录日志常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"

	LoginLogFailReasonInvalidPhone  = "invalid_phone"
	LoginLogFailReasonInvalidOTP    = "invalid_otp"
	LoginLogFailReasonRateLimited   = "rate_limited"
	LoginLogFailReasonInternalError = "internal_error"
)
