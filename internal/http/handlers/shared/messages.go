package shared

import "fmt"

// messages 错误消息表（key -> 展示文案）
var messages = map[string]string{
	"error.bad_request":            "Invalid request",
	"error.unauthorized":           "Please sign in to continue",
	"error.forbidden":              "You do not have permission to perform this action",
	"error.auth_header_missing":    "Missing Authorization header",
	"error.auth_header_invalid":    "Authorization header must be a Bearer token",
	"error.jwt_secret_missing":     "Authentication is not configured",
	"error.token_invalid":          "Session expired, please sign in again",
	"error.user_id_invalid":        "Invalid user id",
	"error.user_id_type_invalid":   "Invalid user id type",
	"error.user_not_found":         "User not found",
	"error.phone_invalid":          "Please enter a valid 10-digit mobile number",
	"error.otp_invalid":            "Invalid OTP",
	"error.login_failed":           "Login failed, please try again",
	"error.rate_limited":           "Too many attempts, please retry in %d seconds",
	"error.rate_limit_unavailable": "Rate limiter unavailable",
	"error.product_not_found":      "Product not found",
	"error.product_fetch_failed":   "Failed to load products",
	"error.variant_unavailable":    "Selected color or size is not available",
	"error.cart_item_invalid":      "Invalid cart item",
	"error.cart_empty":             "Your cart is empty",
	"error.amount_invalid":         "Invalid amount",
	"error.address_not_found":      "Address not found",
	"error.address_invalid":        "Street is required",
	"error.coordinates_invalid":    "Invalid coordinates",
	"error.order_not_found":        "Order not found",
	"error.order_status_invalid":   "Order status cannot be changed",
	"error.order_create_failed":    "Failed to place order",
	"error.order_fetch_failed":     "Failed to load orders",
	"error.order_update_failed":    "Failed to update order",
	"error.wishlist_update_failed": "Failed to update wishlist",
	"error.login_log_fetch_failed": "Failed to load login history",
	"error.internal":               "Something went wrong",
}

// T 获取消息文案，未知 key 原样返回
func T(key string) string {
	if msg, ok := messages[key]; ok {
		return msg
	}
	return key
}

// Sprintf 获取带参数的消息文案
func Sprintf(key string, args ...interface{}) string {
	return fmt.Sprintf(T(key), args...)
}
