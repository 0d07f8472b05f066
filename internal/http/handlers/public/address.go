package public

import (
	"strconv"
	"strings"

	"github.com/spirecart/internal/http/response"
	"github.com/spirecart/internal/store"

	"github.com/gin-gonic/gin"
)

// AddressRequest 新增地址请求
type AddressRequest struct {
	Tag       string `json:"tag"`
	Street    string `json:"street" binding:"required"`
	Area      string `json:"area"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	IsDefault bool   `json:"is_default"`
}

// AddressPatchRequest 编辑地址请求，缺省字段保持不变
type AddressPatchRequest struct {
	Tag       *string `json:"tag"`
	Street    *string `json:"street"`
	Area      *string `json:"area"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Zip       *string `json:"zip"`
	IsDefault *bool   `json:"is_default"`
}

// ListAddresses 地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, h.AddressService.List(c.Request.Context(), uid))
}

// CreateAddress 新增地址
func (h *Handler) CreateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Street) == "" {
		respondError(c, response.CodeBadRequest, "error.address_invalid", nil)
		return
	}
	addr := h.AddressService.Add(c.Request.Context(), uid, store.AddressInput{
		Tag:       req.Tag,
		Street:    strings.TrimSpace(req.Street),
		Area:      strings.TrimSpace(req.Area),
		City:      strings.TrimSpace(req.City),
		State:     strings.TrimSpace(req.State),
		Zip:       strings.TrimSpace(req.Zip),
		IsDefault: req.IsDefault,
	})
	response.Success(c, addr)
}

// UpdateAddress 编辑地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if req.Street != nil && strings.TrimSpace(*req.Street) == "" {
		respondError(c, response.CodeBadRequest, "error.address_invalid", nil)
		return
	}
	addr, err := h.AddressService.Edit(c.Request.Context(), uid, c.Param("id"), store.AddressPatch{
		Tag:       req.Tag,
		Street:    req.Street,
		Area:      req.Area,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, addr)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.AddressService.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, h.AddressService.List(c.Request.Context(), uid))
}

// SetDefaultAddress 设为默认地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.AddressService.SetDefault(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, h.AddressService.List(c.Request.Context(), uid))
}

// DetectAddress 根据坐标生成候选地址
func (h *Handler) DetectAddress(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(c.Query("lat")), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(c.Query("lng")), 64)
	if latErr != nil || lngErr != nil {
		respondError(c, response.CodeBadRequest, "error.coordinates_invalid", nil)
		return
	}
	input, err := h.AddressService.Detect(lat, lng)
	if err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, gin.H{
		"tag":    input.Tag,
		"street": input.Street,
		"area":   input.Area,
		"city":   input.City,
		"state":  input.State,
		"zip":    input.Zip,
	})
}
