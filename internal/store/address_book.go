package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/models"
)

// AddressInput 新增地址参数
type AddressInput struct {
	Tag       string
	Street    string
	Area      string
	City      string
	State     string
	Zip       string
	IsDefault bool
}

// AddressPatch 编辑地址参数，nil 字段保持不变
type AddressPatch struct {
	Tag       *string
	Street    *string
	Area      *string
	City      *string
	State     *string
	Zip       *string
	IsDefault *bool
}

// AddressBook 收货地址簿
// 非空时有且仅有一个默认地址，每次变更后都会恢复该约束
type AddressBook struct {
	mu      sync.RWMutex
	items   []models.Address
	nextSeq int
	newID   func() string
	now     func() time.Time
}

// NewAddressBook 创建空地址簿
func NewAddressBook() *AddressBook {
	return &AddressBook{
		newID: func() string { return "addr_" + uuid.NewString() },
		now:   time.Now,
	}
}

// Load 加载已持久化的地址并修正默认地址
func (b *AddressBook) Load(list []models.Address) {
	items := make([]models.Address, len(list))
	copy(items, list)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SortOrder < items[j].SortOrder
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = items
	b.nextSeq = 0
	for _, item := range items {
		if item.SortOrder >= b.nextSeq {
			b.nextSeq = item.SortOrder + 1
		}
	}
	b.normalize()
}

// List 返回地址副本（稳定顺序）
func (b *AddressBook) List() []models.Address {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.Address, len(b.items))
	copy(out, b.items)
	return out
}

// Len 地址数量
func (b *AddressBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Get 获取地址
func (b *AddressBook) Get(id string) (models.Address, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	idx := b.indexOf(id)
	if idx < 0 {
		return models.Address{}, ErrNotFound
	}
	return b.items[idx], nil
}

// Default 默认地址
func (b *AddressBook) Default() (models.Address, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, item := range b.items {
		if item.IsDefault {
			return item, true
		}
	}
	return models.Address{}, false
}

// Add 新增地址
// 地址簿为空时新地址强制成为默认
func (b *AddressBook) Add(input AddressInput) models.Address {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	addr := models.Address{
		ID:        b.newID(),
		Tag:       normalizeTag(input.Tag),
		Street:    strings.TrimSpace(input.Street),
		Area:      strings.TrimSpace(input.Area),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		Zip:       strings.TrimSpace(input.Zip),
		IsDefault: input.IsDefault || len(b.items) == 0,
		SortOrder: b.nextSeq,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.nextSeq++
	if addr.IsDefault {
		b.clearDefault()
	}
	b.items = append(b.items, addr)
	b.normalize()
	return b.items[len(b.items)-1]
}

// Edit 合并编辑地址
func (b *AddressBook) Edit(id string, patch AddressPatch) (models.Address, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.indexOf(id)
	if idx < 0 {
		return models.Address{}, ErrNotFound
	}
	item := &b.items[idx]
	if patch.Tag != nil {
		item.Tag = normalizeTag(*patch.Tag)
	}
	if patch.Street != nil {
		item.Street = strings.TrimSpace(*patch.Street)
	}
	if patch.Area != nil {
		item.Area = strings.TrimSpace(*patch.Area)
	}
	if patch.City != nil {
		item.City = strings.TrimSpace(*patch.City)
	}
	if patch.State != nil {
		item.State = strings.TrimSpace(*patch.State)
	}
	if patch.Zip != nil {
		item.Zip = strings.TrimSpace(*patch.Zip)
	}
	if patch.IsDefault != nil {
		if *patch.IsDefault {
			b.clearDefault()
		}
		item.IsDefault = *patch.IsDefault
	}
	item.UpdatedAt = b.now()
	b.normalize()
	return b.items[idx], nil
}

// Delete 删除地址，删除默认地址时首个剩余地址成为默认
func (b *AddressBook) Delete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	b.items = append(b.items[:idx], b.items[idx+1:]...)
	b.normalize()
	return nil
}

// SetDefault 设置默认地址
func (b *AddressBook) SetDefault(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	b.clearDefault()
	b.items[idx].IsDefault = true
	b.items[idx].UpdatedAt = b.now()
	return nil
}

// Check 校验默认地址约束
func (b *AddressBook) Check() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.items) == 0 {
		return nil
	}
	if countDefaults(b.items) != 1 {
		return ErrInvariantViolation
	}
	return nil
}

func (b *AddressBook) indexOf(id string) int {
	for i := range b.items {
		if b.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *AddressBook) clearDefault() {
	for i := range b.items {
		b.items[i].IsDefault = false
	}
}

// normalize 恢复"非空即唯一默认"约束：无默认时取首个，多个默认时保留首个
func (b *AddressBook) normalize() {
	if len(b.items) == 0 {
		return
	}
	seen := false
	for i := range b.items {
		if b.items[i].IsDefault {
			if seen {
				b.items[i].IsDefault = false
			}
			seen = true
		}
	}
	if !seen {
		b.items[0].IsDefault = true
	}
}

func countDefaults(items []models.Address) int {
	n := 0
	for _, item := range items {
		if item.IsDefault {
			n++
		}
	}
	return n
}

func normalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	for _, candidate := range []string{constants.AddressTagHome, constants.AddressTagWork, constants.AddressTagOther} {
		if strings.EqualFold(tag, candidate) {
			return candidate
		}
	}
	return constants.AddressTagOther
}
