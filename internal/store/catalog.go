package store

import (
	"strings"

	"github.com/spirecart/internal/models"
)

// CatalogFilter 商品目录筛选条件
type CatalogFilter struct {
	Query    string
	Category string
	Seller   string
}

// Catalog 只读商品目录
// 构建后不可变，可被多个会话并发读取
type Catalog struct {
	products []models.Product
	byID     map[string]int
}

// NewCatalog 基于商品列表构建目录，重复 ID 以首次出现为准
func NewCatalog(products []models.Product) *Catalog {
	c := &Catalog{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			continue
		}
		if _, exists := c.byID[id]; exists {
			continue
		}
		c.byID[id] = len(c.products)
		c.products = append(c.products, cloneProduct(p))
	}
	return c
}

// Len 商品数量
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// Get 按 ID 获取商品
func (c *Catalog) Get(id string) (models.Product, bool) {
	if c == nil {
		return models.Product{}, false
	}
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return models.Product{}, false
	}
	return cloneProduct(c.products[idx]), true
}

// All 返回全部商品
func (c *Catalog) All() []models.Product {
	return c.Search(CatalogFilter{})
}

// Search 按关键字、分类、卖家筛选商品，保持目录原始顺序
func (c *Catalog) Search(filter CatalogFilter) []models.Product {
	if c == nil {
		return []models.Product{}
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	category := strings.TrimSpace(filter.Category)
	seller := strings.TrimSpace(filter.Seller)

	result := make([]models.Product, 0)
	for i := range c.products {
		p := &c.products[i]
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if seller != "" && !strings.EqualFold(p.Seller, seller) && !strings.EqualFold(p.RestaurantName, seller) {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		result = append(result, cloneProduct(*p))
	}
	return result
}

func matchesQuery(p *models.Product, query string) bool {
	for _, field := range p.SearchText() {
		if field != "" && strings.Contains(field, query) {
			return true
		}
	}
	return false
}

func cloneProduct(p models.Product) models.Product {
	out := p
	out.Colors = p.Colors.Clone()
	out.Sizes = p.Sizes.Clone()
	if p.OriginalPrice != nil {
		price := *p.OriginalPrice
		out.OriginalPrice = &price
	}
	if p.IsVeg != nil {
		veg := *p.IsVeg
		out.IsVeg = &veg
	}
	return out
}
