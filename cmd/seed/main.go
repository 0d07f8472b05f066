package main

import (
	"github.com/spirecart/internal/config"
	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/logger"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const demoPhone = "9876543210"

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加商品
	productRepo := repository.NewProductRepository(models.DB)
	products := seedProducts()
	for i := range products {
		products[i].SortOrder = len(products) - i
		if err := productRepo.Upsert(&products[i]); err != nil {
			stdLog.Printf("Failed to upsert product %s: %v", products[i].ID, err)
			continue
		}
		stdLog.Printf("Upserted product: %s", products[i].ID)
	}

	// 演示用户及地址
	userRepo := repository.NewUserRepository(models.DB)
	user, err := userRepo.GetByPhone(demoPhone)
	if err != nil {
		stdLog.Fatalf("Failed to load demo user: %v", err)
	}
	if user == nil {
		user = &models.User{Phone: demoPhone, Name: "Spire User", Email: "demo@spirecart.local", Role: constants.UserRoleCustomer}
		if err := userRepo.Create(user); err != nil {
			stdLog.Fatalf("Failed to create demo user: %v", err)
		}
		stdLog.Printf("Created demo user: %s", demoPhone)
	} else {
		stdLog.Printf("Demo user already exists: %s", demoPhone)
	}

	addressRepo := repository.NewAddressRepository(models.DB)
	existing, err := addressRepo.ListByUser(user.ID)
	if err != nil {
		stdLog.Fatalf("Failed to load demo addresses: %v", err)
	}
	if len(existing) > 0 {
		stdLog.Printf("Demo addresses already exist: %d", len(existing))
	} else {
		addresses := []models.Address{
			{ID: uuid.NewString(), Tag: constants.AddressTagHome, Street: "221B, 12th Main Road", Area: "Indiranagar", City: "Bengaluru", State: "Karnataka", Zip: "560038", IsDefault: true, SortOrder: 0},
			{ID: uuid.NewString(), Tag: constants.AddressTagWork, Street: "Tower B, Embassy Tech Village", Area: "Bellandur", City: "Bengaluru", State: "Karnataka", Zip: "560103", SortOrder: 1},
		}
		if err := addressRepo.ReplaceByUser(user.ID, addresses); err != nil {
			stdLog.Fatalf("Failed to create demo addresses: %v", err)
		}
		stdLog.Printf("Created demo addresses: %d", len(addresses))
	}

	stdLog.Println("Seed data created successfully!")
}

func money(v string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(v))
}

func moneyPtr(v string) *models.Money {
	m := money(v)
	return &m
}

func boolPtr(v bool) *bool {
	return &v
}

func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:            "fashion-oversized-tee",
			Name:          "Oversized Cotton Tee",
			Description:   "Heavyweight 240 GSM cotton tee with a relaxed drop-shoulder fit.",
			Seller:        "Urban Threads",
			Brand:         "Urban Threads",
			Price:         money("599"),
			OriginalPrice: moneyPtr("999"),
			Discount:      40,
			Rating:        4.4,
			Reviews:       1289,
			Image:         "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=800",
			Category:      constants.CategoryFashion,
			SubCategory:   "T-Shirts",
			DeliveryTime:  "2 days",
			IsPrime:       true,
			Colors:        models.StringArray{"Black", "White", "Olive"},
			Sizes:         models.StringArray{"S", "M", "L", "XL"},
			IsActive:      true,
		},
		{
			ID:           "fashion-denim-jacket",
			Name:         "Classic Denim Jacket",
			Description:  "Mid-wash denim jacket with button cuffs.",
			Seller:       "Urban Threads",
			Brand:        "Denimworks",
			Price:        money("1899"),
			Rating:       4.2,
			Reviews:      412,
			Image:        "https://images.unsplash.com/photo-1576871337622-98d48d1cf531?w=800",
			Category:     constants.CategoryFashion,
			SubCategory:  "Jackets",
			DeliveryTime: "3 days",
			Colors:       models.StringArray{"Blue"},
			Sizes:        models.StringArray{"M", "L", "XL"},
			IsActive:     true,
		},
		{
			ID:           "grocery-basmati-rice",
			Name:         "Aged Basmati Rice",
			Description:  "Long grain basmati rice aged for two years.",
			Seller:       "FreshMart",
			Price:        money("189"),
			Rating:       4.6,
			Reviews:      3021,
			Image:        "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=800",
			Category:     constants.CategoryGrocery,
			SubCategory:  "Staples",
			DeliveryTime: "10 mins",
			IsPrime:      true,
			Weight:       "1 kg",
			IsActive:     true,
		},
		{
			ID:           "grocery-alphonso-mango",
			Name:         "Alphonso Mangoes",
			Description:  "Ratnagiri Alphonso mangoes, hand picked.",
			Seller:       "FreshMart",
			Price:        money("649.50"),
			Rating:       4.8,
			Reviews:      876,
			Image:        "https://images.unsplash.com/photo-1553279768-865429fa0078?w=800",
			Category:     constants.CategoryGrocery,
			SubCategory:  "Fruits",
			DeliveryTime: "10 mins",
			Weight:       "6 pcs",
			IsActive:     true,
		},
		{
			ID:             "food-paneer-tikka",
			Name:           "Paneer Tikka",
			Description:    "Charcoal grilled cottage cheese with mint chutney.",
			Price:          money("280"),
			Rating:         4.5,
			Reviews:        2310,
			Image:          "https://images.unsplash.com/photo-1599487488170-d11ec9c172f0?w=800",
			Category:       constants.CategoryFood,
			DeliveryTime:   "30 mins",
			RestaurantName: "Punjab Grill",
			Cuisine:        "North Indian",
			IsVeg:          boolPtr(true),
			IsActive:       true,
		},
		{
			ID:             "food-chicken-biryani",
			Name:           "Hyderabadi Chicken Biryani",
			Description:    "Dum cooked biryani with raita and salan.",
			Price:          money("349"),
			Rating:         4.7,
			Reviews:        5120,
			Image:          "https://images.unsplash.com/photo-1563379091339-03b21ab4a4f8?w=800",
			Category:       constants.CategoryFood,
			DeliveryTime:   "35 mins",
			RestaurantName: "Paradise Biryani",
			Cuisine:        "Hyderabadi",
			IsVeg:          boolPtr(false),
			IsActive:       true,
		},
		{
			ID:           "pharmacy-paracetamol",
			Name:         "Paracetamol 650 mg",
			Description:  "Strip of 15 tablets for fever and mild pain.",
			Seller:       "HealthPlus Pharmacy",
			Price:        money("32.40"),
			Rating:       4.3,
			Reviews:      640,
			Image:        "https://images.unsplash.com/photo-1584308666744-24d5c474f2ae?w=800",
			Category:     constants.CategoryPharmacy,
			DeliveryTime: "20 mins",
			IsActive:     true,
		},
		{
			ID:                   "pharmacy-amoxicillin",
			Name:                 "Amoxicillin 500 mg",
			Description:          "Antibiotic capsules, strip of 10.",
			Seller:               "HealthPlus Pharmacy",
			Price:                money("118"),
			Rating:               4.1,
			Reviews:              98,
			Image:                "https://images.unsplash.com/photo-1471864190281-a93a3070b6de?w=800",
			Category:             constants.CategoryPharmacy,
			DeliveryTime:         "20 mins",
			RequiresPrescription: true,
			IsActive:             true,
		},
		{
			ID:            "electronics-anc-earbuds",
			Name:          "ANC Wireless Earbuds",
			Description:   "Active noise cancelling earbuds with 30 hour battery.",
			Details:       "Bluetooth 5.3, IPX4, dual device pairing.",
			Seller:        "GadgetHub",
			Brand:         "Sonique",
			Price:         money("2999"),
			OriginalPrice: moneyPtr("4999"),
			Discount:      40,
			Rating:        4.3,
			Reviews:       8890,
			Image:         "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
			Category:      constants.CategoryElectronics,
			DeliveryTime:  "1 day",
			IsPrime:       true,
			Colors:        models.StringArray{"Black", "Ivory"},
			IsActive:      true,
		},
		{
			ID:           "beauty-vitamin-c-serum",
			Name:         "Vitamin C Face Serum",
			Description:  "10% vitamin C serum for brighter skin.",
			Seller:       "GlowLab",
			Brand:        "GlowLab",
			Price:        money("545"),
			Rating:       4.4,
			Reviews:      1570,
			Image:        "https://images.unsplash.com/photo-1620916566398-39f1143ab7be?w=800",
			Category:     constants.CategoryBeauty,
			DeliveryTime: "2 days",
			Weight:       "30 ml",
			IsActive:     true,
		},
		{
			ID:           "home-cast-iron-tawa",
			Name:         "Pre-seasoned Cast Iron Tawa",
			Description:  "12 inch cast iron tawa for dosa and roti.",
			Seller:       "KitchenKraft",
			Price:        money("899"),
			Rating:       4.5,
			Reviews:      733,
			Image:        "https://images.unsplash.com/photo-1556911220-bff31c812dba?w=800",
			Category:     constants.CategoryHome,
			DeliveryTime: "3 days",
			IsActive:     true,
		},
		{
			ID:           "toys-wooden-blocks",
			Name:         "Wooden Stacking Blocks",
			Description:  "50 piece non-toxic wooden block set for toddlers.",
			Seller:       "LittleLeaf",
			Price:        money("749"),
			Rating:       4.6,
			Reviews:      412,
			Image:        "https://images.unsplash.com/photo-1587654780291-39c9404d746b?w=800",
			Category:     constants.CategoryToys,
			DeliveryTime: "2 days",
			IsActive:     true,
		},
	}
}
