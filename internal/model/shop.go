package model

// Shop item categories.
const (
	ShopCategoryReward = "reward"
	ShopCategoryBadge  = "badge"
	ShopCategoryTheme  = "theme"
)

// ShopItem is a purchasable entry in the static shop catalog.
type ShopItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
}

// ShopCatalog returns the built-in shop items. Like the topic catalog
// this is static configuration, not persisted state.
func ShopCatalog() []ShopItem {
	return []ShopItem{
		{ID: "coffee", Name: "Coffee Coupon", Description: "A coupon redeemable at any cafe", Price: 100, Icon: "☕", Category: ShopCategoryReward},
		{ID: "badge-explorer", Name: "Explorer Badge", Description: "For users with 10+ searches", Price: 200, Icon: "🏅", Category: ShopCategoryBadge},
		{ID: "badge-learner", Name: "Learner Badge", Description: "For users with 5+ goal check-ins", Price: 300, Icon: "🎓", Category: ShopCategoryBadge},
		{ID: "theme-dark", Name: "Dark Theme", Description: "Switch to the dark color theme", Price: 150, Icon: "🌙", Category: ShopCategoryTheme},
		{ID: "premium", Name: "Premium Membership", Description: "One month of premium features", Price: 500, Icon: "⭐", Category: ShopCategoryReward},
	}
}

// FindShopItem looks an item up in the catalog by id.
func FindShopItem(id string) (ShopItem, bool) {
	for _, item := range ShopCatalog() {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}
