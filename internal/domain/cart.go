package domain

// CartItem is one line of the cart. The ID is generated when the item is
// added, not taken from the product, so adding the same product twice
// yields two distinct entries. Price keeps the product's formatted currency
// string as-is.
type CartItem struct {
	ID    string
	Name  string
	Price string
	Image string
}

// Product is a catalog entry as shown on the storefront.
type Product struct {
	ID    string
	Name  string
	Price string
	Image string
}
