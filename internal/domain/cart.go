package domain

// CartLine is one (product, quantity) entry in a cart. The product is a
// snapshot, not a live reference, so a later catalog price change does
// not affect a line already in the cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
