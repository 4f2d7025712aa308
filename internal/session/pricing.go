package session

// LineTotal returns the total for one cart line: the base unit price plus
// every selected option price, multiplied by the quantity. Option prices that
// are absent decode as zero and contribute nothing. The result is not
// rounded; callers format to two decimals for display.
func LineTotal(basePrice float64, quantity int, customizations []SelectedCustomization) float64 {
	unit := basePrice
	for _, category := range customizations {
		for _, option := range category.SelectedOptions {
			unit += option.Price
		}
	}
	return unit * float64(quantity)
}
