package settlement

// Cart is the staged content of an in-progress sale, passed by value into
// Commit. There is no shared cart state; the client owns it until checkout.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Line references a product by id with a requested quantity. Prices are not
// carried here: the settlement engine snapshots them from the catalog at
// commit time.
type Line struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
}

func (c Cart) validate() error {
	if len(c.Lines) == 0 {
		return validationf("cart is empty")
	}
	for _, line := range c.Lines {
		if line.ProductID == "" {
			return validationf("cart line is missing a product id")
		}
		if line.Quantity <= 0 {
			return validationf("quantity for product %s must be positive", line.ProductID)
		}
	}
	return nil
}

// merged collapses duplicate product lines so each product is checked and
// decremented exactly once.
func (c Cart) merged() []Line {
	index := map[string]int{}
	out := make([]Line, 0, len(c.Lines))
	for _, line := range c.Lines {
		if i, ok := index[line.ProductID]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(out)
		out = append(out, line)
	}
	return out
}
