package structs

type AddCartItemRequest struct {
	ProductID *int64 `json:"productId" validate:"required,gt=0"`
}

type CartSessionResponse struct {
	Session string `json:"session"`
}

// CartItem is a snapshot of a product taken when it was added to the cart.
type CartItem struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	PricePence   int64  `json:"price_pence"`
	Seller       string `json:"seller"`
	RequireAge18 bool   `json:"require_age18"`
	RequireUK    bool   `json:"require_uk"`
}

// CartLine aggregates the units of one product.
type CartLine struct {
	Item       CartItem `json:"item"`
	Quantity   int      `json:"quantity"`
	TotalPence int64    `json:"total_pence"`
}

// Cart is a session's list of added items, one entry per unit in the order
// they were added.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c *Cart) Add(item CartItem) {
	c.Items = append(c.Items, item)
}

// RemoveOne drops the most recently added unit of productID and reports
// whether one was present.
func (c *Cart) RemoveOne(productID int64) bool {
	for i := len(c.Items) - 1; i >= 0; i-- {
		if c.Items[i].ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll drops every unit of productID and returns how many were removed.
func (c *Cart) RemoveAll(productID int64) int {
	kept := c.Items[:0]
	removed := 0
	for _, item := range c.Items {
		if item.ID == productID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	return removed
}

// Lines aggregates the items per product in first-seen order.
func (c *Cart) Lines() []CartLine {
	lines := []CartLine{}
	index := make(map[int64]int)
	for _, item := range c.Items {
		if i, ok := index[item.ID]; ok {
			lines[i].Quantity++
			lines[i].TotalPence += item.PricePence
			continue
		}
		index[item.ID] = len(lines)
		lines = append(lines, CartLine{Item: item, Quantity: 1, TotalPence: item.PricePence})
	}
	return lines
}

func (c *Cart) TotalPence() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.PricePence
	}
	return total
}

func (c *Cart) Count() int {
	return len(c.Items)
}

type CartView struct {
	Session    string     `json:"session"`
	Lines      []CartLine `json:"lines"`
	TotalPence int64      `json:"total_pence"`
	Count      int        `json:"count"`
}

func (c *Cart) View(session string) CartView {
	return CartView{
		Session:    session,
		Lines:      c.Lines(),
		TotalPence: c.TotalPence(),
		Count:      c.Count(),
	}
}
