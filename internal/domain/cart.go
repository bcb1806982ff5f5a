package domain

import "github.com/shopspring/decimal"

// CartLineItem — позиция корзины. CalculatedPrice — снимок эффективной цены единицы
// на момент последнего добавления или изменения количества.
type CartLineItem struct {
	Product         Product
	Quantity        int
	CalculatedPrice decimal.Decimal
}

// LineTotal возвращает стоимость позиции.
func (i *CartLineItem) LineTotal() decimal.Decimal {
	return i.CalculatedPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// MaxLineQuantity — верхняя граница количества в одной позиции. Большие значения урезаются до неё.
const MaxLineQuantity = 9999

// ClampQuantity ограничивает количество сверху значением MaxLineQuantity.
func ClampQuantity(quantity int) int {
	if quantity > MaxLineQuantity {
		return MaxLineQuantity
	}
	return quantity
}

// addQuantity складывает количества без переполнения, результат не больше MaxLineQuantity.
func addQuantity(a, b int) int {
	if b > MaxLineQuantity-a {
		return MaxLineQuantity
	}
	return a + b
}

// Cart — упорядоченный набор позиций, не более одной позиции на товар.
type Cart struct {
	items []CartLineItem
}

// NewCart создаёт корзину из снимка, склеивая дубликаты и отбрасывая позиции с неположительным количеством.
func NewCart(items []CartLineItem) *Cart {
	c := &Cart{}
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		item.Quantity = ClampQuantity(item.Quantity)

		if idx := c.indexOf(item.Product.ID); idx >= 0 {
			c.items[idx].Quantity = addQuantity(c.items[idx].Quantity, item.Quantity)
			c.items[idx].CalculatedPrice = item.CalculatedPrice
			continue
		}
		c.items = append(c.items, item)
	}

	return c
}

// Add увеличивает количество существующей позиции или добавляет новую.
// Цена позиции заменяется переданной. Количество не превышает MaxLineQuantity.
func (c *Cart) Add(product Product, quantity int, price decimal.Decimal) {
	quantity = ClampQuantity(quantity)
	if idx := c.indexOf(product.ID); idx >= 0 {
		c.items[idx].Quantity = addQuantity(c.items[idx].Quantity, quantity)
		c.items[idx].CalculatedPrice = price
		return
	}

	c.items = append(c.items, CartLineItem{
		Product:         product,
		Quantity:        quantity,
		CalculatedPrice: price,
	})
}

// Find возвращает копию позиции по ID товара.
func (c *Cart) Find(productID string) (CartLineItem, bool) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return CartLineItem{}, false
	}

	return c.items[idx], true
}

// SetQuantity задаёт количество и цену позиции. Возвращает false, если позиции нет.
func (c *Cart) SetQuantity(productID string, quantity int, price decimal.Decimal) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}

	c.items[idx].Quantity = ClampQuantity(quantity)
	c.items[idx].CalculatedPrice = price
	return true
}

// Subtract уменьшает количество позиции на quantity и удаляет её, если ничего не осталось.
// Цена оставшихся единиц не меняется.
func (c *Cart) Subtract(productID string, quantity int) bool {
	idx := c.indexOf(productID)
	if idx < 0 || quantity <= 0 {
		return false
	}

	if c.items[idx].Quantity <= quantity {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
		return true
	}

	c.items[idx].Quantity -= quantity
	return true
}

// Remove удаляет позицию. Возвращает false, если позиции не было.
func (c *Cart) Remove(productID string) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}

	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return true
}

// Clear очищает корзину.
func (c *Cart) Clear() {
	c.items = nil
}

// Items возвращает копию позиций в порядке добавления.
func (c *Cart) Items() []CartLineItem {
	items := make([]CartLineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Total — сумма calculated_price * quantity по сохранённым снимкам цен.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.items {
		total = total.Add(c.items[i].LineTotal())
	}

	return total
}

// ItemCount — суммарное количество единиц товара.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}

	return count
}

// IsEmpty сообщает, пуста ли корзина.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return i
		}
	}

	return -1
}
