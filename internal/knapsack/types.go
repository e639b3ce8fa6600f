package knapsack

import "fmt"

// Item is an immutable packable value.
type Item struct {
	size   int
	weight int
}

// NewItem returns an item of the given size and weight.
func NewItem(size, weight int) Item {
	return Item{size: size, weight: weight}
}

// Size returns how much capacity the item occupies.
func (i Item) Size() int {
	return i.size
}

// Weight returns the value the item contributes when packed.
func (i Item) Weight() int {
	return i.weight
}

func (i Item) String() string {
	return fmt.Sprintf("(size=%d, weight=%d)", i.size, i.weight)
}

// Container receives the packed items. Its capacity is fixed at construction.
type Container struct {
	capacity int
	contents []Item
}

// NewContainer creates an empty container with the given capacity.
func NewContainer(capacity int) (*Container, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Container{capacity: capacity}, nil
}

// Capacity returns the maximum total size the container accepts.
func (c *Container) Capacity() int {
	return c.capacity
}

// AddItem appends an item to the contents.
func (c *Container) AddItem(item Item) {
	c.contents = append(c.contents, item)
}

// Contents returns a copy of the packed items in insertion order.
func (c *Container) Contents() []Item {
	out := make([]Item, len(c.contents))
	copy(out, c.contents)
	return out
}

// TotalSize sums the sizes of the packed items.
func (c *Container) TotalSize() int {
	total := 0
	for _, item := range c.contents {
		total += item.size
	}
	return total
}

// TotalWeight sums the weights of the packed items.
func (c *Container) TotalWeight() int {
	total := 0
	for _, item := range c.contents {
		total += item.weight
	}
	return total
}

// Packer describes the behaviour required from a packing strategy.
type Packer interface {
	// Pack appends the value-maximizing subset of items that fits the
	// container's capacity to the container and returns its total weight.
	Pack(items []Item, container *Container) (int, error)
}
