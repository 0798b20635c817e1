package matfile

// Cell is an array of arbitrary arrays in column-major order.
type Cell struct {
	arrayInfo
	cells []Array
}

// NewCell creates a cell array with every element set to Empty.
func NewCell(name string, dims []int) (*Cell, error) {
	info, err := newArrayInfo(name, dims, makeFlags(ClassCell, 0))
	if err != nil {
		return nil, err
	}
	cells := make([]Array, info.count)
	for i := range cells {
		cells[i] = NewEmpty()
	}
	return &Cell{arrayInfo: info, cells: cells}, nil
}

// At returns the element at column-major index i.
func (c *Cell) At(i int) (Array, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}
	return c.cells[i], nil
}

// AtRC returns the element at zero-based (row, col).
func (c *Cell) AtRC(row, col int) (Array, error) {
	i, err := c.index(row, col)
	if err != nil {
		return nil, err
	}
	return c.cells[i], nil
}

// Set stores a at index i. A nil a stores Empty.
func (c *Cell) Set(i int, a Array) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.cells[i] = orEmpty(a)
	return nil
}

// SetRC stores a at zero-based (row, col).
func (c *Cell) SetRC(row, col int, a Array) error {
	i, err := c.index(row, col)
	if err != nil {
		return err
	}
	c.cells[i] = orEmpty(a)
	return nil
}

// Cells returns the elements in column-major order.
func (c *Cell) Cells() []Array {
	out := make([]Array, len(c.cells))
	copy(out, c.cells)
	return out
}
