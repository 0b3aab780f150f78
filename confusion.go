package nerval

import "sort"

// Confusion is a square table counting (true label, predicted label) pairs.
// The axis is the sorted set of entity labels with NoneLabel appended last;
// NoneLabel rows and columns hold false negatives and false positives.
type Confusion struct {
	axis  []string
	index map[string]int
	cells [][]int
}

// NewConfusion builds an empty table over the given entity labels.
// The labels are deduplicated and sorted; NoneLabel is appended last and
// must not be passed in.
func NewConfusion(labels []string) *Confusion {
	seen := make(map[string]struct{}, len(labels))
	axis := make([]string, 0, len(labels)+1)
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		axis = append(axis, l)
	}
	sort.Strings(axis)
	axis = append(axis, NoneLabel)

	index := make(map[string]int, len(axis))
	cells := make([][]int, len(axis))
	for i, l := range axis {
		index[l] = i
		cells[i] = make([]int, len(axis))
	}
	return &Confusion{axis: axis, index: index, cells: cells}
}

// Add increments the cell for one (true label, predicted label) pair.
// Unknown labels are ignored; Aggregate always builds the table over the
// full label set, so this only guards against misuse.
func (c *Confusion) Add(trueLabel, predLabel string) {
	i, ok := c.index[trueLabel]
	if !ok {
		return
	}
	j, ok := c.index[predLabel]
	if !ok {
		return
	}
	c.cells[i][j]++
}

// Count returns the number of pairs with the given true and predicted labels.
func (c *Confusion) Count(trueLabel, predLabel string) int {
	i, ok := c.index[trueLabel]
	if !ok {
		return 0
	}
	j, ok := c.index[predLabel]
	if !ok {
		return 0
	}
	return c.cells[i][j]
}

// Axis returns the full label axis including the trailing NoneLabel.
func (c *Confusion) Axis() []string {
	out := make([]string, len(c.axis))
	copy(out, c.axis)
	return out
}

// EntityLabels returns the axis without the NoneLabel sentinel.
func (c *Confusion) EntityLabels() []string {
	out := make([]string, len(c.axis)-1)
	copy(out, c.axis[:len(c.axis)-1])
	return out
}

// RowSum returns the total count of pairs with the given true label.
func (c *Confusion) RowSum(trueLabel string) int {
	i, ok := c.index[trueLabel]
	if !ok {
		return 0
	}
	sum := 0
	for _, n := range c.cells[i] {
		sum += n
	}
	return sum
}

// ColSum returns the total count of pairs with the given predicted label.
func (c *Confusion) ColSum(predLabel string) int {
	j, ok := c.index[predLabel]
	if !ok {
		return 0
	}
	sum := 0
	for i := range c.cells {
		sum += c.cells[i][j]
	}
	return sum
}
