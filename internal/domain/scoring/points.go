package scoring

// Points maps a hit count to the bonus (or penalty) added on top of it.
type Points map[int]int

// DefaultPoints is the season's bonus table.
func DefaultPoints() Points {
	return Points{
		15: 30,
		14: 30,
		13: 15,
		12: 10,
		11: 5,
		10: 3,
		3:  -1,
		2:  -2,
		1:  -3,
		0:  -5,
	}
}

// For returns hits plus the bonus for that hit count.
func (p Points) For(hits int) int {
	return hits + p[hits]
}
