package compressor

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// OriginalTable is an uncompressed two-dimensional table laid out as a flat
// row-major slice.
type OriginalTable struct {
	entries  []int
	rowCount int
	colCount int
}

func NewOriginalTable(entries []int, colCount int) (*OriginalTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("colCount must be >=1")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length and column count are inconsistent; entries length: %v, column count: %v", len(entries), colCount)
	}

	return &OriginalTable{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

// Compressor is a compressed representation of an OriginalTable. Lookup must
// return exactly the value the original table holds at [row, col].
type Compressor interface {
	Compress(orig *OriginalTable) error
	Lookup(row, col int) (int, error)
	OriginalTableSize() (int, int)
}

var (
	_ Compressor = &UniqueEntriesTable{}
	_ Compressor = &RowDisplacementTable{}
)

// UniqueEntriesTable deduplicates identical rows. Transition tables generated
// from a DFA contain many repeated rows, so this alone shrinks them
// considerably.
type UniqueEntriesTable struct {
	UniqueEntries    []int
	RowNums          []int
	OriginalRowCount int
	OriginalColCount int
}

func NewUniqueEntriesTable() *UniqueEntriesTable {
	return &UniqueEntriesTable{}
}

func (tab *UniqueEntriesTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	return tab.UniqueEntries[tab.RowNums[row]*tab.OriginalColCount+col], nil
}

func (tab *UniqueEntriesTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

func (tab *UniqueEntriesTable) Compress(orig *OriginalTable) error {
	var uniqueEntries []int
	rowNums := make([]int, orig.rowCount)
	rowNumsByKey := map[string]int{}
	nextRowNum := 0
	for row := 0; row < orig.rowCount; row++ {
		start := row * orig.colCount
		key := rowKey(orig.entries[start : start+orig.colCount])
		rowNum, ok := rowNumsByKey[key]
		if !ok {
			rowNum = nextRowNum
			nextRowNum++
			rowNumsByKey[key] = rowNum
			uniqueEntries = append(uniqueEntries, orig.entries[start:start+orig.colCount]...)
		}
		rowNums[row] = rowNum
	}

	tab.UniqueEntries = uniqueEntries
	tab.RowNums = rowNums
	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount

	return nil
}

func rowKey(row []int) string {
	buf := make([]byte, 0, len(row)*binary.MaxVarintLen64)
	b := make([]byte, binary.MaxVarintLen64)
	for _, v := range row {
		n := binary.PutVarint(b, int64(v))
		buf = append(buf, b[:n]...)
	}
	return string(buf)
}

// ForbiddenValue is stored in the bounds array of a RowDisplacementTable for
// slots no row claims.
const ForbiddenValue = -1

// RowDisplacementTable overlays sparse rows into a single array. Each row is
// shifted by a displacement chosen so that its non-empty entries fall only on
// slots every other row leaves empty.
type RowDisplacementTable struct {
	OriginalRowCount int
	OriginalColCount int
	EmptyValue       int
	Entries          []int
	Bounds           []int
	RowDisplacement  []int
}

func NewRowDisplacementTable(emptyValue int) *RowDisplacementTable {
	return &RowDisplacementTable{
		EmptyValue: emptyValue,
	}
}

func (tab *RowDisplacementTable) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	d := tab.RowDisplacement[row]
	if tab.Bounds[d+col] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[d+col], nil
}

func (tab *RowDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

type rowStat struct {
	rowNum      int
	nonEmptyCol []int
}

func (tab *RowDisplacementTable) Compress(orig *OriginalTable) error {
	stats := make([]rowStat, orig.rowCount)
	for row := 0; row < orig.rowCount; row++ {
		stats[row].rowNum = row
		for col := 0; col < orig.colCount; col++ {
			if orig.entries[row*orig.colCount+col] != tab.EmptyValue {
				stats[row].nonEmptyCol = append(stats[row].nonEmptyCol, col)
			}
		}
	}

	// Placing dense rows first keeps the displacements small.
	sort.SliceStable(stats, func(i, j int) bool {
		return len(stats[i].nonEmptyCol) > len(stats[j].nonEmptyCol)
	})

	origEntriesLen := len(orig.entries)
	entries := make([]int, origEntriesLen)
	bounds := make([]int, origEntriesLen)
	for i := 0; i < origEntriesLen; i++ {
		entries[i] = tab.EmptyValue
		bounds[i] = ForbiddenValue
	}
	rowDisplacement := make([]int, orig.rowCount)
	resultBottom := orig.colCount

	nextDisplacement := 0
	for _, stat := range stats {
		if len(stat.nonEmptyCol) == 0 {
			continue
		}

		for {
			overlapped := false
			for _, col := range stat.nonEmptyCol {
				if entries[nextDisplacement+col] == tab.EmptyValue {
					continue
				}
				nextDisplacement++
				overlapped = true
				break
			}
			if overlapped {
				continue
			}

			rowDisplacement[stat.rowNum] = nextDisplacement
			for _, col := range stat.nonEmptyCol {
				entries[nextDisplacement+col] = orig.entries[stat.rowNum*orig.colCount+col]
				bounds[nextDisplacement+col] = stat.rowNum
			}
			resultBottom = nextDisplacement + orig.colCount
			nextDisplacement++
			break
		}
	}

	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	tab.Entries = entries[:resultBottom]
	tab.Bounds = bounds[:resultBottom]
	tab.RowDisplacement = rowDisplacement

	return nil
}
