// Package sheet exports an execution statement to an xlsx workbook and
// imports it back.
//
// The workbook holds a single sheet:
//
//	1  실행 내역서
//	2  공사명   <name>               작성일   <date>
//	3  계약금액 <contract amount>    계약용량 <capacity>
//	4  수익금액 <revenue>            실행금액 <total>
//	5
//	6  공정 품목 규격 단위 수량 단가 금액 업체 비고
//	7… one row per line item, or per display row when grouped
//	   totals row, only the amount column is set
//
// Import reads the same layout. It looks for the header row rather than
// assuming its position, and stops at the first blank row or at the totals
// row.
package sheet

import (
	"errors"
	"fmt"
)

const (
	// SheetName is the name of the statement sheet.
	SheetName = "실행내역서"
	// FileName is the default name of an exported workbook.
	FileName = SheetName + ".xlsx"
	// Title is the first cell of the sheet.
	Title = "실행 내역서"
	// TotalLabel labels the total amount in the header block.
	TotalLabel = "실행금액"
)

// column letters of the item table, in header order.
var columns = [...]string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}

// column indexes of the item table.
const (
	colCategory = iota
	colItem
	colSpec
	colUnit
	colQuantity
	colUnitPrice
	colAmount
	colVendor
	colNote
)

// rows of the header block, 1-indexed.
const (
	rowTitle  = 1
	rowName   = 2
	rowAmount = 3
	rowProfit = 4
	rowHeader = 6
)

// ErrStructure is returned when a workbook does not have the statement layout.
var ErrStructure = errors.New("spreadsheet is not an execution statement")

// StructureError explains why a workbook could not be imported.
type StructureError struct {
	Reason string
	Err    error
}

func (e *StructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrStructure, e.Reason, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrStructure, e.Reason)
}

// Is makes errors.Is(err, ErrStructure) hold.
func (e *StructureError) Is(target error) bool { return target == ErrStructure }

func (e *StructureError) Unwrap() error { return e.Err }
