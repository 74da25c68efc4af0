package sqldb

import (
	"context"
	"fmt"
	"log"
)

func QueryItem[
	M any, // Model struct
	MP Scannable[M], // *Model Implementing Scannable[M]
](
	ctx context.Context,
	h Handle,
	rawSQLStmt string,
	args ...any, // variadic
) (*M, error) { // Returns the Pointer to the Newly Created Item
	row := h.QueryRow(ctx, rawSQLStmt, args...)
	return RowToItem[M, MP](row)
}

func RowToItem[
	M any, // Model struct
	MP Scannable[M], // *Model Implementing Scannable[M]
](row Row) (*M, error) {
	var item M     // struct with zero values for the fields
	p := MP(&item) // p is *M, which satisfies targetFieldsProvider interface
	if err := row.Scan(p.TargetFields()...); err != nil {
		return nil, err
	}
	return &item, nil
}

func QueryItems[
	M any, // Model struct
	MP Scannable[M], // *Model Implementing Scannable[M]
](
	ctx context.Context,
	h Handle,
	rawSQLStmt string,
	args ...any, // variadic
) ([]*M, error) { // Returns a Slice of Model-Pointers
	rows, err := h.QueryRows(ctx, rawSQLStmt, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("[WARN][sqldb] rows.Close() failed: %v", err)
		}
	}()
	return RowsToItems[M, MP](rows)
}

func RowsToItems[
	M any, // Model struct
	MP Scannable[M], // *Model Implementing Scannable[M]
](rows Rows) ([]*M, error) {
	var itemptrs []*M
	for rows.Next() {
		var item M
		p := MP(&item)
		// Scan the Fields of Each Row to the Fields of the new struct of the Model
		if err := rows.Scan(p.TargetFields()...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		itemptrs = append(itemptrs, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during iterating rows: %w", err)
	}
	return itemptrs, nil
}
