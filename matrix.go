package matsolve

import (
	"encoding/json"
	"fmt"
)

// FlatMatrix is the canonical in-memory matrix representation: a row-major
// flattened buffer with explicit dimensions. Every kernel operates on it
// directly, without per-call conversion. Logical element (i,j) lives at
// Data[i*Cols+j].
type FlatMatrix struct {
	Data []float32
	Rows int
	Cols int
}

// NewFlatMatrix creates a zero-filled rows×cols matrix.
func NewFlatMatrix(rows, cols int) *FlatMatrix {
	return &FlatMatrix{
		Data: make([]float32, rows*cols),
		Rows: rows,
		Cols: cols,
	}
}

// FromRows flattens nested row data into a FlatMatrix with a single
// allocation. Every row must have the same length; a mismatch fails with a
// MalformedInput error.
func FromRows(rows [][]float32) (*FlatMatrix, error) {
	if len(rows) == 0 {
		return &FlatMatrix{}, nil
	}
	cols := len(rows[0])
	data := make([]float32, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, NewInputError("FromRows",
				fmt.Sprintf("inconsistent row lengths: row 0 has %d columns, row %d has %d", cols, i, len(row)))
		}
		data = append(data, row...)
	}
	return &FlatMatrix{Data: data, Rows: len(rows), Cols: cols}, nil
}

// At returns element (i,j).
func (m *FlatMatrix) At(i, j int) float32 {
	return m.Data[i*m.Cols+j]
}

// Set assigns element (i,j).
func (m *FlatMatrix) Set(i, j int, v float32) {
	m.Data[i*m.Cols+j] = v
}

// Row returns the i-th row as a slice view into the backing buffer.
func (m *FlatMatrix) Row(i int) []float32 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Shape returns (rows, cols).
func (m *FlatMatrix) Shape() (int, int) {
	return m.Rows, m.Cols
}

// ToRows expands the matrix back into nested row form. Only the system
// boundary needs this; kernels never do.
func (m *FlatMatrix) ToRows() [][]float32 {
	rows := make([][]float32, m.Rows)
	for i := range rows {
		rows[i] = m.Row(i)
	}
	return rows
}

// MarshalJSON encodes the matrix in nested-array form for the boundary layer.
func (m *FlatMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToRows())
}

// UnmarshalJSON decodes a nested-array payload, flattening it into the
// row-major buffer. Ragged payloads fail with a MalformedInput error.
func (m *FlatMatrix) UnmarshalJSON(b []byte) error {
	var rows [][]float32
	if err := json.Unmarshal(b, &rows); err != nil {
		return NewInputError("UnmarshalJSON", fmt.Sprintf("invalid matrix payload: %v", err))
	}
	fm, err := FromRows(rows)
	if err != nil {
		return err
	}
	*m = *fm
	return nil
}
