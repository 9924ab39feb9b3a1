// 4x4 matrix keypad scanning
// Rows are driven low one at a time and the columns are read back through
// their pull-ups; a pressed key shorts its row to its column.
package core

import "errors"

// Keypad geometry
const (
	KeypadRows = 4
	KeypadCols = 4
)

// Key is a character of the keypad layout, or KeyNone when nothing is pressed
type Key byte

// KeyNone reports that no key was found during a scan
const KeyNone Key = 0

// String returns the key character, or "none"
func (k Key) String() string {
	if k == KeyNone {
		return "none"
	}
	return string(rune(k))
}

// KeyMatrix describes the keypad wiring and layout.
// It is fixed for the lifetime of the process.
type KeyMatrix struct {
	Rows   [KeypadRows]GPIOPin // driven outputs, idle high
	Cols   [KeypadCols]GPIOPin // pull-up inputs, low while a key connects them to an active row
	Layout [KeypadRows][KeypadCols]Key
}

// DefaultLayout is the printed legend of the keypad
var DefaultLayout = [KeypadRows][KeypadCols]Key{
	{'1', '2', '3', 'A'},
	{'4', '5', '6', 'B'},
	{'7', '8', '9', 'C'},
	{'*', '0', '#', 'D'},
}

// DefaultKeyMatrix returns the board wiring: rows on GPIO 17,16,18,19 and
// columns on GPIO 20,4,9,8
func DefaultKeyMatrix() KeyMatrix {
	return KeyMatrix{
		Rows:   [KeypadRows]GPIOPin{17, 16, 18, 19},
		Cols:   [KeypadCols]GPIOPin{20, 4, 9, 8},
		Layout: DefaultLayout,
	}
}

// ErrInvalidMatrix is returned by KeyMatrix.Validate
var ErrInvalidMatrix = errors.New("invalid key matrix")

type matrixError string

func (e matrixError) Error() string { return ErrInvalidMatrix.Error() + ": " + string(e) }
func (e matrixError) Unwrap() error { return ErrInvalidMatrix }

// Validate checks that row and column pins are all distinct and that every
// layout cell holds exactly one key with no duplicates
func (m *KeyMatrix) Validate() error {
	pins := make(map[GPIOPin]bool, KeypadRows+KeypadCols)
	for _, p := range m.Rows {
		if pins[p] {
			return matrixError("pin " + utoa(uint32(p)) + " used twice")
		}
		pins[p] = true
	}
	for _, p := range m.Cols {
		if pins[p] {
			return matrixError("pin " + utoa(uint32(p)) + " used twice")
		}
		pins[p] = true
	}

	seen := make(map[Key]bool, KeypadRows*KeypadCols)
	for r := range m.Layout {
		for c, k := range m.Layout[r] {
			if k == KeyNone {
				return matrixError("empty cell at row " + itoa(r) + " col " + itoa(c))
			}
			if seen[k] {
				return matrixError("duplicate key " + k.String())
			}
			seen[k] = true
		}
	}
	return nil
}

// Scanner reads the keypad through a GPIODriver.
// It owns the row lines for the duration of a Scan call.
type Scanner struct {
	gpio   GPIODriver
	matrix KeyMatrix
}

// NewScanner creates a scanner for the given matrix
func NewScanner(gpio GPIODriver, matrix KeyMatrix) *Scanner {
	return &Scanner{
		gpio:   gpio,
		matrix: matrix,
	}
}

// Matrix returns the wiring the scanner was built with
func (s *Scanner) Matrix() KeyMatrix {
	return s.matrix
}

// Init configures all rows as outputs at their inactive (high) level and all
// columns as pull-up inputs
func (s *Scanner) Init() error {
	for _, row := range s.matrix.Rows {
		if err := s.gpio.ConfigureOutput(row); err != nil {
			return err
		}
		if err := s.gpio.SetPin(row, true); err != nil {
			return err
		}
	}
	for _, col := range s.matrix.Cols {
		if err := s.gpio.ConfigureInputPullUp(col); err != nil {
			return err
		}
	}
	return nil
}

// Scan walks the matrix in row-major order and returns the first pressed key,
// or KeyNone.
//
// A detected key is debounced by blocking: Scan does not return until its
// column reads high again, so a held key stalls the caller. There is no
// timeout. Every row is back at its inactive level when Scan returns, on
// every path.
func (s *Scanner) Scan() (Key, error) {
	for r, row := range s.matrix.Rows {
		if err := s.gpio.SetPin(row, false); err != nil {
			_ = s.gpio.SetPin(row, true)
			return KeyNone, err
		}

		key, err := s.scanRow(r)

		// Restore the row before looking at the result
		if restoreErr := s.gpio.SetPin(row, true); restoreErr != nil && err == nil {
			err = restoreErr
		}
		if err != nil {
			return KeyNone, err
		}
		if key != KeyNone {
			return key, nil
		}
	}
	return KeyNone, nil
}

// scanRow reads the columns of the currently active row
func (s *Scanner) scanRow(r int) (Key, error) {
	for c, col := range s.matrix.Cols {
		high, err := s.gpio.GetPin(col)
		if err != nil {
			return KeyNone, err
		}
		if high {
			continue
		}

		// Pressed: hold until the column releases
		for !high {
			high, err = s.gpio.GetPin(col)
			if err != nil {
				return KeyNone, err
			}
		}
		return s.matrix.Layout[r][c], nil
	}
	return KeyNone, nil
}
