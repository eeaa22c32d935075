// Package importerror defines the error types shared by the decoders and the
// entry assembler. Every error carries the 1-based file line number of the
// offending record so the caller can point the user at the exact row.
package importerror

import "fmt"

// DecodeError reports a malformed or unparseable source row.
type DecodeError struct {
	Format string
	Line   int
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: line %d: %s: %v", e.Format, e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: line %d: %s", e.Format, e.Line, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError reports semantically invalid pivot data, including
// unresolvable account/journal/partner/analytic references.
type ValidationError struct {
	Line   int
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BalanceError reports a journal entry whose lines do not sum to zero within
// the monetary rounding precision. Line is the number of the last line of the
// unbalanced entry.
type BalanceError struct {
	Line    int
	Last    bool
	Balance string
}

func (e *BalanceError) Error() string {
	if e.Last {
		return fmt.Sprintf("the journal entry that ends on the last line is not balanced (balance is %s)", e.Balance)
	}
	return fmt.Sprintf("the journal entry that ends on line %d is not balanced (balance is %s)", e.Line, e.Balance)
}
