// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

package tokens

import (
	"errors"
	"fmt"
)

// ErrBudgetExceeded is matched by every *BudgetError.
var ErrBudgetExceeded = errors.New("token budget exceeded")

// BudgetError reports that the assembled input grew past the configured
// ceiling.
type BudgetError struct {
	Total int
	Max   int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("total input of %d tokens exceeds the maximum of %d tokens", e.Total, e.Max)
}

// Is makes errors.Is(err, ErrBudgetExceeded) work.
func (e *BudgetError) Is(target error) bool {
	return target == ErrBudgetExceeded
}

// Budget accumulates token counts for a single message assembly pass.
// It is not safe for concurrent use.
type Budget struct {
	tok   Tokenizer
	max   int
	total int
}

// NewBudget creates a Budget that fails once more than limit tokens were added.
func NewBudget(tok Tokenizer, limit int) *Budget {
	return &Budget{tok: tok, max: limit}
}

// Add counts text against the budget. The count is kept even when the ceiling
// is crossed so the error can report the running total.
func (b *Budget) Add(text string) error {
	b.total += b.tok.Count(text)
	if b.total > b.max {
		return &BudgetError{Total: b.total, Max: b.max}
	}
	return nil
}

// Total returns the number of tokens added so far.
func (b *Budget) Total() int { return b.total }

// Max returns the ceiling.
func (b *Budget) Max() int { return b.max }
