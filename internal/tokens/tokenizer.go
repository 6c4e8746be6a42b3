// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

// Package tokens estimates prompt sizes and enforces the per-request token
// ceiling before anything is sent to a backend.
package tokens

import (
	"log/slog"
	"regexp"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktokenloader "github.com/pkoukk/tiktoken-go-loader"
)

// Tokenizer counts the tokens in a piece of text.
type Tokenizer interface {
	Count(text string) int
}

// BPETokenizer counts tokens with the model's exact byte-pair encoding.
type BPETokenizer struct {
	enc *tiktoken.Tiktoken
}

// Count implements Tokenizer.
func (t *BPETokenizer) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// WordTokenizer is the fallback used when no exact encoding is known for a
// model. Every run of letters/digits counts as one token and so does every
// punctuation mark.
type WordTokenizer struct{}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\s\p{L}\p{N}_]`)

// Count implements Tokenizer.
func (WordTokenizer) Count(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}

var loaderOnce sync.Once

// ForModel returns the exact tokenizer for model when one is available and
// WordTokenizer otherwise. BPE ranks are embedded in the binary, so this never
// touches the network.
func ForModel(model string) Tokenizer {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktokenloader.NewOfflineLoader())
	})

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		slog.Debug("no exact tokenizer for model, using word tokenizer", "model", model, "error", err)
		return WordTokenizer{}
	}
	return &BPETokenizer{enc: enc}
}
