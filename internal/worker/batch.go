package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/factlens/factlens/internal/model"
)

// Verifier is the slice of the pipeline batch processing needs.
type Verifier interface {
	Verify(ctx context.Context, text string) *model.VerificationResult
}

// VerifyJob verifies one post text.
type VerifyJob struct {
	Text     string
	Verifier Verifier
}

// Execute implements Job. Verification never errors, so the result
// error is only ever a cancelled context.
func (j *VerifyJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &VerifyResult{Text: j.Text, Err: err}
	}
	return &VerifyResult{
		Text:   j.Text,
		Result: j.Verifier.Verify(ctx, j.Text),
	}
}

// VerifyResult pairs an input text with its verification result.
type VerifyResult struct {
	Text   string
	Result *model.VerificationResult
	Err    error
}

// GetError implements Result.
func (r *VerifyResult) GetError() error {
	return r.Err
}

// BatchVerifier verifies many posts concurrently over a bounded pool.
// Requests are independent and the knowledge graph is read-only, so
// concurrency needs no locking anywhere in the pipeline.
type BatchVerifier struct {
	verifier    Verifier
	concurrency int
}

// NewBatchVerifier creates a batch verifier.
func NewBatchVerifier(verifier Verifier, concurrency int) *BatchVerifier {
	return &BatchVerifier{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// VerifyTexts verifies all texts concurrently and returns one result
// per text. Result order follows completion, not submission.
func (b *BatchVerifier) VerifyTexts(ctx context.Context, texts []string) []*VerifyResult {
	if len(texts) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	go func() {
		for _, text := range texts {
			pool.Submit(&VerifyJob{Text: text, Verifier: b.verifier})
		}
		pool.Close()
	}()

	results := pool.Wait()

	out := make([]*VerifyResult, len(results))
	for i, result := range results {
		out[i] = result.(*VerifyResult)
	}
	return out
}

// VerifyFile reads posts from a file (one per line) and verifies them
// concurrently.
func (b *BatchVerifier) VerifyFile(ctx context.Context, path string) ([]*VerifyResult, error) {
	texts, err := ReadTextsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}
	return b.VerifyTexts(ctx, texts), nil
}

// ReadTextsFromFile reads post texts from a file, one per line,
// skipping blanks, comments, and duplicates.
func ReadTextsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var texts []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			texts = append(texts, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return texts, nil
}
