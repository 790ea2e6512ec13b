package worker

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/factlens/factlens/internal/model"
)

// stubVerifier returns a fixed-shape result and counts calls.
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, text string) *model.VerificationResult {
	return &model.VerificationResult{
		Claim:      text,
		Verdict:    model.VerdictUnverifiable,
		Confidence: 0.5,
		Citations:  []model.Citation{},
	}
}

func TestBatchVerifier_VerifyTexts(t *testing.T) {
	batch := NewBatchVerifier(stubVerifier{}, 3)

	texts := []string{"post one", "post two", "post three", "post four", "post five"}
	results := batch.VerifyTexts(context.Background(), texts)

	if len(results) != len(texts) {
		t.Fatalf("expected %d results, got %d", len(texts), len(results))
	}

	var got []string
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("unexpected error for %q: %v", r.Text, r.Err)
		}
		if r.Result == nil || r.Result.Claim != r.Text {
			t.Errorf("result does not echo its input: %+v", r)
		}
		got = append(got, r.Text)
	}

	// Completion order is arbitrary; every input must appear exactly once.
	sort.Strings(got)
	want := append([]string(nil), texts...)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected inputs %v, got %v", want, got)
	}
}

func TestBatchVerifier_EmptyInput(t *testing.T) {
	batch := NewBatchVerifier(stubVerifier{}, 2)

	results := batch.VerifyTexts(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchVerifier_VerifyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.txt")
	content := "first post\n\n# a comment\nsecond post\nfirst post\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	batch := NewBatchVerifier(stubVerifier{}, 2)
	results, err := batch.VerifyFile(context.Background(), path)
	if err != nil {
		t.Fatalf("VerifyFile failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results after dedupe and comment skip, got %d", len(results))
	}
}

func TestBatchVerifier_VerifyFile_Missing(t *testing.T) {
	batch := NewBatchVerifier(stubVerifier{}, 2)
	if _, err := batch.VerifyFile(context.Background(), filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadTextsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.txt")
	content := "  one  \n# skip me\n\ntwo\none\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	texts, err := ReadTextsFromFile(path)
	if err != nil {
		t.Fatalf("ReadTextsFromFile failed: %v", err)
	}
	want := []string{"one", "two"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("expected %v, got %v", want, texts)
	}
}
