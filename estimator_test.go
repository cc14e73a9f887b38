package generative

import "testing"

// These exercise the real BPE encoding; loading it may hit the network the
// first time, so they stay out of -short runs, same as any integration-ish
// tokenizer test.
func TestTokenEstimator(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping tokenizer test in short mode")
	}
	est, err := NewTokenEstimator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, err := est.Estimate(Text("Hello, world!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n < 1 || n > 10 {
		t.Errorf("implausible token count for short text: %d", n)
	}

	withImage, err := est.Estimate(Text("Hello, world!"), ImageData("png", []byte{0x89}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withImage != n+blobTokenCost {
		t.Errorf("expected flat image cost %d on top of %d, got %d", blobTokenCost, n, withImage)
	}
}

func TestTokenEstimatorContents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping tokenizer test in short mode")
	}
	est, err := NewTokenEstimator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	single, err := est.Estimate(Text("one two three"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	double, err := est.EstimateContents(
		NewUserContent(Text("one two three")),
		&Content{Role: RoleModel, Parts: []Part{Text("one two three")}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if double != 2*single {
		t.Errorf("expected %d, got %d", 2*single, double)
	}
}
