//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "restaurant-api"
	ConsumerName = "kitchen-display"

	StateMenuBaseline = "menu baseline"
	StateFoodExists   = "food with id 1 exists"
	StateFoodMissing  = "no food with id 404"
	StateOrderExists  = "order with id 1 exists for customer 1"
)

const (
	ExistingFoodID  int64 = 1
	MissingFoodID   int64 = 404
	ExistingOrderID int64 = 1
	CustomerID      int64 = 1
)

const (
	exampleFoodName     = "Margherita"
	exampleFoodCategory = "pizza"
	exampleFoodPrice    = "12.5"
	exampleFoodSize     = "large"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the kitchen display consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleFood is the menu entry every interaction works with.
func ExampleFood() map[string]any {
	return map[string]any{
		"name":     exampleFoodName,
		"category": exampleFoodCategory,
		"price":    exampleFoodPrice,
		"size":     exampleFoodSize,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
