package nvram_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/nvram"
	"github.com/hupe1980/nvram/blobstore"
	"github.com/hupe1980/nvram/persistence"
)

type exampleRegion struct {
	persistence.Header
	Runs uint64
}

// Example demonstrates two process lifetimes sharing one store.
func Example() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	defaults := exampleRegion{Header: persistence.NewHeader(1)}

	for i := 0; i < 2; i++ {
		m, err := nvram.New(store, "example.blk", defaults)
		if err != nil {
			log.Fatal(err)
		}
		outcome, _ := m.Initialize(ctx)
		m.Region().Runs++
		fmt.Println(outcome, m.Region().Runs)
		if err := m.Close(); err != nil {
			log.Fatal(err)
		}
	}
	// Output:
	// warning 1
	// success 2
}

// ExampleExitHooks_Run shows saving only on normal return.
func ExampleExitHooks_Run() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	m, _ := nvram.New(store, "example.blk", exampleRegion{Header: persistence.NewHeader(1)})
	_, _ = m.Initialize(ctx)

	_ = m.Hooks().Run(ctx, func(ctx context.Context) error {
		m.Region().Runs = 42
		return nil
	})

	fmt.Println(len(store.Bytes("example.blk")))
	// Output: 24
}
