// Package nvram keeps a fixed set of program variables in a single stored
// block: restored at startup, written back at normal termination.
//
// # Quick Start
//
// Declare the variables as one fixed-layout struct that starts with a
// persistence.Header:
//
//	type Counters struct {
//	    persistence.Header
//	    A, B, C int32
//	    _       [4]byte
//	    Count   uint64
//	}
//
//	store := blobstore.NewLocalStore(".")
//	m, _ := nvram.New(store, nvram.DefaultName, Counters{Header: persistence.NewHeader(1)})
//
//	outcome, err := m.Initialize(ctx)
//	if outcome.IsFatal() {
//	    log.Fatal(err) // stored block belongs to another build; left untouched
//	}
//	defer m.Close()     // saves the region once
//
//	m.Region().Count++
//
// # Outcomes
//
// Initialize reports one of three outcomes:
//
//   - OutcomeSuccess: the stored block was loaded and validated.
//   - OutcomeWarning: no usable block (missing, truncated, store unavailable);
//     the defaults are kept and saved on exit.
//   - OutcomeFatal: the block carries another format tag or version. The save
//     is never armed, so the incompatible block is preserved.
//
// # Exit Hooks
//
// The save is registered on an ExitHooks registry. ExitHooks.Run fires the
// hooks after a function returns normally; a panic skips them, so a crashing
// program never overwrites its stored state:
//
//	err := m.Hooks().Run(ctx, func(ctx context.Context) error {
//	    return work(m.Region())
//	})
//
// # Backends
//
// Any blobstore.BlobStore works: local files (optionally atomic or mmap
// backed), memory, Amazon S3, MinIO, DynamoDB and SQLite.
//
// # Block Format
//
// The block is the byte-exact native-order image of the struct: the format
// tag at offset 0, the version at offset 8, then the fields in declaration
// order. There is no length prefix and no checksum, and no migration between
// versions.
package nvram
