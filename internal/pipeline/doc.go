// Package pipeline drives card fusion end to end: resolve the photographs of
// each card, load them as grayscale grids, fuse them and write the composite.
//
// # Modes
//
// RunSingle fuses one card from a directory holding its four photographs and
// fails on the first error. RunBatch fuses every complete card found in a flat
// directory of HEIC files; a card that cannot be processed is reported and the
// batch moves on.
//
// # Console output
//
// Progress lines meant for the user ("Processed x.png", "Skipping ...",
// "Error processing ...", "Done.") are written to Processor.Out. Structured
// diagnostics go to Processor.Log.
//
// # Concurrency
//
// With Workers > 1 batch cards are fused concurrently. Each card owns its
// grids; only console output is serialized. Results are always returned in
// card name order.
package pipeline
