package upgrade

import "context"

// ChunkFunc applies one record's update inside the chunk's transaction.
type ChunkFunc[T any] func(tx Tx, record T) error

// ChunkProgress reports how far a chunked run got. After a failure,
// ResumeCursor is the index of the first record whose update did not
// commit; a caller tracking it externally can restart from there.
type ChunkProgress struct {
	ChunksCommitted  int
	RecordsCommitted int
}

// ResumeCursor returns the index of the first uncommitted record.
func (p ChunkProgress) ResumeCursor() int {
	return p.RecordsCommitted
}

// RunChunked walks records in order and applies fn to each, committing
// one transaction per chunk of up to size records. Commits are monotonic:
// a chunk is either fully committed or fully rolled back, earlier chunks
// stay committed when a later one fails, and the run aborts on the first
// failing chunk. An exact multiple of size yields no empty trailing
// transaction.
func RunChunked[T any](ctx context.Context, beginner TxBeginner, records []T, size int, fn ChunkFunc[T]) (ChunkProgress, error) {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var progress ChunkProgress
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}

		if err := runChunk(ctx, beginner, records[start:end], fn); err != nil {
			return progress, &ChunkError{
				Chunk:  progress.ChunksCommitted,
				Resume: progress.ResumeCursor(),
				Cause:  err,
			}
		}

		progress.ChunksCommitted++
		progress.RecordsCommitted += end - start
	}
	return progress, nil
}

func runChunk[T any](ctx context.Context, beginner TxBeginner, chunk []T, fn ChunkFunc[T]) error {
	tx, err := beginner.Begin(ctx)
	if err != nil {
		return err
	}

	for _, record := range chunk {
		if err := fn(tx, record); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return err
	}
	return nil
}
