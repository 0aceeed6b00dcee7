// internal/pipeline/pad.go
package pipeline

import (
	"context"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"stemcode-core/library"
	"stemcode-core/padding"
)

// RecordRand returns the random stream for record i of a run.
func RecordRand(seed uint64, i int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(i)+1))
}

// PadConfig controls parallel padding.
type PadConfig struct {
	Target  int
	Side    library.Side
	Params  padding.Params
	Seed    uint64 // must be fixed for reproducible output
	Threads int    // <= 0 means GOMAXPROCS
}

// Pad brings every record of lib to cfg.Target padded-design length. The
// requirement check covers all records before any is changed. It returns
// the number of records that received padding.
func Pad(ctx context.Context, lib *library.Library, cfg PadConfig) (int, error) {
	req, err := lib.CheckPadding(cfg.Target, cfg.Side, cfg.Params)
	if err != nil {
		return 0, err
	}
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	padded := 0
	for i := range lib.Records {
		if req[i] == 0 {
			continue
		}
		if gctx.Err() != nil {
			break
		}
		padded++
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return library.PadRecord(RecordRand(cfg.Seed, i), &lib.Records[i], req[i], cfg.Side, cfg.Params)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return padded, nil
}
