package todo

import (
	"context"
	"fmt"

	"todo/internal/config"
	"todo/internal/kv"
	"todo/internal/store"
)

// OpenConfigured opens the store cfg selects (MySQL when a DSN is set,
// the file store in cfg.Dir otherwise) and hydrates a Holder from it.
func OpenConfigured(ctx context.Context, cfg *config.Config, opts ...Option) (*Holder, error) {
	var s kv.Store
	if cfg.UsesMySQL() {
		m, err := kv.OpenMySQL(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		cfg.Log.V(1).Info("using mysql store")
		s = m
	} else {
		s = kv.NewFile(cfg.Dir)
		cfg.Log.V(1).Info("using file store", "dir", cfg.Dir)
	}
	return OpenStore(ctx, cfg, s, opts...)
}

// OpenStore hydrates a Holder from s. The Holder owns s and closes it.
// Failed background saves are reported on cfg.Warnings, which must be
// safe for use from the writer goroutine.
func OpenStore(ctx context.Context, cfg *config.Config, s kv.Store, opts ...Option) (*Holder, error) {
	base := []Option{
		WithLogger(cfg.Log.WithName("holder")),
		WithCloser(s),
	}
	if w := cfg.Warnings; w != nil {
		base = append(base, WithWriteErrorHandler(func(err error) {
			fmt.Fprintf(w, "warning: save failed: %v\n", err)
		}))
	}

	h, err := Open(ctx, store.NewAdapter(s), append(base, opts...)...)
	if err != nil {
		s.Close()
		return nil, err
	}
	return h, nil
}
