package cmd

import (
	"context"

	"go.uber.org/zap/zapcore"

	"github.com/caretrail/docnotary/config"
	"github.com/caretrail/docnotary/notary"
	"github.com/caretrail/docnotary/pkg/ledger"
	"github.com/caretrail/docnotary/pkg/logtrace"
)

// runtime bundles everything a command needs after setup.
type runtime struct {
	cfg     *config.Config
	client  ledger.Client
	service *notary.Service
	store   *notary.Store
}

// setup loads config, initializes logging, derives the signer from the
// environment, connects the ledger client, and wires the service.
func setup(ctx context.Context, correlationID string) (context.Context, *runtime, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	logtrace.Setup("docnotary", "cli", level)
	ctx = logtrace.CtxWithCorrelationID(ctx, correlationID)

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return ctx, nil, err
	}

	words, err := cfg.Mnemonic()
	if err != nil {
		return ctx, nil, err
	}
	signer, err := ledger.NewSignerFromMnemonic(words)
	if err != nil {
		return ctx, nil, err
	}

	client, err := ledger.New(ctx,
		ledger.WithNodeAddress(cfg.Node.Address),
		ledger.WithAPIToken(cfg.Node.Token),
		ledger.WithSigner(signer),
	)
	if err != nil {
		return ctx, nil, err
	}

	store, err := notary.NewStore(cfg.Store.Path)
	if err != nil {
		return ctx, nil, err
	}

	service, err := notary.NewService(client, store, notary.Config{
		Network:         cfg.Network,
		ExplorerBaseURL: cfg.Explorer.BaseURL,
		MaxWaitRounds:   cfg.Confirmation.MaxWaitRounds,
	})
	if err != nil {
		_ = store.Close()
		return ctx, nil, err
	}

	return ctx, &runtime{cfg: cfg, client: client, service: service, store: store}, nil
}

func (r *runtime) close() {
	if r != nil && r.store != nil {
		_ = r.store.Close()
	}
}
