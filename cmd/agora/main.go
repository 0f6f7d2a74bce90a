// Command agora runs a simulated single-commodity exchange: it wires a
// market coordinator, registers a handful of reference agents, and drives
// the step loop under signal-based cancellation.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agora/internal/agents"
	"agora/internal/ledger"
	"agora/internal/market"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	m := market.New(
		market.Info{Name: "agora", Commodity: "widget"},
		market.WithLogger(log.Logger),
	)

	m.RegisterAgent(&agents.FixedSeller{AskSize: 5, AskAmount: 2, Period: 1, InnatePrice: 10}, ledger.NewAccount(0, 200))
	m.RegisterAgent(&agents.FixedBuyer{BidSize: 5, BidAmount: 2, Period: 1, InnatePrice: 10}, ledger.NewAccount(2000, 0))
	m.RegisterAgent(&agents.IncrementalBuyer{BidSize: 3, BidAmount: 3, Period: 1, Increment: 1}, ledger.NewAccount(2000, 0))
	m.RegisterAgent(&agents.IncrementalSeller{AskSize: 3, AskAmount: 3, Period: 1, Increment: 1}, ledger.NewAccount(0, 200))

	var t tomb.Tomb
	t.Go(func() error { return runLoop(&t, m) })

	select {
	case <-ctx.Done():
		t.Kill(nil)
	case <-t.Dying():
	}

	if err := t.Wait(); err != nil {
		log.Error().Err(err).Msg("simulation loop exited with error")
		os.Exit(1)
	}
}

// runLoop repeatedly calls Step on a fixed cadence until the tomb is
// killed. Step itself is a single synchronous call; only the cadence
// around it is supervised.
func runLoop(t *tomb.Tomb, m *market.Market) error {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-t.Dying():
			return nil
		case <-ticker.C:
			history := m.Step()
			price, ok := history.MarketPrice()
			event := log.Info().Uint64("step", history.Step).
				Int("transactions", len(history.Transactions)).
				Int("rejected", len(history.RejectedOrders)).
				Int("unfulfilled", len(history.UnfulfilledOrders))
			if ok {
				event = event.Int64("marketPrice", int64(price))
			}
			event.Msg("step complete")
		}
	}
}
