package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-ledger/internal/domain/entity"
)

// committedNotifier se invoca solo después del Commit: invalida la caché de totales y publica
// el evento. Sus fallos se registran pero no revierten nada; el ledger es la fuente de verdad.
type committedNotifier struct {
	publisher EventPublisher
	cache     TotalsCache
	log       zerolog.Logger
}

func newCommittedNotifier(publisher EventPublisher, cache TotalsCache, log zerolog.Logger) committedNotifier {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if cache == nil {
		cache = NopCache{}
	}
	return committedNotifier{publisher: publisher, cache: cache, log: log}
}

func (n committedNotifier) notify(ctx context.Context, event entity.LedgerEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	// La petición pudo cancelarse justo después del Commit; los efectos secundarios siguen.
	ctx = context.WithoutCancel(ctx)

	if err := n.cache.Invalidate(ctx, event.ProductIDs()...); err != nil {
		n.log.Warn().Err(err).Str("transaction_id", event.TransactionID).Msg("invalidar caché de totales")
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.log.Warn().Err(err).
			Str("transaction_id", event.TransactionID).
			Str("event", event.Type).
			Msg("publicar evento del ledger")
	}
}
