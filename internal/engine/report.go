package engine

// Report is an immutable snapshot handed to every attached Consumer after
// a completed iteration deeper than MinDepth whose best move or score
// changed, and once more when a search finishes. Consumers must not mutate
// Game.
type Report struct {
	Game     Game
	Cache    Cache
	BestMove Move
}

// Consumer receives Reports as a search progresses. Accept is called
// synchronously on the search's own goroutine; a slow or blocking consumer
// stalls the search. A panicking consumer is recovered and logged by the
// engine and does not otherwise affect the search.
type Consumer interface {
	Accept(Report)
}

// ConsumerFunc adapts a plain function to the Consumer interface. Function
// values are not comparable, so a ConsumerFunc must be attached and
// detached through the same *ConsumerFunc pointer for DetachConsumer to
// find it again; the engine's consumer set is keyed by interface identity.
type ConsumerFunc func(Report)

// Accept implements Consumer.
func (f *ConsumerFunc) Accept(r Report) { (*f)(r) }
