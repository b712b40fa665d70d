package wordpress

import (
	"github.com/google/wire"

	"github.com/afland/duende-publisher/internal/events/ports"
)

// ProviderSet is the wire provider set for the blog platform adapter.
var ProviderSet = wire.NewSet(
	NewClient,
	NewPublisher,
	wire.Bind(new(ports.BlogPublisher), new(*Publisher)),
)
