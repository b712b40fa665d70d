package postgres

import (
	"github.com/google/wire"

	"github.com/afland/duende-publisher/internal/events/ports"
)

// ProviderSet is the wire provider set for postgres repositories
var ProviderSet = wire.NewSet(
	NewEventRepository,
	wire.Bind(new(ports.EventRepository), new(*EventRepository)),
)
