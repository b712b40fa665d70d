package application

import (
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for the batch orchestrator.
var ProviderSet = wire.NewSet(
	NewCreatorService,
)
