package application

import (
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for the content generator.
var ProviderSet = wire.NewSet(
	NewGeneratorService,
)
