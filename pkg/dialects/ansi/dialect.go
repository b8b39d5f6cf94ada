package ansi

import (
	"github.com/leapstack-labs/leapmigrate/pkg/generator"
)

func init() {
	generator.Register(Generic)
}

// Generic is the ANSI baseline generator.
// Builder auto-wires sequences from Config; schema operations report
// "Schemas are not supported".
var Generic = generator.New(Config).Build()
