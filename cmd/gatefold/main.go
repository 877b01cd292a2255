package main

import (
	"context"

	"github.com/aretw0/lifecycle"
)

func main() {
	Execute(lifecycle.NewSignalContext(context.Background()))
}
