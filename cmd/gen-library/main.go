package main

import (
	"context"
	"fmt"
	"os"

	loamAdapter "github.com/aretw0/gatefold/pkg/adapters/loam"
	"github.com/aretw0/loam"
)

// samples is the starter library: a signal, a transducer gate, and a gate
// closed by a hairpin.
var samples = []loam.DocumentModel[loamAdapter.SourceMetadata]{
	{
		ID:      "signals/input",
		Content: "<t^ x>",
		Data:    loamAdapter.SourceMetadata{Title: "Input signal", Toeholds: []string{"t"}},
	},
	{
		ID:      "gates/transducer",
		Content: "[ {t^*}[x u^]<y> ]\n| <u^ y>",
		Data:    loamAdapter.SourceMetadata{Title: "Transducer x to y", Toeholds: []string{"t", "u"}},
	},
	{
		// Trailing noise checks that the library trims content.
		ID:      "gates/hairpin",
		Content: "<a>[b c]{l>\n\n\n   ",
		Data:    loamAdapter.SourceMetadata{Title: "Hairpin-closed gate"},
	},
}

func main() {
	targetDir := "examples/library"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating model library in: %s\n", targetDir)

	// No versioning: plain files the engine can read back.
	repo, err := loam.Init(targetDir, loam.WithVersioning(false))
	check(err)

	typedRepo := loam.NewTyped[loamAdapter.SourceMetadata](repo)
	ctx := context.TODO()

	for i := range samples {
		check(typedRepo.Save(ctx, &samples[i]))
		fmt.Println("  wrote", samples[i].ID)
	}

	fmt.Println("Done. Try: gatefold list --dir", targetDir)
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
