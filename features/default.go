package features

import (
	_ "embed" // required for go:embed
)

//go:embed data/flashboot.yaml
var flashbootListData []byte

// Default returns the built-in list of Flashboot bootloader features.
func Default() List {
	list, err := Parse("flashboot.yaml", flashbootListData)
	if err != nil {
		panic(err) // the embedded file is covered by tests
	}
	return list
}
