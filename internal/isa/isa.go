// Package isa pulls in every extension module so their init()
// registrations run, mirroring the original decoder's single
// `import extensions` aggregator package.
package isa

import (
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/arbitrarystackpointer"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/baseisa"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/conditionalprefix"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/doubleword"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/expandedopcodes"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/expandedregisters"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/halfword"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/quadword"
	_ "github.com/ETC-A/ETCa-decompiler/internal/isa/stackfunctions"
)
