// Package halfword adds the 8-bit operand size.
package halfword

import (
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/isa/baseisa"
)

// Ext is the half-word-operations extension.
var Ext = decode.New("half-word-operations", "hw", 1, 3)

func init() {
	baseisa.RegisterSize(0, "h", decode.Single(Ext))
}
