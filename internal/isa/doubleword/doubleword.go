// Package doubleword adds the 32-bit operand size.
package doubleword

import (
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/isa/baseisa"
)

// Ext is the double-word-operations extension.
var Ext = decode.New("double-word-operations", "dw", 1, 14)

func init() {
	baseisa.RegisterSize(2, "d", decode.Single(Ext))
}
