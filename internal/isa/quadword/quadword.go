// Package quadword adds the 64-bit operand size.
package quadword

import (
	"github.com/ETC-A/ETCa-decompiler/internal/decode"
	"github.com/ETC-A/ETCa-decompiler/internal/isa/baseisa"
)

// Ext is the quad-word-operations extension.
var Ext = decode.New("quad-word-operations", "qw", 0, 15)

func init() {
	baseisa.RegisterSize(3, "q", decode.Single(Ext))
}
