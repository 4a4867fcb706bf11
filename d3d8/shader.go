package d3d8

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/dxshim/com"
	"github.com/wippyai/dxshim/errors"
)

// Vertex shader declaration token types (bits 29-31).
const (
	vsdNop         = 0
	vsdStream      = 1
	vsdStreamData  = 2
	vsdTessellator = 3
	vsdConstMem    = 4
	vsdExt         = 5
	vsdEnd         = 7

	// VSDEnd terminates a declaration.
	VSDEnd = 0xFFFFFFFF
)

// Declaration data types. D3DVSDT and D3DDECLTYPE share these values.
const (
	declTypeFloat1 = 0
	declTypeFloat2 = 1
	declTypeFloat3 = 2
	declTypeFloat4 = 3
	declTypeColor  = 4
	declTypeUByte4 = 5
	declTypeShort2 = 6
	declTypeShort4 = 7
	declTypeUnused = 17
)

var declTypeSize = map[uint32]uint16{
	declTypeFloat1: 4,
	declTypeFloat2: 8,
	declTypeFloat3: 12,
	declTypeFloat4: 16,
	declTypeColor:  4,
	declTypeUByte4: 4,
	declTypeShort2: 4,
	declTypeShort4: 8,
}

// Declaration usages.
const (
	usagePosition     = 0
	usageBlendWeight  = 1
	usageBlendIndices = 2
	usageNormal       = 3
	usagePSize        = 4
	usageTexCoord     = 5
	usageColor        = 10
)

// registerUsage gives the usage and index of each Direct3D 8 input
// register (D3DVSDE_*).
var registerUsage = [...][2]uint8{
	{usagePosition, 0},
	{usageBlendWeight, 0},
	{usageBlendIndices, 0},
	{usageNormal, 0},
	{usagePSize, 0},
	{usageColor, 0},
	{usageColor, 1},
	{usageTexCoord, 0},
	{usageTexCoord, 1},
	{usageTexCoord, 2},
	{usageTexCoord, 3},
	{usageTexCoord, 4},
	{usageTexCoord, 5},
	{usageTexCoord, 6},
	{usageTexCoord, 7},
	{usagePosition, 1},
	{usageNormal, 1},
}

// Bytecode tokens.
const (
	opDcl       = 0x0000001F
	opDef       = 0x00000051
	opComment   = 0x0000FFFE
	opEnd       = 0x0000FFFF
	dclUsageBit = 0x80000000
	dclInputReg = 0x900F0000 // v register, full write mask

	// maxTokens bounds every token stream read from caller memory.
	maxTokens = 1 << 16
)

// ConstantBlock is a run of vec4 constants set by a declaration.
type ConstantBlock struct {
	Start  uint32
	Values []uint32
}

// Count returns the number of vec4 registers in the block.
func (c ConstantBlock) Count() uint32 {
	return uint32(len(c.Values) / 4)
}

// Declaration is a translated Direct3D 8 vertex shader declaration.
type Declaration struct {
	// Elements end with DeclEnd.
	Elements []VertexElement
	// Registers lists the input registers in declaration order.
	Registers []uint32
	Constants []ConstantBlock
}

// ReadDeclaration copies a declaration, including its end token, out of
// caller memory.
func ReadDeclaration(p uintptr) ([]uint32, error) {
	if p == 0 {
		return nil, errors.NilPointer(errors.PhaseTranslate, "IDirect3DDevice8", "CreateVertexShader", "pDeclaration")
	}
	var out []uint32
	for len(out) < maxTokens {
		t := com.Read[uint32](p + uintptr(len(out))*4)
		out = append(out, t)
		if t == VSDEnd {
			return out, nil
		}
		// Skip inline data so it is never mistaken for a token.
		n := 0
		switch t >> 29 {
		case vsdConstMem:
			n = int((t>>25)&0xF) * 4
		case vsdExt:
			n = int((t >> 24) & 0x1F)
		}
		for ; n > 0 && len(out) < maxTokens; n-- {
			out = append(out, com.Read[uint32](p+uintptr(len(out))*4))
		}
	}
	return nil, errors.InvalidInput(errors.PhaseTranslate, "vertex shader declaration is not terminated")
}

// ParseDeclaration translates declaration tokens into vertex elements.
func ParseDeclaration(tokens []uint32) (*Declaration, error) {
	d := &Declaration{}
	var stream, offset uint16
	seen := make(map[uint32]bool)

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t == VSDEnd {
			d.Elements = append(d.Elements, DeclEnd)
			return d, nil
		}

		switch t >> 29 {
		case vsdNop:
		case vsdStream:
			if t&(1<<28) != 0 {
				Logger().Debug("tessellation stream ignored")
				continue
			}
			stream = uint16(t & 0xF)
			offset = 0
		case vsdStreamData:
			if t&(1<<28) != 0 {
				offset += uint16((t>>16)&0xF) * 4
				continue
			}
			typ := (t >> 16) & 0xF
			reg := t & 0x1F
			size, ok := declTypeSize[typ]
			if !ok {
				return nil, errors.TranslationGap("IDirect3DDevice8", "CreateVertexShader", "D3DVSDT", typ)
			}
			if int(reg) >= len(registerUsage) {
				return nil, errors.TranslationGap("IDirect3DDevice8", "CreateVertexShader", "D3DVSDE", reg)
			}
			u := registerUsage[reg]
			d.Elements = append(d.Elements, VertexElement{
				Stream:     stream,
				Offset:     offset,
				Type:       uint8(typ),
				Usage:      u[0],
				UsageIndex: u[1],
			})
			if !seen[reg] {
				seen[reg] = true
				d.Registers = append(d.Registers, reg)
			}
			offset += size
		case vsdTessellator:
			Logger().Debug("tessellator token ignored", zap.String("token", fmt.Sprintf("0x%08X", t)))
		case vsdConstMem:
			count := int((t >> 25) & 0xF)
			if i+count*4 >= len(tokens) {
				return nil, declError(i, t).Detail("constant block of %d vectors overruns declaration", count).Build()
			}
			block := ConstantBlock{
				Start:  t & 0x7F,
				Values: append([]uint32(nil), tokens[i+1:i+1+count*4]...),
			}
			d.Constants = append(d.Constants, block)
			i += count * 4
		case vsdExt:
			i += int((t >> 24) & 0x1F)
		default:
			return nil, declError(i, t).Detail("reserved token type %d", t>>29).Build()
		}
	}
	return nil, errors.InvalidInput(errors.PhaseTranslate, "vertex shader declaration is not terminated")
}

// declError starts an error pointing at token i of a declaration.
func declError(i int, token uint32) *errors.Builder {
	return errors.New(errors.PhaseTranslate, errors.KindInvalidInput).
		Interface("IDirect3DDevice8").
		Method("CreateVertexShader").
		Path("declaration", strconv.Itoa(i)).
		Value(fmt.Sprintf("0x%08X", token))
}

// ReadFunction copies shader bytecode, including its end token, out of
// caller memory.
func ReadFunction(p uintptr) ([]uint32, error) {
	if p == 0 {
		return nil, errors.NilPointer(errors.PhaseTranslate, "IDirect3DDevice8", "CreateShader", "pFunction")
	}
	out := []uint32{com.Read[uint32](p)}
	for len(out) < maxTokens {
		t := com.Read[uint32](p + uintptr(len(out))*4)
		out = append(out, t)
		if t == opEnd {
			return out, nil
		}
		// Parameter tokens have the high bit set; only instruction
		// tokens can announce inline data.
		n := 0
		if t&0x80000000 == 0 {
			switch t & 0xFFFF {
			case opComment:
				n = int((t >> 16) & 0x7FFF)
			case opDef:
				n = 5
			}
		}
		for ; n > 0 && len(out) < maxTokens; n-- {
			out = append(out, com.Read[uint32](p+uintptr(len(out))*4))
		}
	}
	return nil, errors.InvalidInput(errors.PhaseTranslate, "shader function is not terminated")
}

// InsertDeclarations rewrites vs_1_x bytecode for Direct3D 9: the version
// becomes vs_1_1 and a dcl instruction is inserted for each input
// register the declaration binds.
func InsertDeclarations(function []uint32, regs []uint32) ([]uint32, error) {
	if len(function) == 0 {
		return nil, errors.InvalidInput(errors.PhaseTranslate, "empty shader function")
	}
	version := function[0]
	if version != VSVersion10 && version != VSVersion11 {
		return nil, errors.TranslationGap("IDirect3DDevice8", "CreateVertexShader", "version", fmt.Sprintf("0x%08X", version))
	}

	out := make([]uint32, 0, len(function)+3*len(regs))
	out = append(out, VSVersion11)
	for _, r := range regs {
		u := registerUsage[r]
		out = append(out,
			opDcl,
			dclUsageBit|uint32(u[0])|uint32(u[1])<<16,
			dclInputReg|r,
		)
	}
	return append(out, function[1:]...), nil
}

// ValidVertexShaderVersion reports whether v is a vs_1_0 or vs_1_1 token.
func ValidVertexShaderVersion(v uint32) bool {
	return v == VSVersion10 || v == VSVersion11
}

// ValidPixelShaderVersion reports whether v is a ps_1_0 to ps_1_4 token.
func ValidPixelShaderVersion(v uint32) bool {
	return v >= PSVersion10 && v <= PSVersion14
}
