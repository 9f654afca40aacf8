package cpu

import "fmt"

// The disassembler reads memory through a Peeker rather than the bus, so
// it costs no cycle and cannot trigger MMIO side effects. Effective
// addresses are computed with the current index registers, nestest-style.

// Disasm returns the disassembly of the instruction at pc, and its size in
// bytes.
func (c *CPU) Disasm(mem Peeker, pc uint16) (string, int) {
	d := &disasmCtx{cpu: c, mem: mem, pc: pc}
	return opsDisasm[mem.Peek8(pc)](d)
}

type disasmCtx struct {
	cpu *CPU
	mem Peeker
	pc  uint16
}

func peek16(mem Peeker, addr uint16) uint16 {
	lo := mem.Peek8(addr)
	hi := mem.Peek8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (d *disasmCtx) imm() uint8  { return d.mem.Peek8(d.pc + 1) }
func (d *disasmCtx) abs() uint16 { return peek16(d.mem, d.pc+1) }
func (d *disasmCtx) zp() uint8   { return d.mem.Peek8(d.pc + 1) }
func (d *disasmCtx) zpx() uint8  { return d.zp() + d.cpu.X }
func (d *disasmCtx) zpy() uint8  { return d.zp() + d.cpu.Y }

func (d *disasmCtx) rel() uint16 {
	off := int16(int8(d.mem.Peek8(d.pc + 1)))
	return uint16(int16(d.pc+2) + off)
}

// zero-page pointer read, wrapping within the page.
func (d *disasmCtx) zpr16(addr uint8) uint16 {
	lo := d.mem.Peek8(uint16(addr))
	hi := d.mem.Peek8(uint16(addr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

func (d *disasmCtx) izx() uint16 { return d.zpr16(d.zp() + d.cpu.X) }

func (d *disasmCtx) ind() uint16 {
	oper := d.abs()
	lo := d.mem.Peek8(oper)
	hi := d.mem.Peek8((0xff00 & oper) | (0x00ff & (oper + 1)))
	return uint16(hi)<<8 | uint16(lo)
}

// A disasmFunc returns the disassembly string and the instruction size for
// an opcode in its context.
type disasmFunc func(*disasmCtx) (string, int)

func disasmImp(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		return fmt.Sprintf("% 4s", op), 1
	}
}

func disasmAcc(op string) disasmFunc {
	return func(*disasmCtx) (string, int) {
		return fmt.Sprintf("% 4s A", op), 1
	}
}

func disasmImm(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		return fmt.Sprintf("% 4s #$%02X", op, d.imm()), 2
	}
}

func disasmJam() disasmFunc {
	return func(d *disasmCtx) (string, int) {
		return "*STP", 1
	}
}

func disasmAbs(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		addr := d.abs()
		switch op {
		case "JMP", "JSR":
			return fmt.Sprintf("% 4s $%04X", op, addr), 3
		default:
			return fmt.Sprintf("% 4s $%04X = %02X", op, addr, d.mem.Peek8(addr)), 3
		}
	}
}

func disasmAbx(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		oper := d.abs()
		addr := oper + uint16(d.cpu.X)
		return fmt.Sprintf("% 4s $%04X,X @ %04X = %02X", op, oper, addr, d.mem.Peek8(addr)), 3
	}
}

func disasmAby(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		oper := d.abs()
		addr := oper + uint16(d.cpu.Y)
		return fmt.Sprintf("% 4s $%04X,Y @ %04X = %02X", op, oper, addr, d.mem.Peek8(addr)), 3
	}
}

func disasmZp(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		addr := d.zp()
		return fmt.Sprintf("% 4s $%02X = %02X", op, addr, d.mem.Peek8(uint16(addr))), 2
	}
}

func disasmZpx(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		addr := d.zp()
		eff := d.zpx()
		return fmt.Sprintf("% 4s $%02X,X @ %02X = %02X", op, addr, eff, d.mem.Peek8(uint16(eff))), 2
	}
}

func disasmZpy(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		addr := d.zp()
		eff := d.zpy()
		return fmt.Sprintf("% 4s $%02X,Y @ %02X = %02X", op, addr, eff, d.mem.Peek8(uint16(eff))), 2
	}
}

func disasmRel(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		return fmt.Sprintf("% 4s $%04X", op, d.rel()), 2
	}
}

// indirect (JMP-only)
func disasmInd(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		return fmt.Sprintf("% 4s ($%04X) = %04X", op, d.abs(), d.ind()), 3
	}
}

func disasmIzx(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		oper := d.zp()
		zp := oper + d.cpu.X
		addr := d.izx()
		return fmt.Sprintf("% 4s ($%02X,X) @ %02X = %04X = %02X", op, oper, zp, addr, d.mem.Peek8(addr)), 2
	}
}

func disasmIzy(op string) disasmFunc {
	return func(d *disasmCtx) (string, int) {
		oper := d.zp()
		base := d.zpr16(oper)
		dst := base + uint16(d.cpu.Y)
		return fmt.Sprintf("% 4s ($%02X),Y = %04X @ %04X = %02X", op, oper, base, dst, d.mem.Peek8(dst)), 2
	}
}

var opsDisasm = [256]disasmFunc{
	0x00: disasmImp("BRK"),
	0x01: disasmIzx("ORA"),
	0x02: disasmJam(),
	0x03: disasmIzx("*SLO"),
	0x04: disasmZp("*NOP"),
	0x05: disasmZp("ORA"),
	0x06: disasmZp("ASL"),
	0x07: disasmZp("*SLO"),
	0x08: disasmImp("PHP"),
	0x09: disasmImm("ORA"),
	0x0A: disasmAcc("ASL"),
	0x0B: disasmImm("*ANC"),
	0x0C: disasmAbs("*NOP"),
	0x0D: disasmAbs("ORA"),
	0x0E: disasmAbs("ASL"),
	0x0F: disasmAbs("*SLO"),
	0x10: disasmRel("BPL"),
	0x11: disasmIzy("ORA"),
	0x12: disasmJam(),
	0x13: disasmIzy("*SLO"),
	0x14: disasmZpx("*NOP"),
	0x15: disasmZpx("ORA"),
	0x16: disasmZpx("ASL"),
	0x17: disasmZpx("*SLO"),
	0x18: disasmImp("CLC"),
	0x19: disasmAby("ORA"),
	0x1A: disasmImp("*NOP"),
	0x1B: disasmAby("*SLO"),
	0x1C: disasmAbx("*NOP"),
	0x1D: disasmAbx("ORA"),
	0x1E: disasmAbx("ASL"),
	0x1F: disasmAbx("*SLO"),
	0x20: disasmAbs("JSR"),
	0x21: disasmIzx("AND"),
	0x22: disasmJam(),
	0x23: disasmIzx("*RLA"),
	0x24: disasmZp("BIT"),
	0x25: disasmZp("AND"),
	0x26: disasmZp("ROL"),
	0x27: disasmZp("*RLA"),
	0x28: disasmImp("PLP"),
	0x29: disasmImm("AND"),
	0x2A: disasmAcc("ROL"),
	0x2B: disasmImm("*ANC"),
	0x2C: disasmAbs("BIT"),
	0x2D: disasmAbs("AND"),
	0x2E: disasmAbs("ROL"),
	0x2F: disasmAbs("*RLA"),
	0x30: disasmRel("BMI"),
	0x31: disasmIzy("AND"),
	0x32: disasmJam(),
	0x33: disasmIzy("*RLA"),
	0x34: disasmZpx("*NOP"),
	0x35: disasmZpx("AND"),
	0x36: disasmZpx("ROL"),
	0x37: disasmZpx("*RLA"),
	0x38: disasmImp("SEC"),
	0x39: disasmAby("AND"),
	0x3A: disasmImp("*NOP"),
	0x3B: disasmAby("*RLA"),
	0x3C: disasmAbx("*NOP"),
	0x3D: disasmAbx("AND"),
	0x3E: disasmAbx("ROL"),
	0x3F: disasmAbx("*RLA"),
	0x40: disasmImp("RTI"),
	0x41: disasmIzx("EOR"),
	0x42: disasmJam(),
	0x43: disasmIzx("*SRE"),
	0x44: disasmZp("*NOP"),
	0x45: disasmZp("EOR"),
	0x46: disasmZp("LSR"),
	0x47: disasmZp("*SRE"),
	0x48: disasmImp("PHA"),
	0x49: disasmImm("EOR"),
	0x4A: disasmAcc("LSR"),
	0x4B: disasmImm("*ALR"),
	0x4C: disasmAbs("JMP"),
	0x4D: disasmAbs("EOR"),
	0x4E: disasmAbs("LSR"),
	0x4F: disasmAbs("*SRE"),
	0x50: disasmRel("BVC"),
	0x51: disasmIzy("EOR"),
	0x52: disasmJam(),
	0x53: disasmIzy("*SRE"),
	0x54: disasmZpx("*NOP"),
	0x55: disasmZpx("EOR"),
	0x56: disasmZpx("LSR"),
	0x57: disasmZpx("*SRE"),
	0x58: disasmImp("CLI"),
	0x59: disasmAby("EOR"),
	0x5A: disasmImp("*NOP"),
	0x5B: disasmAby("*SRE"),
	0x5C: disasmAbx("*NOP"),
	0x5D: disasmAbx("EOR"),
	0x5E: disasmAbx("LSR"),
	0x5F: disasmAbx("*SRE"),
	0x60: disasmImp("RTS"),
	0x61: disasmIzx("ADC"),
	0x62: disasmJam(),
	0x63: disasmIzx("*RRA"),
	0x64: disasmZp("*NOP"),
	0x65: disasmZp("ADC"),
	0x66: disasmZp("ROR"),
	0x67: disasmZp("*RRA"),
	0x68: disasmImp("PLA"),
	0x69: disasmImm("ADC"),
	0x6A: disasmAcc("ROR"),
	0x6B: disasmImm("*ARR"),
	0x6C: disasmInd("JMP"),
	0x6D: disasmAbs("ADC"),
	0x6E: disasmAbs("ROR"),
	0x6F: disasmAbs("*RRA"),
	0x70: disasmRel("BVS"),
	0x71: disasmIzy("ADC"),
	0x72: disasmJam(),
	0x73: disasmIzy("*RRA"),
	0x74: disasmZpx("*NOP"),
	0x75: disasmZpx("ADC"),
	0x76: disasmZpx("ROR"),
	0x77: disasmZpx("*RRA"),
	0x78: disasmImp("SEI"),
	0x79: disasmAby("ADC"),
	0x7A: disasmImp("*NOP"),
	0x7B: disasmAby("*RRA"),
	0x7C: disasmAbx("*NOP"),
	0x7D: disasmAbx("ADC"),
	0x7E: disasmAbx("ROR"),
	0x7F: disasmAbx("*RRA"),
	0x80: disasmImm("*NOP"),
	0x81: disasmIzx("STA"),
	0x82: disasmImm("*NOP"),
	0x83: disasmIzx("*SAX"),
	0x84: disasmZp("STY"),
	0x85: disasmZp("STA"),
	0x86: disasmZp("STX"),
	0x87: disasmZp("*SAX"),
	0x88: disasmImp("DEY"),
	0x89: disasmImm("*NOP"),
	0x8A: disasmImp("TXA"),
	0x8B: disasmImm("*ANE"),
	0x8C: disasmAbs("STY"),
	0x8D: disasmAbs("STA"),
	0x8E: disasmAbs("STX"),
	0x8F: disasmAbs("*SAX"),
	0x90: disasmRel("BCC"),
	0x91: disasmIzy("STA"),
	0x92: disasmJam(),
	0x93: disasmIzy("*SHA"),
	0x94: disasmZpx("STY"),
	0x95: disasmZpx("STA"),
	0x96: disasmZpy("STX"),
	0x97: disasmZpy("*SAX"),
	0x98: disasmImp("TYA"),
	0x99: disasmAby("STA"),
	0x9A: disasmImp("TXS"),
	0x9B: disasmAby("*TAS"),
	0x9C: disasmAbx("*SHY"),
	0x9D: disasmAbx("STA"),
	0x9E: disasmAby("*SHX"),
	0x9F: disasmAby("*SHA"),
	0xA0: disasmImm("LDY"),
	0xA1: disasmIzx("LDA"),
	0xA2: disasmImm("LDX"),
	0xA3: disasmIzx("*LAX"),
	0xA4: disasmZp("LDY"),
	0xA5: disasmZp("LDA"),
	0xA6: disasmZp("LDX"),
	0xA7: disasmZp("*LAX"),
	0xA8: disasmImp("TAY"),
	0xA9: disasmImm("LDA"),
	0xAA: disasmImp("TAX"),
	0xAB: disasmImm("*LXA"),
	0xAC: disasmAbs("LDY"),
	0xAD: disasmAbs("LDA"),
	0xAE: disasmAbs("LDX"),
	0xAF: disasmAbs("*LAX"),
	0xB0: disasmRel("BCS"),
	0xB1: disasmIzy("LDA"),
	0xB2: disasmJam(),
	0xB3: disasmIzy("*LAX"),
	0xB4: disasmZpx("LDY"),
	0xB5: disasmZpx("LDA"),
	0xB6: disasmZpy("LDX"),
	0xB7: disasmZpy("*LAX"),
	0xB8: disasmImp("CLV"),
	0xB9: disasmAby("LDA"),
	0xBA: disasmImp("TSX"),
	0xBB: disasmAby("*LAS"),
	0xBC: disasmAbx("LDY"),
	0xBD: disasmAbx("LDA"),
	0xBE: disasmAby("LDX"),
	0xBF: disasmAby("*LAX"),
	0xC0: disasmImm("CPY"),
	0xC1: disasmIzx("CMP"),
	0xC2: disasmImm("*NOP"),
	0xC3: disasmIzx("*DCP"),
	0xC4: disasmZp("CPY"),
	0xC5: disasmZp("CMP"),
	0xC6: disasmZp("DEC"),
	0xC7: disasmZp("*DCP"),
	0xC8: disasmImp("INY"),
	0xC9: disasmImm("CMP"),
	0xCA: disasmImp("DEX"),
	0xCB: disasmImm("*SBX"),
	0xCC: disasmAbs("CPY"),
	0xCD: disasmAbs("CMP"),
	0xCE: disasmAbs("DEC"),
	0xCF: disasmAbs("*DCP"),
	0xD0: disasmRel("BNE"),
	0xD1: disasmIzy("CMP"),
	0xD2: disasmJam(),
	0xD3: disasmIzy("*DCP"),
	0xD4: disasmZpx("*NOP"),
	0xD5: disasmZpx("CMP"),
	0xD6: disasmZpx("DEC"),
	0xD7: disasmZpx("*DCP"),
	0xD8: disasmImp("CLD"),
	0xD9: disasmAby("CMP"),
	0xDA: disasmImp("*NOP"),
	0xDB: disasmAby("*DCP"),
	0xDC: disasmAbx("*NOP"),
	0xDD: disasmAbx("CMP"),
	0xDE: disasmAbx("DEC"),
	0xDF: disasmAbx("*DCP"),
	0xE0: disasmImm("CPX"),
	0xE1: disasmIzx("SBC"),
	0xE2: disasmImm("*NOP"),
	0xE3: disasmIzx("*ISC"),
	0xE4: disasmZp("CPX"),
	0xE5: disasmZp("SBC"),
	0xE6: disasmZp("INC"),
	0xE7: disasmZp("*ISC"),
	0xE8: disasmImp("INX"),
	0xE9: disasmImm("SBC"),
	0xEA: disasmImp("NOP"),
	0xEB: disasmImm("*SBC"),
	0xEC: disasmAbs("CPX"),
	0xED: disasmAbs("SBC"),
	0xEE: disasmAbs("INC"),
	0xEF: disasmAbs("*ISC"),
	0xF0: disasmRel("BEQ"),
	0xF1: disasmIzy("SBC"),
	0xF2: disasmJam(),
	0xF3: disasmIzy("*ISC"),
	0xF4: disasmZpx("*NOP"),
	0xF5: disasmZpx("SBC"),
	0xF6: disasmZpx("INC"),
	0xF7: disasmZpx("*ISC"),
	0xF8: disasmImp("SED"),
	0xF9: disasmAby("SBC"),
	0xFA: disasmImp("*NOP"),
	0xFB: disasmAby("*ISC"),
	0xFC: disasmAbx("*NOP"),
	0xFD: disasmAbx("SBC"),
	0xFE: disasmAbx("INC"),
	0xFF: disasmAbx("*ISC"),
}
