package cpu

// 6502 opcode dispatch table. One entry per opcode byte; entries shared
// between opcodes (ANC, STP, ...) appear multiple times.
var ops = [256]func(cpu *CPU){
	0x00: BRK,
	0x01: ORAizx,
	0x02: STP,
	0x03: SLOizx,
	0x04: NOPzp,
	0x05: ORAzp,
	0x06: ASLzp,
	0x07: SLOzp,
	0x08: PHP,
	0x09: ORAimm,
	0x0A: ASLacc,
	0x0B: ANC,
	0x0C: NOPabs,
	0x0D: ORAabs,
	0x0E: ASLabs,
	0x0F: SLOabs,
	0x10: BPL,
	0x11: ORAizy,
	0x12: STP,
	0x13: SLOizy,
	0x14: NOPzpx,
	0x15: ORAzpx,
	0x16: ASLzpx,
	0x17: SLOzpx,
	0x18: CLC,
	0x19: ORAaby,
	0x1A: NOPimp,
	0x1B: SLOaby,
	0x1C: NOPabx,
	0x1D: ORAabx,
	0x1E: ASLabx,
	0x1F: SLOabx,
	0x20: JSR,
	0x21: ANDizx,
	0x22: STP,
	0x23: RLAizx,
	0x24: BITzp,
	0x25: ANDzp,
	0x26: ROLzp,
	0x27: RLAzp,
	0x28: PLP,
	0x29: ANDimm,
	0x2A: ROLacc,
	0x2B: ANC,
	0x2C: BITabs,
	0x2D: ANDabs,
	0x2E: ROLabs,
	0x2F: RLAabs,
	0x30: BMI,
	0x31: ANDizy,
	0x32: STP,
	0x33: RLAizy,
	0x34: NOPzpx,
	0x35: ANDzpx,
	0x36: ROLzpx,
	0x37: RLAzpx,
	0x38: SEC,
	0x39: ANDaby,
	0x3A: NOPimp,
	0x3B: RLAaby,
	0x3C: NOPabx,
	0x3D: ANDabx,
	0x3E: ROLabx,
	0x3F: RLAabx,
	0x40: RTI,
	0x41: EORizx,
	0x42: STP,
	0x43: SREizx,
	0x44: NOPzp,
	0x45: EORzp,
	0x46: LSRzp,
	0x47: SREzp,
	0x48: PHA,
	0x49: EORimm,
	0x4A: LSRacc,
	0x4B: ALR,
	0x4C: JMPabs,
	0x4D: EORabs,
	0x4E: LSRabs,
	0x4F: SREabs,
	0x50: BVC,
	0x51: EORizy,
	0x52: STP,
	0x53: SREizy,
	0x54: NOPzpx,
	0x55: EORzpx,
	0x56: LSRzpx,
	0x57: SREzpx,
	0x58: CLI,
	0x59: EORaby,
	0x5A: NOPimp,
	0x5B: SREaby,
	0x5C: NOPabx,
	0x5D: EORabx,
	0x5E: LSRabx,
	0x5F: SREabx,
	0x60: RTS,
	0x61: ADCizx,
	0x62: STP,
	0x63: RRAizx,
	0x64: NOPzp,
	0x65: ADCzp,
	0x66: RORzp,
	0x67: RRAzp,
	0x68: PLA,
	0x69: ADCimm,
	0x6A: RORacc,
	0x6B: ARR,
	0x6C: JMPind,
	0x6D: ADCabs,
	0x6E: RORabs,
	0x6F: RRAabs,
	0x70: BVS,
	0x71: ADCizy,
	0x72: STP,
	0x73: RRAizy,
	0x74: NOPzpx,
	0x75: ADCzpx,
	0x76: RORzpx,
	0x77: RRAzpx,
	0x78: SEI,
	0x79: ADCaby,
	0x7A: NOPimp,
	0x7B: RRAaby,
	0x7C: NOPabx,
	0x7D: ADCabx,
	0x7E: RORabx,
	0x7F: RRAabx,
	0x80: NOPimm,
	0x81: STAizx,
	0x82: NOPimm,
	0x83: SAXizx,
	0x84: STYzp,
	0x85: STAzp,
	0x86: STXzp,
	0x87: SAXzp,
	0x88: DEY,
	0x89: NOPimm,
	0x8A: TXA,
	0x8B: ANE,
	0x8C: STYabs,
	0x8D: STAabs,
	0x8E: STXabs,
	0x8F: SAXabs,
	0x90: BCC,
	0x91: STAizy,
	0x92: STP,
	0x93: SHAizy,
	0x94: STYzpx,
	0x95: STAzpx,
	0x96: STXzpy,
	0x97: SAXzpy,
	0x98: TYA,
	0x99: STAaby,
	0x9A: TXS,
	0x9B: TAS,
	0x9C: SHY,
	0x9D: STAabx,
	0x9E: SHX,
	0x9F: SHAaby,
	0xA0: LDYimm,
	0xA1: LDAizx,
	0xA2: LDXimm,
	0xA3: LAXizx,
	0xA4: LDYzp,
	0xA5: LDAzp,
	0xA6: LDXzp,
	0xA7: LAXzp,
	0xA8: TAY,
	0xA9: LDAimm,
	0xAA: TAX,
	0xAB: LXA,
	0xAC: LDYabs,
	0xAD: LDAabs,
	0xAE: LDXabs,
	0xAF: LAXabs,
	0xB0: BCS,
	0xB1: LDAizy,
	0xB2: STP,
	0xB3: LAXizy,
	0xB4: LDYzpx,
	0xB5: LDAzpx,
	0xB6: LDXzpy,
	0xB7: LAXzpy,
	0xB8: CLV,
	0xB9: LDAaby,
	0xBA: TSX,
	0xBB: LAS,
	0xBC: LDYabx,
	0xBD: LDAabx,
	0xBE: LDXaby,
	0xBF: LAXaby,
	0xC0: CPYimm,
	0xC1: CMPizx,
	0xC2: NOPimm,
	0xC3: DCPizx,
	0xC4: CPYzp,
	0xC5: CMPzp,
	0xC6: DECzp,
	0xC7: DCPzp,
	0xC8: INY,
	0xC9: CMPimm,
	0xCA: DEX,
	0xCB: SBX,
	0xCC: CPYabs,
	0xCD: CMPabs,
	0xCE: DECabs,
	0xCF: DCPabs,
	0xD0: BNE,
	0xD1: CMPizy,
	0xD2: STP,
	0xD3: DCPizy,
	0xD4: NOPzpx,
	0xD5: CMPzpx,
	0xD6: DECzpx,
	0xD7: DCPzpx,
	0xD8: CLD,
	0xD9: CMPaby,
	0xDA: NOPimp,
	0xDB: DCPaby,
	0xDC: NOPabx,
	0xDD: CMPabx,
	0xDE: DECabx,
	0xDF: DCPabx,
	0xE0: CPXimm,
	0xE1: SBCizx,
	0xE2: NOPimm,
	0xE3: ISCizx,
	0xE4: CPXzp,
	0xE5: SBCzp,
	0xE6: INCzp,
	0xE7: ISCzp,
	0xE8: INX,
	0xE9: SBCimm,
	0xEA: NOPimp,
	0xEB: SBCimm,
	0xEC: CPXabs,
	0xED: SBCabs,
	0xEE: INCabs,
	0xEF: ISCabs,
	0xF0: BEQ,
	0xF1: SBCizy,
	0xF2: STP,
	0xF3: ISCizy,
	0xF4: NOPzpx,
	0xF5: SBCzpx,
	0xF6: INCzpx,
	0xF7: ISCzpx,
	0xF8: SED,
	0xF9: SBCaby,
	0xFA: NOPimp,
	0xFB: ISCaby,
	0xFC: NOPabx,
	0xFD: SBCabx,
	0xFE: INCabx,
	0xFF: ISCabx,
}

var opcodeNames = [256]string{
	"BRK", "ORA", "STP", "SLO", "NOP", "ORA", "ASL", "SLO", "PHP", "ORA", "ASL", "ANC", "NOP", "ORA", "ASL", "SLO",
	"BPL", "ORA", "STP", "SLO", "NOP", "ORA", "ASL", "SLO", "CLC", "ORA", "NOP", "SLO", "NOP", "ORA", "ASL", "SLO",
	"JSR", "AND", "STP", "RLA", "BIT", "AND", "ROL", "RLA", "PLP", "AND", "ROL", "ANC", "BIT", "AND", "ROL", "RLA",
	"BMI", "AND", "STP", "RLA", "NOP", "AND", "ROL", "RLA", "SEC", "AND", "NOP", "RLA", "NOP", "AND", "ROL", "RLA",
	"RTI", "EOR", "STP", "SRE", "NOP", "EOR", "LSR", "SRE", "PHA", "EOR", "LSR", "ALR", "JMP", "EOR", "LSR", "SRE",
	"BVC", "EOR", "STP", "SRE", "NOP", "EOR", "LSR", "SRE", "CLI", "EOR", "NOP", "SRE", "NOP", "EOR", "LSR", "SRE",
	"RTS", "ADC", "STP", "RRA", "NOP", "ADC", "ROR", "RRA", "PLA", "ADC", "ROR", "ARR", "JMP", "ADC", "ROR", "RRA",
	"BVS", "ADC", "STP", "RRA", "NOP", "ADC", "ROR", "RRA", "SEI", "ADC", "NOP", "RRA", "NOP", "ADC", "ROR", "RRA",
	"NOP", "STA", "NOP", "SAX", "STY", "STA", "STX", "SAX", "DEY", "NOP", "TXA", "ANE", "STY", "STA", "STX", "SAX",
	"BCC", "STA", "STP", "SHA", "STY", "STA", "STX", "SAX", "TYA", "STA", "TXS", "TAS", "SHY", "STA", "SHX", "SHA",
	"LDY", "LDA", "LDX", "LAX", "LDY", "LDA", "LDX", "LAX", "TAY", "LDA", "TAX", "LXA", "LDY", "LDA", "LDX", "LAX",
	"BCS", "LDA", "STP", "LAX", "LDY", "LDA", "LDX", "LAX", "CLV", "LDA", "TSX", "LAS", "LDY", "LDA", "LDX", "LAX",
	"CPY", "CMP", "NOP", "DCP", "CPY", "CMP", "DEC", "DCP", "INY", "CMP", "DEX", "SBX", "CPY", "CMP", "DEC", "DCP",
	"BNE", "CMP", "STP", "DCP", "NOP", "CMP", "DEC", "DCP", "CLD", "CMP", "NOP", "DCP", "NOP", "CMP", "DEC", "DCP",
	"CPX", "SBC", "NOP", "ISC", "CPX", "SBC", "INC", "ISC", "INX", "SBC", "NOP", "SBC", "CPX", "SBC", "INC", "ISC",
	"BEQ", "SBC", "STP", "ISC", "NOP", "SBC", "INC", "ISC", "SED", "SBC", "NOP", "ISC", "NOP", "SBC", "INC", "ISC",
}

// illegalOps marks the undocumented opcodes, STP excluded: STP terminates
// with ErrHalted in every mode.
var illegalOps = [256]uint8{
	0x03: 1, 0x04: 1, 0x07: 1, 0x0B: 1, 0x0C: 1, 0x0F: 1,
	0x13: 1, 0x14: 1, 0x17: 1, 0x1A: 1, 0x1B: 1, 0x1C: 1, 0x1F: 1,
	0x23: 1, 0x27: 1, 0x2B: 1, 0x2F: 1,
	0x33: 1, 0x34: 1, 0x37: 1, 0x3A: 1, 0x3B: 1, 0x3C: 1, 0x3F: 1,
	0x43: 1, 0x44: 1, 0x47: 1, 0x4B: 1, 0x4F: 1,
	0x53: 1, 0x54: 1, 0x57: 1, 0x5A: 1, 0x5B: 1, 0x5C: 1, 0x5F: 1,
	0x63: 1, 0x64: 1, 0x67: 1, 0x6B: 1, 0x6F: 1,
	0x73: 1, 0x74: 1, 0x77: 1, 0x7A: 1, 0x7B: 1, 0x7C: 1, 0x7F: 1,
	0x80: 1, 0x82: 1, 0x83: 1, 0x87: 1, 0x89: 1, 0x8B: 1, 0x8F: 1,
	0x93: 1, 0x97: 1, 0x9B: 1, 0x9C: 1, 0x9E: 1, 0x9F: 1,
	0xA3: 1, 0xA7: 1, 0xAB: 1, 0xAF: 1,
	0xB3: 1, 0xB7: 1, 0xBB: 1, 0xBF: 1,
	0xC2: 1, 0xC3: 1, 0xC7: 1, 0xCB: 1, 0xCF: 1,
	0xD3: 1, 0xD4: 1, 0xD7: 1, 0xDA: 1, 0xDB: 1, 0xDC: 1, 0xDF: 1,
	0xE2: 1, 0xE3: 1, 0xE7: 1, 0xEB: 1, 0xEF: 1,
	0xF3: 1, 0xF4: 1, 0xF7: 1, 0xFA: 1, 0xFB: 1, 0xFC: 1, 0xFF: 1,
}

// unstableOps marks the opcodes whose behavior differs between physical
// chips. They only execute under IllegalAll.
var unstableOps = [256]uint8{
	0x8B: 1, // ANE
	0x93: 1, // SHA (zp),Y
	0x9B: 1, // TAS
	0x9C: 1, // SHY
	0x9E: 1, // SHX
	0x9F: 1, // SHA abs,Y
	0xAB: 1, // LXA
	0xBB: 1, // LAS
}

/* register and flag helpers */

func (c *CPU) setreg(reg *uint8, val uint8) {
	*reg = val
	c.P.checkNZ(val)
}

func ora(cpu *CPU, val uint8) { cpu.setreg(&cpu.A, cpu.A|val) }
func and(cpu *CPU, val uint8) { cpu.setreg(&cpu.A, cpu.A&val) }
func eor(cpu *CPU, val uint8) { cpu.setreg(&cpu.A, cpu.A^val) }

func add(cpu *CPU, val uint8) {
	if cpu.BCD && cpu.P.D() {
		addBCD(cpu, val)
		return
	}

	carry := uint16(0)
	if cpu.P.C() {
		carry = 1
	}
	sum := uint16(cpu.A) + uint16(val) + carry
	cpu.P.checkCV(cpu.A, val, sum)
	cpu.A = uint8(sum)
	cpu.P.checkNZ(cpu.A)
}

func sub(cpu *CPU, val uint8) {
	if cpu.BCD && cpu.P.D() {
		subBCD(cpu, val)
		return
	}
	add(cpu, val^0xff)
}

// addBCD is NMOS decimal-mode ADC. Z comes from the binary sum, N and V
// from the intermediate sum before the high-nibble fixup.
func addBCD(cpu *CPU, val uint8) {
	carry := uint16(0)
	if cpu.P.C() {
		carry = 1
	}
	a, b := uint16(cpu.A), uint16(val)

	cpu.P.checkZ(uint8(a + b + carry))

	lo := (a & 0x0f) + (b & 0x0f) + carry
	if lo >= 0x0a {
		lo = ((lo + 0x06) & 0x0f) + 0x10
	}
	sum := (a & 0xf0) + (b & 0xf0) + lo
	cpu.P.checkN(uint8(sum))
	cpu.P.writeFlag(Overflow, (a^sum)&(b^sum)&0x80 != 0)
	if sum >= 0xa0 {
		sum += 0x60
	}
	cpu.P.writeFlag(Carry, sum >= 0x100)
	cpu.A = uint8(sum)
}

// subBCD is NMOS decimal-mode SBC. All flags come from the binary
// subtraction; only the accumulator gets the decimal adjustment.
func subBCD(cpu *CPU, val uint8) {
	carry := int16(0)
	if cpu.P.C() {
		carry = 1
	}
	a, b := int16(cpu.A), int16(val)

	bin := uint16(cpu.A) + uint16(val^0xff) + uint16(carry)
	cpu.P.checkCV(cpu.A, val^0xff, bin)
	cpu.P.checkNZ(uint8(bin))

	lo := (a & 0x0f) - (b & 0x0f) + carry - 1
	if lo < 0 {
		lo = ((lo - 0x06) & 0x0f) - 0x10
	}
	diff := (a & 0xf0) - (b & 0xf0) + lo
	if diff < 0 {
		diff -= 0x60
	}
	cpu.A = uint8(diff)
}

func compare(cpu *CPU, reg, val uint8) {
	cpu.P.checkNZ(reg - val)
	cpu.P.writeFlag(Carry, val <= reg)
}

func bit(cpu *CPU, val uint8) {
	cpu.P.clearFlags(Overflow | Negative)
	cpu.P |= P(val & 0b11000000)
	cpu.P.writeFlag(Zero, cpu.A&val == 0)
}

func lax(cpu *CPU, val uint8) {
	cpu.A = val
	cpu.X = val
	cpu.P.checkNZ(val)
}

/* shifts and rotates, on a register or on the rmw scratch value */

func asl(cpu *CPU, val *uint8) {
	carry := *val & 0x80
	*val <<= 1
	cpu.P.checkNZ(*val)
	cpu.P.writeFlag(Carry, carry != 0)
}

func lsr(cpu *CPU, val *uint8) {
	carry := *val & 0x01
	*val >>= 1
	cpu.P.checkNZ(*val)
	cpu.P.writeFlag(Carry, carry != 0)
}

func rol(cpu *CPU, val *uint8) {
	carry := *val & 0x80
	*val <<= 1
	if cpu.P.C() {
		*val |= 1 << 0
	}
	cpu.P.checkNZ(*val)
	cpu.P.writeFlag(Carry, carry != 0)
}

func ror(cpu *CPU, val *uint8) {
	carry := *val & 0x01
	*val >>= 1
	if cpu.P.C() {
		*val |= 1 << 7
	}
	cpu.P.checkNZ(*val)
	cpu.P.writeFlag(Carry, carry != 0)
}

func inc(cpu *CPU, val *uint8) {
	*val++
	cpu.P.checkNZ(*val)
}

func dec(cpu *CPU, val *uint8) {
	*val--
	cpu.P.checkNZ(*val)
}

/* undocumented rmw combos */

func slo(cpu *CPU, val *uint8) { asl(cpu, val); ora(cpu, *val) }
func rla(cpu *CPU, val *uint8) { rol(cpu, val); and(cpu, *val) }
func sre(cpu *CPU, val *uint8) { lsr(cpu, val); eor(cpu, *val) }
func rra(cpu *CPU, val *uint8) { ror(cpu, val); add(cpu, *val) }
func isc(cpu *CPU, val *uint8) { inc(cpu, val); sub(cpu, *val) }

func dcp(cpu *CPU, val *uint8) {
	*val--
	compare(cpu, cpu.A, *val)
}

// rmw runs the read-modify-write pattern: read the operand, write the
// original value back (that write is on the bus, and visible), then write
// the modified value.
func (c *CPU) rmw(addr uint16, f func(*CPU, *uint8)) {
	val := c.Read8(addr)
	c.Write8(addr, val) // dummy write
	f(c, &val)
	c.Write8(addr, val)
}

/* opcodes */

// 00
func BRK(cpu *CPU) {
	_ = cpu.fetch8() // padding byte

	cpu.push16(cpu.PC)

	p := cpu.P | Break | Reserved
	if cpu.needNmi {
		cpu.needNmi = false
		cpu.push8(uint8(p))
		cpu.P.setFlags(Interrupt)
		cpu.PC = cpu.Read16(NMIVector)
	} else {
		cpu.push8(uint8(p))
		cpu.P.setFlags(Interrupt)
		cpu.PC = cpu.Read16(IRQVector)
	}

	// The first instruction of the handler must run before a pending NMI
	// gets serviced.
	cpu.prevNeedNmi = false
}

// 02, 12, 22, ... jam the CPU. Not a real instruction, but the accepted
// way to stop a test program dead.
func STP(cpu *CPU) {
	cpu.halt()
}

/* ORA */

func ORAimm(cpu *CPU) { ora(cpu, cpu.fetch8()) }
func ORAzp(cpu *CPU)  { ora(cpu, cpu.Read8(cpu.zpg())) }
func ORAzpx(cpu *CPU) { ora(cpu, cpu.Read8(cpu.zpx())) }
func ORAabs(cpu *CPU) { ora(cpu, cpu.Read8(cpu.abs())) }
func ORAabx(cpu *CPU) { ora(cpu, cpu.Read8(cpu.abx(false))) }
func ORAaby(cpu *CPU) { ora(cpu, cpu.Read8(cpu.aby(false))) }
func ORAizx(cpu *CPU) { ora(cpu, cpu.Read8(cpu.izx())) }
func ORAizy(cpu *CPU) { ora(cpu, cpu.Read8(cpu.izy(false))) }

/* AND */

func ANDimm(cpu *CPU) { and(cpu, cpu.fetch8()) }
func ANDzp(cpu *CPU)  { and(cpu, cpu.Read8(cpu.zpg())) }
func ANDzpx(cpu *CPU) { and(cpu, cpu.Read8(cpu.zpx())) }
func ANDabs(cpu *CPU) { and(cpu, cpu.Read8(cpu.abs())) }
func ANDabx(cpu *CPU) { and(cpu, cpu.Read8(cpu.abx(false))) }
func ANDaby(cpu *CPU) { and(cpu, cpu.Read8(cpu.aby(false))) }
func ANDizx(cpu *CPU) { and(cpu, cpu.Read8(cpu.izx())) }
func ANDizy(cpu *CPU) { and(cpu, cpu.Read8(cpu.izy(false))) }

/* EOR */

func EORimm(cpu *CPU) { eor(cpu, cpu.fetch8()) }
func EORzp(cpu *CPU)  { eor(cpu, cpu.Read8(cpu.zpg())) }
func EORzpx(cpu *CPU) { eor(cpu, cpu.Read8(cpu.zpx())) }
func EORabs(cpu *CPU) { eor(cpu, cpu.Read8(cpu.abs())) }
func EORabx(cpu *CPU) { eor(cpu, cpu.Read8(cpu.abx(false))) }
func EORaby(cpu *CPU) { eor(cpu, cpu.Read8(cpu.aby(false))) }
func EORizx(cpu *CPU) { eor(cpu, cpu.Read8(cpu.izx())) }
func EORizy(cpu *CPU) { eor(cpu, cpu.Read8(cpu.izy(false))) }

/* ADC */

func ADCimm(cpu *CPU) { add(cpu, cpu.fetch8()) }
func ADCzp(cpu *CPU)  { add(cpu, cpu.Read8(cpu.zpg())) }
func ADCzpx(cpu *CPU) { add(cpu, cpu.Read8(cpu.zpx())) }
func ADCabs(cpu *CPU) { add(cpu, cpu.Read8(cpu.abs())) }
func ADCabx(cpu *CPU) { add(cpu, cpu.Read8(cpu.abx(false))) }
func ADCaby(cpu *CPU) { add(cpu, cpu.Read8(cpu.aby(false))) }
func ADCizx(cpu *CPU) { add(cpu, cpu.Read8(cpu.izx())) }
func ADCizy(cpu *CPU) { add(cpu, cpu.Read8(cpu.izy(false))) }

/* SBC */

func SBCimm(cpu *CPU) { sub(cpu, cpu.fetch8()) }
func SBCzp(cpu *CPU)  { sub(cpu, cpu.Read8(cpu.zpg())) }
func SBCzpx(cpu *CPU) { sub(cpu, cpu.Read8(cpu.zpx())) }
func SBCabs(cpu *CPU) { sub(cpu, cpu.Read8(cpu.abs())) }
func SBCabx(cpu *CPU) { sub(cpu, cpu.Read8(cpu.abx(false))) }
func SBCaby(cpu *CPU) { sub(cpu, cpu.Read8(cpu.aby(false))) }
func SBCizx(cpu *CPU) { sub(cpu, cpu.Read8(cpu.izx())) }
func SBCizy(cpu *CPU) { sub(cpu, cpu.Read8(cpu.izy(false))) }

/* CMP, CPX, CPY */

func CMPimm(cpu *CPU) { compare(cpu, cpu.A, cpu.fetch8()) }
func CMPzp(cpu *CPU)  { compare(cpu, cpu.A, cpu.Read8(cpu.zpg())) }
func CMPzpx(cpu *CPU) { compare(cpu, cpu.A, cpu.Read8(cpu.zpx())) }
func CMPabs(cpu *CPU) { compare(cpu, cpu.A, cpu.Read8(cpu.abs())) }
func CMPabx(cpu *CPU) { compare(cpu, cpu.A, cpu.Read8(cpu.abx(false))) }
func CMPaby(cpu *CPU) { compare(cpu, cpu.A, cpu.Read8(cpu.aby(false))) }
func CMPizx(cpu *CPU) { compare(cpu, cpu.A, cpu.Read8(cpu.izx())) }
func CMPizy(cpu *CPU) { compare(cpu, cpu.A, cpu.Read8(cpu.izy(false))) }

func CPXimm(cpu *CPU) { compare(cpu, cpu.X, cpu.fetch8()) }
func CPXzp(cpu *CPU)  { compare(cpu, cpu.X, cpu.Read8(cpu.zpg())) }
func CPXabs(cpu *CPU) { compare(cpu, cpu.X, cpu.Read8(cpu.abs())) }

func CPYimm(cpu *CPU) { compare(cpu, cpu.Y, cpu.fetch8()) }
func CPYzp(cpu *CPU)  { compare(cpu, cpu.Y, cpu.Read8(cpu.zpg())) }
func CPYabs(cpu *CPU) { compare(cpu, cpu.Y, cpu.Read8(cpu.abs())) }

/* BIT */

func BITzp(cpu *CPU)  { bit(cpu, cpu.Read8(cpu.zpg())) }
func BITabs(cpu *CPU) { bit(cpu, cpu.Read8(cpu.abs())) }

/* loads */

func LDAimm(cpu *CPU) { cpu.setreg(&cpu.A, cpu.fetch8()) }
func LDAzp(cpu *CPU)  { cpu.setreg(&cpu.A, cpu.Read8(cpu.zpg())) }
func LDAzpx(cpu *CPU) { cpu.setreg(&cpu.A, cpu.Read8(cpu.zpx())) }
func LDAabs(cpu *CPU) { cpu.setreg(&cpu.A, cpu.Read8(cpu.abs())) }
func LDAabx(cpu *CPU) { cpu.setreg(&cpu.A, cpu.Read8(cpu.abx(false))) }
func LDAaby(cpu *CPU) { cpu.setreg(&cpu.A, cpu.Read8(cpu.aby(false))) }
func LDAizx(cpu *CPU) { cpu.setreg(&cpu.A, cpu.Read8(cpu.izx())) }
func LDAizy(cpu *CPU) { cpu.setreg(&cpu.A, cpu.Read8(cpu.izy(false))) }

func LDXimm(cpu *CPU) { cpu.setreg(&cpu.X, cpu.fetch8()) }
func LDXzp(cpu *CPU)  { cpu.setreg(&cpu.X, cpu.Read8(cpu.zpg())) }
func LDXzpy(cpu *CPU) { cpu.setreg(&cpu.X, cpu.Read8(cpu.zpy())) }
func LDXabs(cpu *CPU) { cpu.setreg(&cpu.X, cpu.Read8(cpu.abs())) }
func LDXaby(cpu *CPU) { cpu.setreg(&cpu.X, cpu.Read8(cpu.aby(false))) }

func LDYimm(cpu *CPU) { cpu.setreg(&cpu.Y, cpu.fetch8()) }
func LDYzp(cpu *CPU)  { cpu.setreg(&cpu.Y, cpu.Read8(cpu.zpg())) }
func LDYzpx(cpu *CPU) { cpu.setreg(&cpu.Y, cpu.Read8(cpu.zpx())) }
func LDYabs(cpu *CPU) { cpu.setreg(&cpu.Y, cpu.Read8(cpu.abs())) }
func LDYabx(cpu *CPU) { cpu.setreg(&cpu.Y, cpu.Read8(cpu.abx(false))) }

func LAXzp(cpu *CPU)  { lax(cpu, cpu.Read8(cpu.zpg())) }
func LAXzpy(cpu *CPU) { lax(cpu, cpu.Read8(cpu.zpy())) }
func LAXabs(cpu *CPU) { lax(cpu, cpu.Read8(cpu.abs())) }
func LAXaby(cpu *CPU) { lax(cpu, cpu.Read8(cpu.aby(false))) }
func LAXizx(cpu *CPU) { lax(cpu, cpu.Read8(cpu.izx())) }
func LAXizy(cpu *CPU) { lax(cpu, cpu.Read8(cpu.izy(false))) }

/* stores. Indexed stores always pay the extra cycle. */

func STAzp(cpu *CPU)  { cpu.Write8(cpu.zpg(), cpu.A) }
func STAzpx(cpu *CPU) { cpu.Write8(cpu.zpx(), cpu.A) }
func STAabs(cpu *CPU) { cpu.Write8(cpu.abs(), cpu.A) }
func STAabx(cpu *CPU) { cpu.Write8(cpu.abx(true), cpu.A) }
func STAaby(cpu *CPU) { cpu.Write8(cpu.aby(true), cpu.A) }
func STAizx(cpu *CPU) { cpu.Write8(cpu.izx(), cpu.A) }
func STAizy(cpu *CPU) { cpu.Write8(cpu.izy(true), cpu.A) }

func STXzp(cpu *CPU)  { cpu.Write8(cpu.zpg(), cpu.X) }
func STXzpy(cpu *CPU) { cpu.Write8(cpu.zpy(), cpu.X) }
func STXabs(cpu *CPU) { cpu.Write8(cpu.abs(), cpu.X) }

func STYzp(cpu *CPU)  { cpu.Write8(cpu.zpg(), cpu.Y) }
func STYzpx(cpu *CPU) { cpu.Write8(cpu.zpx(), cpu.Y) }
func STYabs(cpu *CPU) { cpu.Write8(cpu.abs(), cpu.Y) }

func SAXzp(cpu *CPU)  { cpu.Write8(cpu.zpg(), cpu.A&cpu.X) }
func SAXzpy(cpu *CPU) { cpu.Write8(cpu.zpy(), cpu.A&cpu.X) }
func SAXabs(cpu *CPU) { cpu.Write8(cpu.abs(), cpu.A&cpu.X) }
func SAXizx(cpu *CPU) { cpu.Write8(cpu.izx(), cpu.A&cpu.X) }

/* shifts and rotates */

func ASLacc(cpu *CPU) { cpu.imp(); asl(cpu, &cpu.A) }
func ASLzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), asl) }
func ASLzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), asl) }
func ASLabs(cpu *CPU) { cpu.rmw(cpu.abs(), asl) }
func ASLabx(cpu *CPU) { cpu.rmw(cpu.abx(true), asl) }

func LSRacc(cpu *CPU) { cpu.imp(); lsr(cpu, &cpu.A) }
func LSRzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), lsr) }
func LSRzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), lsr) }
func LSRabs(cpu *CPU) { cpu.rmw(cpu.abs(), lsr) }
func LSRabx(cpu *CPU) { cpu.rmw(cpu.abx(true), lsr) }

func ROLacc(cpu *CPU) { cpu.imp(); rol(cpu, &cpu.A) }
func ROLzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), rol) }
func ROLzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), rol) }
func ROLabs(cpu *CPU) { cpu.rmw(cpu.abs(), rol) }
func ROLabx(cpu *CPU) { cpu.rmw(cpu.abx(true), rol) }

func RORacc(cpu *CPU) { cpu.imp(); ror(cpu, &cpu.A) }
func RORzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), ror) }
func RORzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), ror) }
func RORabs(cpu *CPU) { cpu.rmw(cpu.abs(), ror) }
func RORabx(cpu *CPU) { cpu.rmw(cpu.abx(true), ror) }

/* memory increment / decrement */

func INCzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), inc) }
func INCzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), inc) }
func INCabs(cpu *CPU) { cpu.rmw(cpu.abs(), inc) }
func INCabx(cpu *CPU) { cpu.rmw(cpu.abx(true), inc) }

func DECzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), dec) }
func DECzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), dec) }
func DECabs(cpu *CPU) { cpu.rmw(cpu.abs(), dec) }
func DECabx(cpu *CPU) { cpu.rmw(cpu.abx(true), dec) }

/* undocumented rmw */

func SLOzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), slo) }
func SLOzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), slo) }
func SLOabs(cpu *CPU) { cpu.rmw(cpu.abs(), slo) }
func SLOabx(cpu *CPU) { cpu.rmw(cpu.abx(true), slo) }
func SLOaby(cpu *CPU) { cpu.rmw(cpu.aby(true), slo) }
func SLOizx(cpu *CPU) { cpu.rmw(cpu.izx(), slo) }
func SLOizy(cpu *CPU) { cpu.rmw(cpu.izy(true), slo) }

func RLAzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), rla) }
func RLAzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), rla) }
func RLAabs(cpu *CPU) { cpu.rmw(cpu.abs(), rla) }
func RLAabx(cpu *CPU) { cpu.rmw(cpu.abx(true), rla) }
func RLAaby(cpu *CPU) { cpu.rmw(cpu.aby(true), rla) }
func RLAizx(cpu *CPU) { cpu.rmw(cpu.izx(), rla) }
func RLAizy(cpu *CPU) { cpu.rmw(cpu.izy(true), rla) }

func SREzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), sre) }
func SREzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), sre) }
func SREabs(cpu *CPU) { cpu.rmw(cpu.abs(), sre) }
func SREabx(cpu *CPU) { cpu.rmw(cpu.abx(true), sre) }
func SREaby(cpu *CPU) { cpu.rmw(cpu.aby(true), sre) }
func SREizx(cpu *CPU) { cpu.rmw(cpu.izx(), sre) }
func SREizy(cpu *CPU) { cpu.rmw(cpu.izy(true), sre) }

func RRAzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), rra) }
func RRAzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), rra) }
func RRAabs(cpu *CPU) { cpu.rmw(cpu.abs(), rra) }
func RRAabx(cpu *CPU) { cpu.rmw(cpu.abx(true), rra) }
func RRAaby(cpu *CPU) { cpu.rmw(cpu.aby(true), rra) }
func RRAizx(cpu *CPU) { cpu.rmw(cpu.izx(), rra) }
func RRAizy(cpu *CPU) { cpu.rmw(cpu.izy(true), rra) }

func DCPzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), dcp) }
func DCPzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), dcp) }
func DCPabs(cpu *CPU) { cpu.rmw(cpu.abs(), dcp) }
func DCPabx(cpu *CPU) { cpu.rmw(cpu.abx(true), dcp) }
func DCPaby(cpu *CPU) { cpu.rmw(cpu.aby(true), dcp) }
func DCPizx(cpu *CPU) { cpu.rmw(cpu.izx(), dcp) }
func DCPizy(cpu *CPU) { cpu.rmw(cpu.izy(true), dcp) }

func ISCzp(cpu *CPU)  { cpu.rmw(cpu.zpg(), isc) }
func ISCzpx(cpu *CPU) { cpu.rmw(cpu.zpx(), isc) }
func ISCabs(cpu *CPU) { cpu.rmw(cpu.abs(), isc) }
func ISCabx(cpu *CPU) { cpu.rmw(cpu.abx(true), isc) }
func ISCaby(cpu *CPU) { cpu.rmw(cpu.aby(true), isc) }
func ISCizx(cpu *CPU) { cpu.rmw(cpu.izx(), isc) }
func ISCizy(cpu *CPU) { cpu.rmw(cpu.izy(true), isc) }

/* register increment / decrement and transfers */

func INX(cpu *CPU) { cpu.imp(); cpu.setreg(&cpu.X, cpu.X+1) }
func INY(cpu *CPU) { cpu.imp(); cpu.setreg(&cpu.Y, cpu.Y+1) }
func DEX(cpu *CPU) { cpu.imp(); cpu.setreg(&cpu.X, cpu.X-1) }
func DEY(cpu *CPU) { cpu.imp(); cpu.setreg(&cpu.Y, cpu.Y-1) }

func TAX(cpu *CPU) { cpu.imp(); cpu.setreg(&cpu.X, cpu.A) }
func TAY(cpu *CPU) { cpu.imp(); cpu.setreg(&cpu.Y, cpu.A) }
func TXA(cpu *CPU) { cpu.imp(); cpu.setreg(&cpu.A, cpu.X) }
func TYA(cpu *CPU) { cpu.imp(); cpu.setreg(&cpu.A, cpu.Y) }
func TSX(cpu *CPU) { cpu.imp(); cpu.setreg(&cpu.X, cpu.SP) }

// TXS does not touch the flags.
func TXS(cpu *CPU) { cpu.imp(); cpu.SP = cpu.X }

/* flag ops */

func CLC(cpu *CPU) { cpu.imp(); cpu.P.clearFlags(Carry) }
func SEC(cpu *CPU) { cpu.imp(); cpu.P.setFlags(Carry) }
func CLI(cpu *CPU) { cpu.imp(); cpu.P.clearFlags(Interrupt) }
func SEI(cpu *CPU) { cpu.imp(); cpu.P.setFlags(Interrupt) }
func CLV(cpu *CPU) { cpu.imp(); cpu.P.clearFlags(Overflow) }
func CLD(cpu *CPU) { cpu.imp(); cpu.P.clearFlags(Decimal) }
func SED(cpu *CPU) { cpu.imp(); cpu.P.setFlags(Decimal) }

/* branches */

func BPL(cpu *CPU) { cpu.branch(!cpu.P.N()) }
func BMI(cpu *CPU) { cpu.branch(cpu.P.N()) }
func BVC(cpu *CPU) { cpu.branch(!cpu.P.V()) }
func BVS(cpu *CPU) { cpu.branch(cpu.P.V()) }
func BCC(cpu *CPU) { cpu.branch(!cpu.P.C()) }
func BCS(cpu *CPU) { cpu.branch(cpu.P.C()) }
func BNE(cpu *CPU) { cpu.branch(!cpu.P.Z()) }
func BEQ(cpu *CPU) { cpu.branch(cpu.P.Z()) }

/* jumps and subroutines */

// 4C
func JMPabs(cpu *CPU) {
	cpu.PC = cpu.abs()
}

// 6C
func JMPind(cpu *CPU) {
	cpu.PC = cpu.ind()
}

// 20. The stack work is interleaved with the operand fetch: the high byte
// of the target is only read on the last cycle.
func JSR(cpu *CPU) {
	lo := cpu.fetch8()
	_ = cpu.Read8(uint16(cpu.SP) + 0x0100)
	cpu.push16(cpu.PC)
	hi := cpu.Read8(cpu.PC)
	cpu.PC = uint16(hi)<<8 | uint16(lo)
}

// 60
func RTS(cpu *CPU) {
	cpu.imp()
	_ = cpu.Read8(uint16(cpu.SP) + 0x0100)
	cpu.PC = cpu.pull16()
	_ = cpu.Read8(cpu.PC) // the return address increments on the bus
	cpu.PC++
}

// 40
func RTI(cpu *CPU) {
	cpu.imp()
	_ = cpu.Read8(uint16(cpu.SP) + 0x0100)
	p := cpu.pull8()
	const mask = 0b11001111 // ignore B and U bits
	cpu.P = P(copybits(uint8(cpu.P), p, mask))
	cpu.PC = cpu.pull16()
}

/* stack ops */

// 48
func PHA(cpu *CPU) {
	cpu.imp()
	cpu.push8(cpu.A)
}

// 08
func PHP(cpu *CPU) {
	cpu.imp()
	p := cpu.P | Break | Reserved
	cpu.push8(uint8(p))
}

// 68
func PLA(cpu *CPU) {
	cpu.imp()
	_ = cpu.Read8(uint16(cpu.SP) + 0x0100) // dummy read while SP increments
	cpu.setreg(&cpu.A, cpu.pull8())
}

// 28
func PLP(cpu *CPU) {
	cpu.imp()
	_ = cpu.Read8(uint16(cpu.SP) + 0x0100)
	p := cpu.pull8()
	const mask = 0b11001111 // ignore B and U bits
	cpu.P = P(copybits(uint8(cpu.P), p, mask))
}

/* NOPs, official and not */

func NOPimp(cpu *CPU) { cpu.imp() }
func NOPimm(cpu *CPU) { _ = cpu.fetch8() }
func NOPzp(cpu *CPU)  { _ = cpu.Read8(cpu.zpg()) }
func NOPzpx(cpu *CPU) { _ = cpu.Read8(cpu.zpx()) }
func NOPabs(cpu *CPU) { _ = cpu.Read8(cpu.abs()) }
func NOPabx(cpu *CPU) { _ = cpu.Read8(cpu.abx(false)) }

/* immediate-mode undocumented ops */

// 0B, 2B
func ANC(cpu *CPU) {
	and(cpu, cpu.fetch8())
	cpu.P.writeFlag(Carry, cpu.P.N())
}

// 4B: AND then LSR, in two cycles instead of the pair's four.
func ALR(cpu *CPU) {
	cpu.A &= cpu.fetch8()
	lsr(cpu, &cpu.A)
}

// 6B
func ARR(cpu *CPU) {
	cpu.A &= cpu.fetch8()
	cpu.A >>= 1
	if cpu.P.C() {
		cpu.A |= 1 << 7
	}
	cpu.P.checkNZ(cpu.A)
	cpu.P.writeFlag(Carry, cpu.A&(1<<6) != 0)
	cpu.P.writeFlag(Overflow, ((cpu.A>>6)^(cpu.A>>5))&1 != 0)
}

// CB
func SBX(cpu *CPU) {
	val := cpu.fetch8()
	ival := int16(cpu.A&cpu.X) - int16(val)
	cpu.X = uint8(ival)
	cpu.P.checkNZ(cpu.X)
	cpu.P.writeFlag(Carry, ival >= 0)
}

/* unstable ops, IllegalAll only */

// 8B. The magic constant is the one most chips exhibit.
func ANE(cpu *CPU) {
	const magic = 0xEE
	val := cpu.fetch8()
	cpu.setreg(&cpu.A, val&cpu.X&(cpu.A|magic))
}

// AB
func LXA(cpu *CPU) {
	const magic = 0xFF
	val := (cpu.A | magic) & cpu.fetch8()
	lax(cpu, val)
}

// BB
func LAS(cpu *CPU) {
	val := cpu.Read8(cpu.aby(false))
	v := cpu.SP & val
	cpu.A, cpu.X, cpu.SP = v, v, v
	cpu.P.checkNZ(v)
}

// 9F
func SHAaby(cpu *CPU) {
	cpu.sh(cpu.fetch16(), cpu.Y, cpu.A&cpu.X)
}

// 93
func SHAizy(cpu *CPU) {
	zp := cpu.fetch8()
	lo := cpu.Read8(uint16(zp))
	hi := cpu.Read8(uint16(zp + 1))
	cpu.sh(uint16(hi)<<8|uint16(lo), cpu.Y, cpu.A&cpu.X)
}

// 9C
func SHY(cpu *CPU) {
	cpu.sh(cpu.fetch16(), cpu.X, cpu.Y)
}

// 9E
func SHX(cpu *CPU) {
	cpu.sh(cpu.fetch16(), cpu.Y, cpu.X)
}

// 9B: SHA abs,Y that also loads SP.
func TAS(cpu *CPU) {
	cpu.SP = cpu.A & cpu.X
	cpu.sh(cpu.fetch16(), cpu.Y, cpu.A&cpu.X)
}
